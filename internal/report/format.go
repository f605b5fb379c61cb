// Package report renders almanacs for headless output: JSON, text tables,
// and a one-line status.
package report

import (
	"fmt"
	"math"

	"github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"github.com/litescript/ls-sunmoon/internal/astro"
)

// FormatRA renders right ascension in hours sexagesimally, to whole seconds.
func FormatRA(hours float64) string {
	return fmt.Sprintf("%.0s", sexa.FmtRA(unit.RAFromHour(hours)))
}

// FormatDec renders declination in degrees sexagesimally, to whole
// arcseconds.
func FormatDec(deg float64) string {
	return fmt.Sprintf("%.0s", sexa.FmtAngle(unit.AngleFromDeg(deg)))
}

// FormatDistance renders a geocentric distance in meters as kilometers,
// "N/A" when the distance is not modelled.
func FormatDistance(m float64) string {
	if m <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.0f km", m/1000)
}

// FormatEvent renders one rise or set time, "--:--" when it did not occur.
func FormatEvent(hours float64, ok bool) string {
	if !ok {
		return "--:--"
	}
	// Round to the minute before wrapping so 23:59:42 reads 00:00.
	mins := math.Mod(math.Round(hours*60), 24*60)
	if mins < 0 {
		mins += 24 * 60
	}
	return astro.FormatHours(mins / 60)
}

// FormatRiseSet summarises a RiseSet as "rise / set", or as the polar
// state when neither event occurred.
func FormatRiseSet(rs astro.RiseSet) string {
	switch {
	case rs.AlwaysAbove():
		return "always up"
	case rs.AlwaysBelow():
		return "always down"
	}
	return FormatEvent(rs.Rise, rs.HasRise) + " / " + FormatEvent(rs.Set, rs.HasSet)
}

// FormatDuration renders fractional hours as "13h 42m".
func FormatDuration(hours float64) string {
	hh, mm := astro.HoursMinutes(hours)
	return fmt.Sprintf("%sh %sm", hh, mm)
}

// PhaseIcon returns a moon glyph for the phase name.
func PhaseIcon(name string) string {
	switch name {
	case "New Moon":
		return "🌑"
	case "Waxing Crescent":
		return "🌒"
	case "First Quarter":
		return "🌓"
	case "Waxing Gibbous":
		return "🌔"
	case "Full Moon":
		return "🌕"
	case "Waning Gibbous":
		return "🌖"
	case "Last Quarter":
		return "🌗"
	case "Waning Crescent":
		return "🌘"
	default:
		return "?"
	}
}

// Compass converts an azimuth in degrees to a 16-point compass label.
func Compass(azDeg float64) string {
	points := [...]string{"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
		"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW"}
	i := int(math.Floor(astro.Normalize360(azDeg)/22.5+0.5)) % len(points)
	return points[i]
}
