package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/litescript/ls-sunmoon/internal/ephem"
)

// SummaryRow is one line of the summary table.
type SummaryRow struct {
	Date      string
	Sunrise   string
	Sunset    string
	DayLength string
	Moonrise  string
	Moonset   string
	Phase     string
	Lit       float64
}

// GenerateSummaryRows creates one row per day.
func GenerateSummaryRows(days []ephem.Day) []SummaryRow {
	rows := make([]SummaryRow, 0, len(days))
	for _, d := range days {
		sun, moon := d.Sun.RiseSet, d.Moon.RiseSet
		sunrise, sunset := FormatEvent(sun.Rise, sun.HasRise), FormatEvent(sun.Set, sun.HasSet)
		switch {
		case sun.AlwaysAbove():
			sunrise, sunset = "up", "up"
		case sun.AlwaysBelow():
			sunrise, sunset = "down", "down"
		}
		moonrise, moonset := FormatEvent(moon.Rise, moon.HasRise), FormatEvent(moon.Set, moon.HasSet)
		switch {
		case moon.AlwaysAbove():
			moonrise, moonset = "up", "up"
		case moon.AlwaysBelow():
			moonrise, moonset = "down", "down"
		}

		rows = append(rows, SummaryRow{
			Date:      d.Date.Format("Mon 2006-01-02"),
			Sunrise:   sunrise,
			Sunset:    sunset,
			DayLength: FormatDuration(d.DayLength()),
			Moonrise:  moonrise,
			Moonset:   moonset,
			Phase:     d.Phase.Name,
			Lit:       d.Phase.Fraction,
		})
	}
	return rows
}

// WriteSummaryTable writes a text table to the given writer.
func WriteSummaryTable(w io.Writer, cfg ephem.Config, days []ephem.Day) {
	name := cfg.Observer.Name
	if name == "" {
		name = "Observer"
	}
	fmt.Fprintf(w, "%s (%.4f, %.4f)", name, cfg.Observer.LatDeg, cfg.Observer.LonDeg)
	if len(days) > 0 {
		zone, _ := days[0].Date.Zone()
		fmt.Fprintf(w, " %s", zone)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("─", 88))

	if len(days) == 0 {
		fmt.Fprintln(w, "No days computed")
		return
	}

	fmt.Fprintf(w, "%-15s %-7s %-7s %-8s %-8s %-8s %-16s %5s\n",
		"Date", "Rise", "Set", "Length", "Moonrise", "Moonset", "Phase", "Lit")
	fmt.Fprintln(w, strings.Repeat("─", 88))

	for _, r := range GenerateSummaryRows(days) {
		fmt.Fprintf(w, "%-15s %-7s %-7s %-8s %-8s %-8s %-16s %4.0f%%\n",
			r.Date, r.Sunrise, r.Sunset, r.DayLength, r.Moonrise, r.Moonset,
			truncateStr(r.Phase, 16), r.Lit*100)
	}

	fmt.Fprintf(w, "\nTotal: %d day(s)\n", len(days))
}

// WriteDay writes a detailed card for one day.
func WriteDay(w io.Writer, d ephem.Day) {
	zone, _ := d.Date.Zone()
	fmt.Fprintf(w, "%s  %s  JD %.1f\n", d.Date.Format("Monday 2006-01-02"), zone, d.JD)
	fmt.Fprintln(w, strings.Repeat("─", 60))

	for _, b := range []ephem.BodyDay{d.Sun, d.Moon} {
		fmt.Fprintf(w, "%-5s %-22s", b.Name, FormatRiseSet(b.RiseSet))
		if b.Transit.OK {
			fmt.Fprintf(w, " transit %s at %.1f°", FormatEvent(b.Transit.Hour, true), b.Transit.AltDeg)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "      noon RA %s  Dec %s  %s\n",
			FormatRA(b.Noon.RA), FormatDec(b.Noon.Dec), FormatDistance(b.Noon.Distance))
	}

	fmt.Fprintf(w, "Day length %s\n", FormatDuration(d.DayLength()))
	if tw := d.Twilight; tw != nil {
		fmt.Fprintf(w, "Twilight  civil %s  nautical %s  astronomical %s\n",
			FormatRiseSet(tw.Civil), FormatRiseSet(tw.Nautical), FormatRiseSet(tw.Astronomical))
	}
	fmt.Fprintf(w, "Moon      %s %s, %.0f%% lit\n", PhaseIcon(d.Phase.Name), d.Phase.Name, d.Phase.Fraction*100)
}

// WriteNow writes a single status line for instant sky within day.
func WriteNow(w io.Writer, sky ephem.Sky, d ephem.Day) {
	local := sky.Time.In(d.Date.Location())

	sunState := "down"
	if sky.Sun.AltDeg > 0 {
		sunState = "up"
	}
	moonState := "down"
	if sky.Moon.AltDeg > 0 {
		moonState = "up"
	}

	fmt.Fprintf(w, "%s ☀ %s %+.1f° %s (%s)  %s %s %+.1f° %s (%s) %.0f%%\n",
		local.Format("15:04"),
		sunState, sky.Sun.AltDeg, Compass(sky.Sun.AzDeg), FormatRiseSet(d.Sun.RiseSet),
		PhaseIcon(sky.Phase.Name), moonState, sky.Moon.AltDeg, Compass(sky.Moon.AzDeg), FormatRiseSet(d.Moon.RiseSet),
		sky.Phase.Fraction*100)
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
