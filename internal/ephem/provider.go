// Package ephem builds daily Sun and Moon almanacs for an observer on top of
// the astro package.
package ephem

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/litescript/ls-sunmoon/internal/astro"
)

// MaxRangeDays bounds a single Range request.
const MaxRangeDays = 366

// Config describes the observer and the conventions used to build a Day.
type Config struct {
	Observer astro.Observer

	// TZHours is the fixed offset east of UT. Ignored when Location is set.
	TZHours float64

	// Location, when set, gives the offset per date (DST aware).
	Location *time.Location

	// HorizonDip is the rise/set altitude threshold in degrees.
	HorizonDip float64

	// Twilight enables civil, nautical and astronomical twilight.
	Twilight bool
}

// DefaultConfig returns a Greenwich observer on UT with the standard dip.
func DefaultConfig() Config {
	return Config{
		Observer:   astro.Observer{Name: "Greenwich", LatDeg: 51.4769, LonDeg: 0},
		HorizonDip: astro.HorizonDip,
		Twilight:   true,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if err := c.Observer.Validate(); err != nil {
		return err
	}
	if c.Location == nil && (math.IsNaN(c.TZHours) || math.Abs(c.TZHours) > 14) {
		return &astro.NumericDomainError{Quantity: "timezone offset", Value: c.TZHours, Reason: "must be within [-14, 14] hours"}
	}
	if math.IsNaN(c.HorizonDip) || math.IsInf(c.HorizonDip, 0) || c.HorizonDip < -90 || c.HorizonDip > 90 {
		return &astro.ConfigurationError{
			Field:  "horizon_dip",
			Value:  strconv.FormatFloat(c.HorizonDip, 'g', -1, 64),
			Reason: "must be a finite altitude in degrees",
		}
	}
	return nil
}

// zoneFor returns the offset in hours and a zone for the calendar date.
// With a Location the offset in force at local noon is used for the whole day.
func (c Config) zoneFor(year int, month time.Month, day int) (float64, *time.Location) {
	if c.Location == nil {
		sec := int(math.Round(c.TZHours * 3600))
		return c.TZHours, time.FixedZone(offsetName(sec), sec)
	}
	noon := time.Date(year, month, day, 12, 0, 0, 0, c.Location)
	name, sec := noon.Zone()
	return float64(sec) / 3600, time.FixedZone(name, sec)
}

func offsetName(sec int) string {
	if sec == 0 {
		return "UTC"
	}
	sign := '+'
	if sec < 0 {
		sign = '-'
		sec = -sec
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, sec/3600, sec%3600/60)
}

// BodyDay is the almanac for one body on one local day.
type BodyDay struct {
	Name    string
	RiseSet astro.RiseSet
	Transit astro.Transit

	// Noon is the geocentric position at local noon.
	Noon astro.Equatorial
	// NoonHorizontal is the observer-relative position at local noon.
	NoonHorizontal astro.Horizontal
}

// Twilight holds the Sun's crossings of the twilight dips.
type Twilight struct {
	Civil        astro.RiseSet
	Nautical     astro.RiseSet
	Astronomical astro.RiseSet
}

// Day is the almanac for one local calendar date.
type Day struct {
	// Date is local midnight in a fixed zone carrying the offset used.
	Date    time.Time
	JD      float64 // 0h UT of Date's calendar day
	TZHours float64

	Sun      BodyDay
	Moon     BodyDay
	Twilight *Twilight // nil unless enabled
	Phase    astro.MoonPhase
}

// LocalTime converts fractional local hours on this day to a time.
func (d Day) LocalTime(hours float64) time.Time {
	return d.Date.Add(time.Duration(hours * float64(time.Hour))).Round(time.Second)
}

// DayLength returns hours of sunlight between rise and set.
func (d Day) DayLength() float64 {
	rs := d.Sun.RiseSet
	switch {
	case rs.HasRise && rs.HasSet:
		l := rs.Set - rs.Rise
		if l < 0 {
			l += 24
		}
		return l
	case rs.AlwaysAbove():
		return 24
	default:
		return 0
	}
}

// Sample is one point of an altitude track.
type Sample struct {
	Hour     float64 // local hours after midnight
	Position astro.Horizontal
}

// Sky is the observer's view of the Sun and Moon at one instant.
type Sky struct {
	Time  time.Time
	Sun   astro.Horizontal
	Moon  astro.Horizontal
	Phase astro.MoonPhase
}
