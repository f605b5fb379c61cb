// Package astro provides low-precision Sun and Moon positions, sidereal time
// and horizon-crossing math for rise/set computations.
package astro

import (
	"math"
	"time"
)

// J2000 is the Julian Date of the J2000.0 epoch (2000-01-01 12:00 UT).
const J2000 = 2451545.0

// daysPerCentury is the length of a Julian century in days.
const daysPerCentury = 36525.0

// JulianDate converts a proleptic Gregorian calendar date to the Julian Date
// of 0h UT on that date. The result always ends in .5.
func JulianDate(year, month, day int) (float64, error) {
	if err := validateDate(year, month, day); err != nil {
		return 0, err
	}

	y := float64(year)
	m := float64(month)
	if month < 3 {
		y--
		m += 12
	}

	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	jd := math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		float64(day) + b - 1524.5

	return jd, nil
}

// JulianDateTime returns the Julian Date of t, including the UT time of day.
func JulianDateTime(t time.Time) float64 {
	u := t.UTC()
	year, month, day := u.Date()

	// Dates outside MinYear..MaxYear still have a well-defined Julian Date;
	// only the date-only entry point enforces the supported range.
	y := float64(year)
	m := float64(month)
	if m <= 2 {
		y--
		m += 12
	}
	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	dayFrac := (float64(u.Hour()) +
		float64(u.Minute())/60 +
		float64(u.Second())/3600 +
		float64(u.Nanosecond())/3600e9) / 24.0

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		float64(day) + dayFrac + b - 1524.5
}

// CalendarDate converts a Julian Date back to a proleptic Gregorian date.
// The returned day carries the time of day as its fractional part.
func CalendarDate(jd float64) (year, month int, day float64) {
	jd += 0.5
	z := math.Floor(jd)
	f := jd - z

	alpha := math.Floor((z - 1867216.25) / 36524.25)
	a := z + 1 + alpha - math.Floor(alpha/4)

	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	day = b - d - math.Floor(30.6001*e) + f
	if e < 14 {
		month = int(e) - 1
	} else {
		month = int(e) - 13
	}
	if month > 2 {
		year = int(c) - 4716
	} else {
		year = int(c) - 4715
	}
	return year, month, day
}

func validateDate(year, month, day int) error {
	if year < MinYear || year > MaxYear {
		return &InvalidDateError{Year: year, Month: month, Day: day, Reason: "year outside 1..9999"}
	}
	if month < 1 || month > 12 {
		return &InvalidDateError{Year: year, Month: month, Day: day, Reason: "month outside 1..12"}
	}
	if day < 1 || day > daysIn(year, month) {
		return &InvalidDateError{Year: year, Month: month, Day: day, Reason: "day outside month"}
	}
	return nil
}

func daysIn(year, month int) int {
	switch month {
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// CenturiesSinceJ2000 returns Julian centuries elapsed since J2000.0.
func CenturiesSinceJ2000(jd float64) float64 {
	return (jd - J2000) / daysPerCentury
}

// NormalizeAngle reduces x into the half-open range [min, max) by taking the
// fractional part of (x-min)/(max-min). It works for any range, e.g.
// NormalizeAngle(x, 360, 0), NormalizeAngle(x, 180, -180) or
// NormalizeAngle(h, 24, 0). max must be greater than min.
func NormalizeAngle(x, max, min float64) float64 {
	span := max - min
	r := span * frac((x-min)/span)
	if r < 0 {
		r += span
	}
	// frac of a value just below an integer can round up to span.
	if r >= span {
		r -= span
	}
	return min + r
}

// Normalize360 is NormalizeAngle(x, 360, 0).
func Normalize360(x float64) float64 {
	return NormalizeAngle(x, 360, 0)
}

// frac returns the signed fractional part of x.
func frac(x float64) float64 {
	return math.Mod(x, 1)
}

const secondsPerDay = 86400.0

// GreenwichMeanSiderealTime0 returns GMST at 0h UT of jd, in seconds [0, 86400).
func GreenwichMeanSiderealTime0(jd float64) float64 {
	t := CenturiesSinceJ2000(jd)
	s := 24110.54841 + 8640184.812866*t + 0.093104*t*t - 0.0000062*t*t*t
	return NormalizeAngle(s, secondsPerDay, 0)
}

// GreenwichMeanSiderealTime returns GMST in seconds [0, 86400) at hourUT
// hours after 0h UT of jd.
func GreenwichMeanSiderealTime(jd, hourUT float64) float64 {
	s := GreenwichMeanSiderealTime0(jd) + 1.00273790935*(hourUT*3600)
	return NormalizeAngle(s, secondsPerDay, 0)
}

// SiderealTime returns local mean sidereal time in seconds [0, 86400) for an
// east-positive longitude in degrees.
func SiderealTime(jd, hourUT, lonDeg float64) float64 {
	s := GreenwichMeanSiderealTime(jd, hourUT) + lonDeg*3600/15
	return NormalizeAngle(s, secondsPerDay, 0)
}

// LocalSiderealTime returns local sidereal time in hours [0, 24) using the
// IAU 1982 degree formula. This is the variant used by the rise/set solver.
func LocalSiderealTime(jd, hourUT, lonDeg float64) float64 {
	d := jd - J2000 + hourUT/24
	t := CenturiesSinceJ2000(jd)

	gmst := Normalize360(280.46061837 +
		360.98564736629*d +
		0.000387933*t*t -
		t*t*t/38710000.0)

	return NormalizeAngle(gmst/15.0+lonDeg/15.0, 24, 0)
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
