package astro

import (
	"fmt"
	"math"
)

// HoursMinutes splits non-negative decimal hours into zero-padded hour and
// minute strings, with minutes rounded to the nearest minute. A rounding
// that reaches 60 minutes carries into the hour, so 5.9999 is "06", "00".
func HoursMinutes(hours float64) (string, string) {
	h := math.Trunc(hours)
	m := math.Round((hours - h) * 60)
	if m >= 60 {
		h++
		m -= 60
	}
	return fmt.Sprintf("%02d", int(h)), fmt.Sprintf("%02d", int(m))
}

// FormatHours renders decimal hours as "HH:MM".
func FormatHours(hours float64) string {
	hh, mm := HoursMinutes(hours)
	return hh + ":" + mm
}
