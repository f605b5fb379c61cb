package astro

import (
	"math"
)

// Transit is the upper culmination of a body during one local day.
type Transit struct {
	Hour   float64 // local fractional hours after local midnight
	AltDeg float64 // geometric altitude at culmination, degrees
	OK     bool    // false when the maximum falls on a day boundary
}

// TransitFor finds the time of maximum altitude of body on the local day
// starting at jd (0h UT), using the same two-hour sampling as FindRiseSet.
// Each triplet's parabola vertex is a candidate when the parabola opens
// downward and the vertex lies inside the triplet; the highest one wins.
func TransitFor(body Body, jd, tzHours float64, obs Observer) (Transit, error) {
	if err := validateQuery(jd, tzHours, obs, HorizonDip); err != nil {
		return Transit{}, err
	}

	start := jd - tzHours/24
	y := func(hour float64) (float64, error) {
		return AltitudeSine(body, start, hour, obs.LatDeg, obs.LonDeg)
	}

	var best Transit
	bestY := math.Inf(-1)

	ym, err := y(0)
	if err != nil {
		return Transit{}, err
	}
	for hh := 1.0; hh < 25; hh += sampleStep {
		yz, err := y(hh)
		if err != nil {
			return Transit{}, err
		}
		yp, err := y(hh + 1)
		if err != nil {
			return Transit{}, err
		}

		p := fitParabola(ym, yz, yp)
		if p.a < 0 && math.Abs(p.xe) <= 1 && p.ye > bestY {
			bestY = p.ye
			best = Transit{Hour: hh + p.xe, OK: true}
		}
		ym = yp
	}

	if best.OK {
		best.AltDeg = radToDeg(math.Asin(math.Max(-1, math.Min(1, bestY))))
	}
	return best, nil
}
