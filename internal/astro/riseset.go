package astro

import (
	"math"
	"strconv"
)

// Horizon dip presets in degrees. HorizonDip accounts for standard
// refraction plus the apparent radius of the Sun or Moon.
const (
	HorizonDip           = -0.833
	TwilightCivil        = -6.0
	TwilightNautical     = -12.0
	TwilightAstronomical = -18.0
)

// sampleStep is the spacing in hours between altitude samples. Each
// parabola spans two steps.
const sampleStep = 2.0

// Visibility classifies a body relative to the horizon when a rise/set
// search does not find both events.
type Visibility int

const (
	// VisibilityUnknown means no determination was made: the body started
	// the day below the dip and both events were found.
	VisibilityUnknown Visibility = iota
	// VisibilityAbove means the body was above the dip at local midnight.
	VisibilityAbove
	// VisibilityBelow means the body was below the dip at local midnight and
	// at least one event is missing.
	VisibilityBelow
)

func (v Visibility) String() string {
	switch v {
	case VisibilityAbove:
		return "above"
	case VisibilityBelow:
		return "below"
	default:
		return "unknown"
	}
}

// RiseSet holds the horizon crossings of a body during one local day.
// Times are local fractional hours after local midnight; they may slightly
// exceed 24 for events just after the following midnight.
type RiseSet struct {
	Rise    float64
	Set     float64
	HasRise bool
	HasSet  bool
	Above   Visibility
}

// AlwaysAbove reports a body that neither rose nor set and started above
// the dip (midnight sun, circumpolar Moon).
func (r RiseSet) AlwaysAbove() bool {
	return !r.HasRise && !r.HasSet && r.Above == VisibilityAbove
}

// AlwaysBelow reports a body that neither rose nor set and started below
// the dip (polar night).
func (r RiseSet) AlwaysBelow() bool {
	return !r.HasRise && !r.HasSet && r.Above == VisibilityBelow
}

// FindRiseSet searches the local day starting at Julian Date jd (0h UT of the
// calendar date) for rise and set of body, for an observer tzHours east of
// UT. h0 is the altitude threshold in degrees, usually HorizonDip.
//
// sin(altitude) is sampled every two hours from local 0h to 24h. A parabola
// through each consecutive triplet yields up to two crossings of sin(h0).
// The search stops once both events are found.
func FindRiseSet(body Body, jd, tzHours float64, obs Observer, h0 float64) (RiseSet, error) {
	if err := validateQuery(jd, tzHours, obs, h0); err != nil {
		return RiseSet{}, err
	}

	start := jd - tzHours/24
	sinH0 := math.Sin(degToRad(h0))
	y := func(hour float64) (float64, error) {
		s, err := AltitudeSine(body, start, hour, obs.LatDeg, obs.LonDeg)
		return s - sinH0, err
	}

	var rs RiseSet

	hh := 1.0
	ym, err := y(hh - 1)
	if err != nil {
		return RiseSet{}, err
	}
	startedAbove := ym > 0

	for hh < 25 && !(rs.HasRise && rs.HasSet) {
		yz, err := y(hh)
		if err != nil {
			return RiseSet{}, err
		}
		yp, err := y(hh + 1)
		if err != nil {
			return RiseSet{}, err
		}

		p := fitParabola(ym, yz, yp)
		switch p.nz {
		case 1:
			if ym < 0 {
				rs.Rise, rs.HasRise = hh+p.z1, true
			} else {
				rs.Set, rs.HasSet = hh+p.z1, true
			}
		case 2:
			if p.ye < 0 {
				rs.Rise, rs.HasRise = hh+p.z2, true
				rs.Set, rs.HasSet = hh+p.z1, true
			} else {
				rs.Rise, rs.HasRise = hh+p.z1, true
				rs.Set, rs.HasSet = hh+p.z2, true
			}
		}

		ym = yp
		hh += sampleStep
	}

	// With both events found only an "above at midnight" result is kept.
	switch {
	case startedAbove:
		rs.Above = VisibilityAbove
	case rs.HasRise && rs.HasSet:
		rs.Above = VisibilityUnknown
	default:
		rs.Above = VisibilityBelow
	}

	return rs, nil
}

// parabola is the fit through (-1, ym), (0, yz), (1, yp).
type parabola struct {
	a, b, c float64
	xe, ye  float64 // vertex
	nz      int     // roots within [-1, 1]
	z1, z2  float64 // roots, z1 <= z2 unless z1 fell below -1
}

func fitParabola(ym, yz, yp float64) parabola {
	p := parabola{
		a: 0.5*(ym+yp) - yz,
		b: 0.5 * (yp - ym),
		c: yz,
	}

	if p.a == 0 {
		// Degenerate: the samples are collinear.
		p.xe, p.ye = math.NaN(), math.NaN()
		if p.b != 0 {
			if z := -p.c / p.b; math.Abs(z) <= 1 {
				p.nz, p.z1, p.z2 = 1, z, z
			}
		}
		return p
	}

	p.xe = -p.b / (2 * p.a)
	p.ye = (p.a*p.xe+p.b)*p.xe + p.c

	dis := p.b*p.b - 4.0*p.a*p.c
	if dis > 0 {
		dx := 0.5 * math.Sqrt(dis) / math.Abs(p.a)
		p.z1 = p.xe - dx
		p.z2 = p.xe + dx
		if math.Abs(p.z1) <= 1.0 {
			p.nz++
		}
		if math.Abs(p.z2) <= 1.0 {
			p.nz++
		}
		if p.z1 < -1.0 {
			p.z1 = p.z2
		}
	}
	return p
}

func validateQuery(jd, tzHours float64, obs Observer, h0 float64) error {
	if math.IsNaN(jd) || math.IsInf(jd, 0) {
		return &NumericDomainError{Quantity: "julian date", Value: jd, Reason: "must be finite"}
	}
	if math.IsNaN(tzHours) || math.IsInf(tzHours, 0) || math.Abs(tzHours) > 14 {
		return &NumericDomainError{Quantity: "timezone offset", Value: tzHours, Reason: "must be within [-14, 14] hours"}
	}
	if err := obs.Validate(); err != nil {
		return err
	}
	if math.IsNaN(h0) || math.IsInf(h0, 0) {
		return &ConfigurationError{
			Field:  "horizon_dip",
			Value:  strconv.FormatFloat(h0, 'g', -1, 64),
			Reason: "must be finite",
		}
	}
	return nil
}
