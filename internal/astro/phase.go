package astro

import (
	"math"
)

// MoonPhase describes the illuminated fraction and qualitative phase
// of the Moon at a given instant.
type MoonPhase struct {
	Fraction   float64 // illuminated fraction [0..1], 0=new, 1=full
	Elongation float64 // Sun-Moon angular separation in degrees [0..180]
	Waxing     bool    // true if waxing (illumination increasing), false if waning
	Name       string  // e.g. "New Moon", "Waxing Crescent", "First Quarter", ...
}

// MoonPhaseAt computes the Moon's phase at Julian Date jd from the geocentric
// Sun and Moon positions. Phase is a global property, independent of the
// observer.
func MoonPhaseAt(jd float64) (MoonPhase, error) {
	sunEq, err := Sun{}.EquatorialCoordinates(jd)
	if err != nil {
		return MoonPhase{}, err
	}
	moonEq, err := Moon{}.EquatorialCoordinates(jd)
	if err != nil {
		return MoonPhase{}, err
	}

	elong := AngularSeparation(sunEq.RADeg(), sunEq.Dec, moonEq.RADeg(), moonEq.Dec)

	// k = (1 - cos ψ) / 2
	fraction := 0.5 * (1 - math.Cos(degToRad(elong)))
	fraction = math.Max(0, math.Min(1, fraction))

	// The Moon waxes while it is east of the Sun.
	waxing := Normalize360(moonEq.RADeg()-sunEq.RADeg()) < 180

	return MoonPhase{
		Fraction:   fraction,
		Elongation: elong,
		Waxing:     waxing,
		Name:       phaseName(fraction, waxing),
	}, nil
}

// phaseNames is indexed by [waxing][band]; bands are crescent, quarter
// and gibbous.
var phaseNames = [2][3]string{
	{"Waning Crescent", "Last Quarter", "Waning Gibbous"},
	{"Waxing Crescent", "First Quarter", "Waxing Gibbous"},
}

func phaseName(f float64, waxing bool) string {
	var band int
	switch {
	case f < 0.01:
		return "New Moon"
	case f > 0.99:
		return "Full Moon"
	case f <= 0.45:
		band = 0
	case f < 0.55:
		band = 1
	default:
		band = 2
	}
	w := 0
	if waxing {
		w = 1
	}
	return phaseNames[w][band]
}
