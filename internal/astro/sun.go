package astro

import (
	"math"
)

// Sun is the low-precision solar position model: mean anomaly plus a
// two-term equation of center, rotated by the Laskar obliquity.
// Accuracy is about one arcminute over several centuries around J2000.
type Sun struct{}

// Name implements Body.
func (Sun) Name() string { return "Sun" }

// EquatorialCoordinates implements Body. Distance is not modelled.
func (Sun) EquatorialCoordinates(jd float64) (Equatorial, error) {
	t := CenturiesSinceJ2000(jd)
	lon, _ := sunEcliptic(t)
	return eclipticToEquatorial(lon, 0, Obliquity(t))
}

// sunEcliptic returns the Sun's true ecliptic longitude and mean anomaly in
// radians for t centuries since J2000.
func sunEcliptic(t float64) (lon, meanAnomaly float64) {
	m := 2 * math.Pi * frac(0.993133+99.997361*t)

	// Equation of center in arcseconds.
	dl := 6893.0*math.Sin(m) + 72.0*math.Sin(2*m)

	lon = 2 * math.Pi * frac(0.7859453+m/(2*math.Pi)+(6191.2*t+dl)/arcsecPerRev)
	return lon, m
}

// AngularSeparation returns the great-circle distance in degrees between
// two points given as right ascension and declination in degrees.
func AngularSeparation(ra1, dec1, ra2, dec2 float64) float64 {
	sd1, cd1 := math.Sincos(degToRad(dec1))
	sd2, cd2 := math.Sincos(degToRad(dec2))
	sdr, cdr := math.Sincos(degToRad(ra2 - ra1))

	// Vincenty form: well conditioned near 0 and 180 degrees.
	x := cd2 * sdr
	y := cd1*sd2 - sd1*cd2*cdr
	z := sd1*sd2 + cd1*cd2*cdr
	return radToDeg(math.Atan2(math.Hypot(x, y), z))
}
