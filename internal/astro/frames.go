package astro

import (
	"math"
)

// arcsecPerRad converts arcseconds to radians when dividing.
const arcsecPerRad = 206264.8062

// arcsecPerRev is the number of arcseconds in a full revolution.
const arcsecPerRev = 1296000.0

// Equatorial holds geocentric equatorial coordinates of date.
type Equatorial struct {
	RA       float64 // right ascension in hours [0, 24)
	Dec      float64 // declination in degrees [-90, 90]
	Distance float64 // geocentric distance in meters, 0 when the body model has none
}

// RADeg returns the right ascension in degrees [0, 360).
func (e Equatorial) RADeg() float64 {
	return e.RA * 15
}

// Obliquity returns the mean obliquity of the ecliptic in radians for t
// Julian centuries since J2000, using Laskar's 10th-order series in
// units of 10,000 years.
func Obliquity(t float64) float64 {
	u := t / 100
	arcsec := 84381.448 + u*(-4680.93+u*(-1.55+u*(1999.25+u*(-51.38+u*(-249.67+
		u*(-39.05+u*(7.12+u*(27.87+u*(5.79+u*2.45)))))))))
	return degToRad(arcsec / 3600)
}

// eclipticToEquatorial rotates ecliptic longitude and latitude (radians) by
// the obliquity eps into right ascension and declination.
//
// RA comes from the half-angle form 2*atan(Y/(X+RHO)), which places it in the
// correct quadrant without atan2. It is undefined when X+RHO is zero, i.e. at
// exactly RA = 12h on the equator.
func eclipticToEquatorial(lon, lat, eps float64) (Equatorial, error) {
	cosEps, sinEps := math.Cos(eps), math.Sin(eps)

	cb := math.Cos(lat)
	x := cb * math.Cos(lon)
	v := cb * math.Sin(lon)
	w := math.Sin(lat)

	y := cosEps*v - sinEps*w
	z := sinEps*v + cosEps*w
	rho := math.Sqrt(1 - z*z)

	denom := x + rho
	if denom == 0 {
		return Equatorial{}, &NumericDomainError{
			Quantity: "ecliptic longitude (rad)",
			Value:    lon,
			Reason:   "right ascension denominator X+RHO is zero",
		}
	}

	dec := radToDeg(math.Atan(z / rho))
	ra := (48.0 / (2 * math.Pi)) * math.Atan(y/denom)
	if ra < 0 {
		ra += 24
	}
	if ra >= 24 {
		ra = 0
	}

	return Equatorial{RA: ra, Dec: dec}, nil
}
