package astro

import (
	"math"
)

// Moon is the low-precision lunar position model: fundamental arguments as
// fractional revolutions, 14 periodic longitude terms, a reduced latitude
// series and a 9-term distance series. Accuracy is a few arcminutes in
// position and a few hundred kilometers in distance.
type Moon struct{}

// Name implements Body.
func (Moon) Name() string { return "Moon" }

// lunarTerm is one periodic term: amplitude times sin (or cos) of an integer
// combination of the fundamental arguments l (Moon mean anomaly), ls (Sun mean
// anomaly), d (elongation) and f (argument of latitude).
type lunarTerm struct {
	amp         float64
	l, ls, d, f float64
}

func (lt lunarTerm) arg(l, ls, d, f float64) float64 {
	return lt.l*l + lt.ls*ls + lt.d*d + lt.f*f
}

// lunarLongitudeTerms are the corrections to mean longitude, in arcseconds.
var lunarLongitudeTerms = [...]lunarTerm{
	{22640, 1, 0, 0, 0},
	{-4586, 1, 0, -2, 0},
	{2370, 0, 0, 2, 0},
	{769, 2, 0, 0, 0},
	{-668, 0, 1, 0, 0},
	{-412, 0, 0, 0, 2},
	{-212, 2, 0, -2, 0},
	{-206, 1, 1, -2, 0},
	{192, 1, 0, 2, 0},
	{-165, 0, 1, -2, 0},
	{-125, 0, 0, 1, 0},
	{-110, 1, 1, 0, 0},
	{148, 1, -1, 0, 0},
	{-55, 0, 0, -2, 2},
}

// lunarLatitudeTerms perturb the main latitude term, in arcseconds. Most are
// arguments of H = F - 2D.
var lunarLatitudeTerms = [...]lunarTerm{
	{-526, 0, 0, -2, 1},
	{44, 1, 0, -2, 1},
	{-31, -1, 0, -2, 1},
	{-23, 0, 1, -2, 1},
	{11, 0, -1, -2, 1},
	{-25, -2, 0, 0, 1},
	{21, -1, 0, 0, 1},
}

// lunarDistanceTerms are the cosine terms of the geocentric distance, in meters.
var lunarDistanceTerms = [...]lunarTerm{
	{-20905e3, 1, 0, 0, 0},
	{-3699e3, -1, 0, 2, 0},
	{-2956e3, 0, 0, 2, 0},
	{-570e3, 2, 0, 0, 0},
	{246e3, 2, 0, -2, 0},
	{-205e3, 0, 1, -2, 0},
	{-171e3, 1, 0, 2, 0},
	{-152e3, 1, 1, -2, 0},
}

// lunarMeanDistance is the constant term of the distance series, in meters.
const lunarMeanDistance = 385000e3

// EquatorialCoordinates implements Body. Distance is geocentric, in meters.
func (Moon) EquatorialCoordinates(jd float64) (Equatorial, error) {
	t := CenturiesSinceJ2000(jd)
	lon, lat, dist := moonEcliptic(t)

	eq, err := eclipticToEquatorial(lon, lat, Obliquity(t))
	if err != nil {
		return Equatorial{}, err
	}
	eq.Distance = dist
	return eq, nil
}

// moonEcliptic returns ecliptic longitude and latitude (radians) and distance
// (meters) for t centuries since J2000.
func moonEcliptic(t float64) (lon, lat, dist float64) {
	const twoPi = 2 * math.Pi

	l0 := frac(0.606433 + 1336.855225*t)      // mean longitude, revolutions
	l := twoPi * frac(0.374897+1325.552410*t) // Moon mean anomaly
	ls := twoPi * frac(0.993133+99.997361*t)  // Sun mean anomaly
	d := twoPi * frac(0.827361+1236.853086*t) // elongation Moon - Sun
	f := twoPi * frac(0.259086+1342.227825*t) // argument of latitude

	var dl float64
	for _, term := range lunarLongitudeTerms {
		dl += term.amp * math.Sin(term.arg(l, ls, d, f))
	}

	s := f + (dl+412*math.Sin(2*f)+541*math.Sin(ls))/arcsecPerRad
	var n float64
	for _, term := range lunarLatitudeTerms {
		n += term.amp * math.Sin(term.arg(l, ls, d, f))
	}

	lon = twoPi * frac(l0+dl/arcsecPerRev)
	lat = (18520.0*math.Sin(s) + n) / arcsecPerRad

	dist = lunarMeanDistance
	for _, term := range lunarDistanceTerms {
		dist += term.amp * math.Cos(term.arg(l, ls, d, f))
	}

	return lon, lat, dist
}
