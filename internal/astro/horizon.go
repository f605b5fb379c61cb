package astro

import (
	"math"
)

// Observer represents a ground-based observer location.
type Observer struct {
	LatDeg float64 // Latitude in degrees (north positive)
	LonDeg float64 // Longitude in degrees (east positive)
	Name   string  // Optional name for the site
}

// Validate checks that latitude and longitude are finite and within
// geographic range.
func (o Observer) Validate() error {
	if math.IsNaN(o.LatDeg) || o.LatDeg < -90 || o.LatDeg > 90 {
		return &NumericDomainError{Quantity: "latitude", Value: o.LatDeg, Reason: "must be within [-90, 90] degrees"}
	}
	if math.IsNaN(o.LonDeg) || o.LonDeg < -180 || o.LonDeg > 180 {
		return &NumericDomainError{Quantity: "longitude", Value: o.LonDeg, Reason: "must be within [-180, 180] degrees"}
	}
	return nil
}

// Horizontal is an observer-relative position.
type Horizontal struct {
	AltDeg float64 // Altitude in degrees (0=horizon, 90=zenith), no refraction
	AzDeg  float64 // Azimuth in degrees (0=N, 90=E, 180=S, 270=W)
}

// Altitude returns the geometric altitude in radians for hour angle h,
// latitude and declination given in degrees.
func Altitude(hDeg, latDeg, decDeg float64) float64 {
	h, lat, dec := degToRad(hDeg), degToRad(latDeg), degToRad(decDeg)
	return math.Asin(math.Sin(lat)*math.Sin(dec) + math.Cos(lat)*math.Cos(dec)*math.Cos(h))
}

// Azimuth returns the azimuth in radians (-pi, pi], measured from north
// through east, for hour angle h, latitude and declination in degrees.
func Azimuth(hDeg, latDeg, decDeg float64) float64 {
	h, lat, dec := degToRad(hDeg), degToRad(latDeg), degToRad(decDeg)
	return math.Atan2(-math.Sin(h)*math.Cos(dec),
		math.Cos(lat)*math.Sin(dec)-math.Sin(lat)*math.Cos(dec)*math.Cos(h))
}

// AltitudeSine returns sin(altitude) of body at hourUT hours after jd for an
// observer at latDeg/lonDeg. Its zero crossings, offset by the horizon dip,
// are rise and set events.
func AltitudeSine(body Body, jd, hourUT, latDeg, lonDeg float64) (float64, error) {
	st := LocalSiderealTime(jd, hourUT, lonDeg)

	eq, err := body.EquatorialCoordinates(jd + hourUT/24)
	if err != nil {
		return 0, err
	}

	tau := degToRad(15 * (st - eq.RA))
	lat := degToRad(latDeg)
	dec := degToRad(eq.Dec)

	return math.Sin(lat)*math.Sin(dec) + math.Cos(lat)*math.Cos(dec)*math.Cos(tau), nil
}

// HourAngle returns the local hour angle of body in degrees [0, 360) at jd.
func HourAngle(body Body, jd float64, obs Observer) (float64, error) {
	eq, err := body.EquatorialCoordinates(jd)
	if err != nil {
		return 0, err
	}
	return hourAngle(jd, obs, eq), nil
}

func hourAngle(jd float64, obs Observer, eq Equatorial) float64 {
	day := math.Floor(jd-0.5) + 0.5
	st := LocalSiderealTime(day, (jd-day)*24, obs.LonDeg)
	return Normalize360(15 * (st - eq.RA))
}

// HorizontalPosition returns the altitude and azimuth of body at jd, in
// degrees.
func HorizontalPosition(body Body, jd float64, obs Observer) (Horizontal, error) {
	if err := obs.Validate(); err != nil {
		return Horizontal{}, err
	}
	eq, err := body.EquatorialCoordinates(jd)
	if err != nil {
		return Horizontal{}, err
	}

	h := hourAngle(jd, obs, eq)
	return Horizontal{
		AltDeg: radToDeg(Altitude(h, obs.LatDeg, eq.Dec)),
		AzDeg:  Normalize360(radToDeg(Azimuth(h, obs.LatDeg, eq.Dec))),
	}, nil
}
