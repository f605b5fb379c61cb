package astro

// Body is a celestial body whose geocentric equatorial coordinates can be
// computed for any Julian Date. Implementations are pure functions of jd.
type Body interface {
	// Name returns a short display name ("Sun", "Moon").
	Name() string

	// EquatorialCoordinates returns right ascension, declination and, where
	// modelled, distance at jd.
	EquatorialCoordinates(jd float64) (Equatorial, error)
}

// Bodies returns the bodies supported by this package in display order.
func Bodies() []Body {
	return []Body{Sun{}, Moon{}}
}
