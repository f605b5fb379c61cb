package astro

// Positions holds the rise/set results for the Sun and the Moon on one
// local day.
type Positions struct {
	Sun  RiseSet
	Moon RiseSet
}

// ComputePositions returns Sun and Moon rise/set for the local day whose 0h UT
// Julian Date is jd, an observer tzHours east of UT, at latDeg/lonDeg (east
// positive), using the default HorizonDip for both bodies. Either both
// results are returned or an error.
func ComputePositions(jd, tzHours, latDeg, lonDeg float64) (Positions, error) {
	obs := Observer{LatDeg: latDeg, LonDeg: lonDeg}

	sun, err := FindRiseSet(Sun{}, jd, tzHours, obs, HorizonDip)
	if err != nil {
		return Positions{}, err
	}
	moon, err := FindRiseSet(Moon{}, jd, tzHours, obs, HorizonDip)
	if err != nil {
		return Positions{}, err
	}

	return Positions{Sun: sun, Moon: moon}, nil
}
