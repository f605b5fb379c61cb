package astro

import (
	"math"
	"testing"

	"github.com/soniakeys/meeus/v3/moonposition"
)

func TestMoonAtJ2000(t *testing.T) {
	// Published geocentric position at 2000-01-01 12:00 UT:
	// λ ≈ 223.32°, β ≈ +5.17°, i.e. RA ≈ 14h49.8m, Dec ≈ -10.90°.
	got, err := Moon{}.EquatorialCoordinates(J2000)
	if err != nil {
		t.Fatalf("EquatorialCoordinates() error = %v", err)
	}

	if math.Abs(got.RA-14.830) > 0.02 {
		t.Errorf("RA = %.4fh, want 14.830h ± 0.02h", got.RA)
	}
	if math.Abs(got.Dec-(-10.90)) > 0.1 {
		t.Errorf("Dec = %.4f°, want -10.90° ± 0.1°", got.Dec)
	}
	if got.Distance < 400000e3 || got.Distance > 405000e3 {
		t.Errorf("Distance = %.0f km, want near apogee (~402,000 km)", got.Distance/1000)
	}
}

func TestMoonDistanceBounded(t *testing.T) {
	start, err := JulianDate(2024, 6, 1)
	if err != nil {
		t.Fatal(err)
	}

	minD, maxD := math.Inf(1), math.Inf(-1)
	for i := 0; i < 60*4; i++ {
		eq, err := Moon{}.EquatorialCoordinates(start + float64(i)/4)
		if err != nil {
			t.Fatalf("sample %d: %v", i, err)
		}
		if eq.RA < 0 || eq.RA >= 24 {
			t.Fatalf("RA %.6f outside [0, 24)", eq.RA)
		}
		if eq.Dec < -30 || eq.Dec > 30 {
			t.Fatalf("Dec %.4f outside lunar declination range", eq.Dec)
		}
		minD = math.Min(minD, eq.Distance)
		maxD = math.Max(maxD, eq.Distance)
	}

	if minD < 356000e3 || maxD > 407000e3 {
		t.Errorf("distance range %.0f..%.0f km outside perigee/apogee limits", minD/1000, maxD/1000)
	}
	if maxD-minD < 20000e3 {
		t.Errorf("distance range %.0f km too small for two months", (maxD-minD)/1000)
	}
}

func TestMoonMatchesMeeus(t *testing.T) {
	for jd := 2460310.5; jd < 2460310.5+365; jd += 6.7 {
		lon, lat, dist := moonEcliptic(CenturiesSinceJ2000(jd))
		λ, β, Δ := moonposition.Position(jd)

		dLon := math.Abs(Normalize360(radToDeg(lon)) - Normalize360(λ.Deg()))
		if dLon > 180 {
			dLon = 360 - dLon
		}
		if dLon > 0.3 {
			t.Errorf("jd %.1f: longitude %.3f°, meeus %.3f°", jd, Normalize360(radToDeg(lon)), λ.Deg())
		}
		if math.Abs(radToDeg(lat)-β.Deg()) > 0.15 {
			t.Errorf("jd %.1f: latitude %.3f°, meeus %.3f°", jd, radToDeg(lat), β.Deg())
		}
		if math.Abs(dist/1000-Δ) > 1500 {
			t.Errorf("jd %.1f: distance %.0f km, meeus %.0f km", jd, dist/1000, Δ)
		}
	}
}

func TestBodies(t *testing.T) {
	bodies := Bodies()
	if len(bodies) != 2 {
		t.Fatalf("Bodies() returned %d bodies, want 2", len(bodies))
	}
	if bodies[0].Name() != "Sun" || bodies[1].Name() != "Moon" {
		t.Errorf("Bodies() = %s, %s; want Sun, Moon", bodies[0].Name(), bodies[1].Name())
	}
}

func TestBodiesAreDeterministic(t *testing.T) {
	for _, body := range Bodies() {
		a, err := body.EquatorialCoordinates(2460482.5)
		if err != nil {
			t.Fatal(err)
		}
		b, err := body.EquatorialCoordinates(2460482.5)
		if err != nil {
			t.Fatal(err)
		}
		if a != b {
			t.Errorf("%s: repeated calls differ: %+v vs %+v", body.Name(), a, b)
		}
	}
}
