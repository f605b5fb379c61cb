package astro

import (
	"errors"
	"math"
	"testing"

	"github.com/soniakeys/meeus/v3/solar"
)

func TestSunEquatorialCoordinates(t *testing.T) {
	tests := []struct {
		name       string
		year       int
		month, day int
		wantRAMin  float64 // RA in hours
		wantRAMax  float64
		wantDecMin float64 // Dec in degrees
		wantDecMax float64
	}{
		{
			name: "Spring Equinox 2024 - Sun near 0h RA, 0° Dec",
			year: 2024, month: 3, day: 20,
			wantRAMin: 23.9, // wraps through 0h
			wantRAMax: 0.1,
			wantDecMin: -0.5,
			wantDecMax: 0.5,
		},
		{
			name: "Summer Solstice 2024 - Sun near 6h RA, +23.4° Dec",
			year: 2024, month: 6, day: 21,
			wantRAMin: 5.9,
			wantRAMax: 6.1,
			wantDecMin: 23.38,
			wantDecMax: 23.46,
		},
		{
			name: "Autumn Equinox 2024 - Sun near 12h RA, 0° Dec",
			year: 2024, month: 9, day: 22,
			wantRAMin: 11.9,
			wantRAMax: 12.1,
			wantDecMin: -0.6,
			wantDecMax: 0.6,
		},
		{
			name: "Winter Solstice 2024 - Sun near 18h RA, -23.4° Dec",
			year: 2024, month: 12, day: 21,
			wantRAMin: 17.9,
			wantRAMax: 18.1,
			wantDecMin: -23.46,
			wantDecMax: -23.38,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jd, err := JulianDate(tt.year, tt.month, tt.day)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Sun{}.EquatorialCoordinates(jd + 0.5)
			if err != nil {
				t.Fatalf("EquatorialCoordinates() error = %v", err)
			}

			var raOK bool
			if tt.wantRAMin > tt.wantRAMax {
				raOK = got.RA >= tt.wantRAMin || got.RA <= tt.wantRAMax
			} else {
				raOK = got.RA >= tt.wantRAMin && got.RA <= tt.wantRAMax
			}
			if !raOK {
				t.Errorf("RA = %.4fh, want between %.2fh and %.2fh", got.RA, tt.wantRAMin, tt.wantRAMax)
			}
			if got.Dec < tt.wantDecMin || got.Dec > tt.wantDecMax {
				t.Errorf("Dec = %.4f°, want between %.2f° and %.2f°", got.Dec, tt.wantDecMin, tt.wantDecMax)
			}
			if got.Distance != 0 {
				t.Errorf("Distance = %v, want 0 for the Sun", got.Distance)
			}
		})
	}
}

func TestSunDeclinationBounded(t *testing.T) {
	start, err := JulianDate(2024, 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	maxAbs := 0.0
	for i := 0; i < 366*4; i++ {
		eq, err := Sun{}.EquatorialCoordinates(start + float64(i)/4)
		if err != nil {
			t.Fatalf("day %d: %v", i, err)
		}
		if eq.RA < 0 || eq.RA >= 24 {
			t.Fatalf("RA %.6f outside [0, 24)", eq.RA)
		}
		maxAbs = math.Max(maxAbs, math.Abs(eq.Dec))
	}

	if maxAbs > 23.45 {
		t.Errorf("max |Dec| = %.4f°, exceeds obliquity", maxAbs)
	}
	if maxAbs < 23.4 {
		t.Errorf("max |Dec| = %.4f°, solstices not reached", maxAbs)
	}
}

func TestSunMatchesMeeus(t *testing.T) {
	for jd := 2451545.0; jd < 2451545.0+3650; jd += 29.3 {
		got, err := Sun{}.EquatorialCoordinates(jd)
		if err != nil {
			t.Fatal(err)
		}
		ra, dec := solar.ApparentEquatorial(jd)

		dRA := math.Abs(got.RA - ra.Hour())
		if dRA > 12 {
			dRA = 24 - dRA
		}
		if dRA > 0.01 {
			t.Errorf("jd %.1f: RA %.4fh, meeus %.4fh", jd, got.RA, ra.Hour())
		}
		if math.Abs(got.Dec-dec.Deg()) > 0.05 {
			t.Errorf("jd %.1f: Dec %.4f°, meeus %.4f°", jd, got.Dec, dec.Deg())
		}
	}
}

func TestObliquity(t *testing.T) {
	got := radToDeg(Obliquity(0))
	if math.Abs(got-23.4392911) > 1e-6 {
		t.Errorf("Obliquity(0) = %.7f°, want 23.4392911°", got)
	}
	// Obliquity is decreasing by about 47" per century now.
	if Obliquity(1) >= Obliquity(0) {
		t.Error("Obliquity should decrease over the next century")
	}
}

func TestEclipticToEquatorial_Degenerate(t *testing.T) {
	_, err := eclipticToEquatorial(math.Pi, 0, Obliquity(0))
	if !errors.Is(err, ErrNumericDomain) {
		t.Fatalf("error = %v, want ErrNumericDomain", err)
	}
}

func TestEclipticToEquatorial_Quadrants(t *testing.T) {
	eps := Obliquity(0)
	for _, lonDeg := range []float64{10, 100, 170, 190, 260, 350} {
		eq, err := eclipticToEquatorial(degToRad(lonDeg), 0, eps)
		if err != nil {
			t.Fatalf("lon %v: %v", lonDeg, err)
		}
		// On the ecliptic RA stays within a few degrees of longitude.
		diff := math.Abs(eq.RADeg() - lonDeg)
		if diff > 180 {
			diff = 360 - diff
		}
		if diff > 3 {
			t.Errorf("lon %v°: RA %.3f°, too far from longitude", lonDeg, eq.RADeg())
		}
	}
}

func TestAngularSeparation(t *testing.T) {
	tests := []struct {
		name      string
		ra1, dec1 float64
		ra2, dec2 float64
		wantSep   float64
	}{
		{"Same point", 100, 30, 100, 30, 0},
		{"90 degrees apart on equator", 0, 0, 90, 0, 90},
		{"180 degrees apart on equator", 0, 0, 180, 0, 180},
		{"Pole to equator", 0, 90, 0, 0, 90},
		{"Pole to pole", 0, 90, 0, -90, 180},
		{"RA wraps through zero", 359.5, 0, 0.5, 0, 1},
		{"One arcsecond", 10, 20, 10, 20 + 1.0/3600, 1.0 / 3600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngularSeparation(tt.ra1, tt.dec1, tt.ra2, tt.dec2)
			if math.Abs(got-tt.wantSep) > 0.001 {
				t.Errorf("AngularSeparation() = %.4f°, want %.4f°", got, tt.wantSep)
			}
		})
	}
}
