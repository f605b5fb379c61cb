package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/litescript/ls-sunmoon/internal/astro"
	"github.com/litescript/ls-sunmoon/internal/ephem"
)

// AlmanacExport is the JSON document written by -json.
type AlmanacExport struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Observer    ObserverExport `json:"observer"`
	HorizonDip  float64        `json:"horizon_dip"`
	Days        []DayExport    `json:"days"`
}

// ObserverExport identifies the observer.
type ObserverExport struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DayExport is one local date.
type DayExport struct {
	Date       string          `json:"date"`
	TZHours    float64         `json:"tz_offset_hours"`
	Zone       string          `json:"zone"`
	JulianDate float64         `json:"julian_date"`
	DayLength  float64         `json:"day_length_hours"`
	Sun        BodyExport      `json:"sun"`
	Moon       BodyExport      `json:"moon"`
	Twilight   *TwilightExport `json:"twilight,omitempty"`
	MoonPhase  PhaseExport     `json:"moon_phase"`
}

// BodyExport holds one body's events. Event times are RFC 3339 in the
// day's zone; a missing event is omitted.
type BodyExport struct {
	Rise        *time.Time `json:"rise,omitempty"`
	Set         *time.Time `json:"set,omitempty"`
	Visibility  string     `json:"visibility"`
	Transit     *time.Time `json:"transit,omitempty"`
	TransitAlt  float64    `json:"transit_altitude,omitempty"`
	NoonRA      float64    `json:"noon_ra_hours"`
	NoonDec     float64    `json:"noon_dec_degrees"`
	NoonRAText  string     `json:"noon_ra"`
	NoonDecText string     `json:"noon_dec"`
	DistanceKm  float64    `json:"distance_km,omitempty"`
}

// TwilightExport holds dawn and dusk for the three twilight dips.
type TwilightExport struct {
	Civil        EventPair `json:"civil"`
	Nautical     EventPair `json:"nautical"`
	Astronomical EventPair `json:"astronomical"`
}

// EventPair is a dawn/dusk pair.
type EventPair struct {
	Dawn       *time.Time `json:"dawn,omitempty"`
	Dusk       *time.Time `json:"dusk,omitempty"`
	Visibility string     `json:"visibility"`
}

// PhaseExport is the lunar phase at local noon.
type PhaseExport struct {
	Name       string  `json:"name"`
	Fraction   float64 `json:"illuminated_fraction"`
	Elongation float64 `json:"elongation_degrees"`
	Waxing     bool    `json:"waxing"`
}

// ExportAlmanac converts computed days to an exportable document.
func ExportAlmanac(cfg ephem.Config, days []ephem.Day, generatedAt time.Time) *AlmanacExport {
	export := &AlmanacExport{
		GeneratedAt: generatedAt,
		Observer: ObserverExport{
			Name:      cfg.Observer.Name,
			Latitude:  cfg.Observer.LatDeg,
			Longitude: cfg.Observer.LonDeg,
		},
		HorizonDip: cfg.HorizonDip,
		Days:       make([]DayExport, 0, len(days)),
	}

	for _, d := range days {
		zone, _ := d.Date.Zone()
		de := DayExport{
			Date:       d.Date.Format("2006-01-02"),
			TZHours:    d.TZHours,
			Zone:       zone,
			JulianDate: d.JD,
			DayLength:  d.DayLength(),
			Sun:        exportBody(d, d.Sun),
			Moon:       exportBody(d, d.Moon),
			MoonPhase: PhaseExport{
				Name:       d.Phase.Name,
				Fraction:   d.Phase.Fraction,
				Elongation: d.Phase.Elongation,
				Waxing:     d.Phase.Waxing,
			},
		}
		if d.Twilight != nil {
			de.Twilight = &TwilightExport{
				Civil:        exportPair(d, d.Twilight.Civil),
				Nautical:     exportPair(d, d.Twilight.Nautical),
				Astronomical: exportPair(d, d.Twilight.Astronomical),
			}
		}
		export.Days = append(export.Days, de)
	}
	return export
}

func exportBody(d ephem.Day, b ephem.BodyDay) BodyExport {
	be := BodyExport{
		Rise:        eventTime(d, b.RiseSet.Rise, b.RiseSet.HasRise),
		Set:         eventTime(d, b.RiseSet.Set, b.RiseSet.HasSet),
		Visibility:  b.RiseSet.Above.String(),
		NoonRA:      b.Noon.RA,
		NoonDec:     b.Noon.Dec,
		NoonRAText:  FormatRA(b.Noon.RA),
		NoonDecText: FormatDec(b.Noon.Dec),
		DistanceKm:  b.Noon.Distance / 1000,
	}
	if b.Transit.OK {
		be.Transit = eventTime(d, b.Transit.Hour, true)
		be.TransitAlt = b.Transit.AltDeg
	}
	return be
}

func exportPair(d ephem.Day, rs astro.RiseSet) EventPair {
	return EventPair{
		Dawn:       eventTime(d, rs.Rise, rs.HasRise),
		Dusk:       eventTime(d, rs.Set, rs.HasSet),
		Visibility: rs.Above.String(),
	}
}

func eventTime(d ephem.Day, hours float64, ok bool) *time.Time {
	if !ok {
		return nil
	}
	t := d.LocalTime(hours)
	return &t
}

// WriteJSON writes the export as indented JSON.
func (a *AlmanacExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}
