// Package state provides thread-safe state management for the application.
package state

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/litescript/ls-sunmoon/internal/astro"
	"github.com/litescript/ls-sunmoon/internal/ephem"
)

// EventType names an almanac event.
type EventType string

const (
	EventSunrise  EventType = "SUNRISE"
	EventSunset   EventType = "SUNSET"
	EventMoonrise EventType = "MOONRISE"
	EventMoonset  EventType = "MOONSET"
	EventDawn     EventType = "CIVIL_DAWN"
	EventDusk     EventType = "CIVIL_DUSK"
	EventNoon     EventType = "SOLAR_NOON"
)

// Event is a dated almanac event.
type Event struct {
	Type EventType `json:"type"`
	Time time.Time `json:"time"`
}

// Events lists the events of a day in chronological order.
func Events(d ephem.Day) []Event {
	var events []Event
	add := func(typ EventType, hours float64, ok bool) {
		if ok {
			events = append(events, Event{Type: typ, Time: d.LocalTime(hours)})
		}
	}

	sun, moon := d.Sun.RiseSet, d.Moon.RiseSet
	add(EventSunrise, sun.Rise, sun.HasRise)
	add(EventSunset, sun.Set, sun.HasSet)
	add(EventNoon, d.Sun.Transit.Hour, d.Sun.Transit.OK)
	add(EventMoonrise, moon.Rise, moon.HasRise)
	add(EventMoonset, moon.Set, moon.HasSet)
	if d.Twilight != nil {
		civil := d.Twilight.Civil
		add(EventDawn, civil.Rise, civil.HasRise)
		add(EventDusk, civil.Set, civil.HasSet)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	})
	return events
}

// Config holds configuration for the state manager.
type Config struct {
	// WeekDays is how many days the week view covers.
	WeekDays int
	// TrackStep is the altitude sampling interval for the day view.
	TrackStep time.Duration
	// RefreshInterval is how often the live sky position is recomputed.
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		WeekDays:        7,
		TrackStep:       30 * time.Minute,
		RefreshInterval: 30 * time.Second,
	}
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	calc *ephem.Calculator
	cfg  Config

	// Selected date
	cursor time.Time

	// Computed state
	days            []ephem.Day
	sunTrack        []ephem.Sample
	moonTrack       []ephem.Sample
	sky             ephem.Sky
	lastCompute     time.Time
	lastError       error
	computeDuration time.Duration
}

// NewManager creates a new state manager with the cursor on start.
func NewManager(calc *ephem.Calculator, cfg Config, start time.Time) *Manager {
	def := DefaultConfig()
	if cfg.WeekDays <= 0 {
		cfg.WeekDays = def.WeekDays
	}
	if cfg.WeekDays > ephem.MaxRangeDays {
		cfg.WeekDays = ephem.MaxRangeDays
	}
	if cfg.TrackStep <= 0 {
		cfg.TrackStep = def.TrackStep
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = def.RefreshInterval
	}
	return &Manager{
		calc:   calc,
		cfg:    cfg,
		cursor: dateOnly(start),
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Config returns the calculator configuration.
func (m *Manager) Config() ephem.Config {
	return m.calc.Config()
}

// Cursor returns the selected date.
func (m *Manager) Cursor() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cursor
}

// SetCursor selects a date. Call Refresh to recompute.
func (m *Manager) SetCursor(date time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursor = dateOnly(date)
}

// Shift moves the cursor by n days and returns the new date.
func (m *Manager) Shift(n int) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursor = m.cursor.AddDate(0, 0, n)
	return m.cursor
}

// Refresh recomputes the week from the cursor, the day tracks and the sky
// at now. On error the previous data is kept and the error recorded.
func (m *Manager) Refresh(ctx context.Context, now time.Time) error {
	cursor := m.Cursor()
	began := time.Now()

	days, sunTrack, moonTrack, sky, err := m.compute(ctx, cursor, now)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastCompute = time.Now()
	m.computeDuration = time.Since(began)
	m.lastError = err
	if err != nil {
		return err
	}
	// The cursor may have moved while computing; keep the newer request.
	if !m.cursor.Equal(cursor) {
		return nil
	}
	m.days = days
	m.sunTrack = sunTrack
	m.moonTrack = moonTrack
	m.sky = sky
	return nil
}

func (m *Manager) compute(ctx context.Context, cursor, now time.Time) ([]ephem.Day, []ephem.Sample, []ephem.Sample, ephem.Sky, error) {
	days, err := m.calc.Range(ctx, cursor, m.cfg.WeekDays)
	if err != nil {
		return nil, nil, nil, ephem.Sky{}, err
	}
	sunTrack, err := m.calc.Track(astro.Sun{}, cursor, m.cfg.TrackStep)
	if err != nil {
		return nil, nil, nil, ephem.Sky{}, err
	}
	moonTrack, err := m.calc.Track(astro.Moon{}, cursor, m.cfg.TrackStep)
	if err != nil {
		return nil, nil, nil, ephem.Sky{}, err
	}
	sky, err := m.calc.SkyAt(now)
	if err != nil {
		return nil, nil, nil, ephem.Sky{}, err
	}
	return days, sunTrack, moonTrack, sky, nil
}

// UpdateSky recomputes only the live position.
func (m *Manager) UpdateSky(now time.Time) error {
	sky, err := m.calc.SkyAt(now)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.lastError = err
		return err
	}
	m.sky = sky
	return nil
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Config          ephem.Config
	Cursor          time.Time
	Days            []ephem.Day
	SunTrack        []ephem.Sample
	MoonTrack       []ephem.Sample
	Sky             ephem.Sky
	Events          []Event
	LastCompute     time.Time
	LastError       error
	ComputeDuration time.Duration
}

// Today returns the almanac for the cursor date, if computed.
func (s Snapshot) Today() (ephem.Day, bool) {
	if len(s.Days) == 0 {
		return ephem.Day{}, false
	}
	return s.Days[0], true
}

// NextEvent returns the first event after t, if any.
func (s Snapshot) NextEvent(t time.Time) (Event, bool) {
	for _, e := range s.Events {
		if e.Time.After(t) {
			return e, true
		}
	}
	return Event{}, false
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	days := make([]ephem.Day, len(m.days))
	copy(days, m.days)
	sunTrack := make([]ephem.Sample, len(m.sunTrack))
	copy(sunTrack, m.sunTrack)
	moonTrack := make([]ephem.Sample, len(m.moonTrack))
	copy(moonTrack, m.moonTrack)

	var events []Event
	for _, d := range days {
		events = append(events, Events(d)...)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	})

	return Snapshot{
		Config:          m.calc.Config(),
		Cursor:          m.cursor,
		Days:            days,
		SunTrack:        sunTrack,
		MoonTrack:       moonTrack,
		Sky:             m.sky,
		Events:          events,
		LastCompute:     m.lastCompute,
		LastError:       m.lastError,
		ComputeDuration: m.computeDuration,
	}
}

// RefreshInterval returns the configured live refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg.RefreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.RefreshInterval = d
}

// HasData returns true once a refresh has succeeded.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.days) > 0
}
