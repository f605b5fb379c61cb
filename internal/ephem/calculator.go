package ephem

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/litescript/ls-sunmoon/internal/astro"
	"github.com/litescript/ls-sunmoon/internal/logging"
)

// MinTrackStep is the finest sampling interval Track accepts.
const MinTrackStep = time.Second

// maxCachedDays caps the day cache; it is cleared when full.
const maxCachedDays = 2 * MaxRangeDays

// Calculator builds Day almanacs for a fixed Config. It is safe for
// concurrent use.
type Calculator struct {
	cfg     Config
	log     *logging.Logger
	workers int

	mu    sync.RWMutex
	cache map[string]Day
}

// NewCalculator validates cfg and returns a Calculator. A nil logger
// discards output.
func NewCalculator(cfg Config, logger *logging.Logger) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("ephem config: %w", err)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Calculator{
		cfg:     cfg,
		log:     logger.Named("ephem"),
		workers: runtime.GOMAXPROCS(0),
		cache:   make(map[string]Day),
	}, nil
}

// Config returns the configuration in use.
func (c *Calculator) Config() Config {
	return c.cfg
}

// Day computes the almanac for the calendar date of date, taken in date's
// own location. Results are cached per calendar date.
func (c *Calculator) Day(date time.Time) (Day, error) {
	year, month, dom := date.Date()
	key := fmt.Sprintf("%04d-%02d-%02d", year, month, dom)

	c.mu.RLock()
	d, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return d, nil
	}

	d, err := c.compute(year, month, dom)
	if err != nil {
		return Day{}, fmt.Errorf("almanac for %s: %w", key, err)
	}

	c.mu.Lock()
	if len(c.cache) >= maxCachedDays {
		c.cache = make(map[string]Day)
	}
	c.cache[key] = d
	c.mu.Unlock()

	c.log.Debug("%s: sun %s, moon %s, phase %s", key,
		describe(d.Sun.RiseSet), describe(d.Moon.RiseSet), d.Phase.Name)
	return d, nil
}

func (c *Calculator) compute(year int, month time.Month, dom int) (Day, error) {
	jd, err := astro.JulianDate(year, int(month), dom)
	if err != nil {
		return Day{}, err
	}
	tz, zone := c.cfg.zoneFor(year, month, dom)
	obs := c.cfg.Observer

	day := Day{
		Date:    time.Date(year, month, dom, 0, 0, 0, 0, zone),
		JD:      jd,
		TZHours: tz,
	}

	if day.Sun, err = c.bodyDay(astro.Sun{}, jd, tz); err != nil {
		return Day{}, err
	}
	if day.Moon, err = c.bodyDay(astro.Moon{}, jd, tz); err != nil {
		return Day{}, err
	}

	if c.cfg.Twilight {
		var tw Twilight
		dips := []struct {
			dst *astro.RiseSet
			h0  float64
		}{
			{&tw.Civil, astro.TwilightCivil},
			{&tw.Nautical, astro.TwilightNautical},
			{&tw.Astronomical, astro.TwilightAstronomical},
		}
		for _, dip := range dips {
			rs, err := astro.FindRiseSet(astro.Sun{}, jd, tz, obs, dip.h0)
			if err != nil {
				return Day{}, err
			}
			*dip.dst = rs
		}
		day.Twilight = &tw
	}

	if day.Phase, err = astro.MoonPhaseAt(localNoon(jd, tz)); err != nil {
		return Day{}, err
	}
	return day, nil
}

func (c *Calculator) bodyDay(body astro.Body, jd, tz float64) (BodyDay, error) {
	obs := c.cfg.Observer

	rs, err := astro.FindRiseSet(body, jd, tz, obs, c.cfg.HorizonDip)
	if err != nil {
		return BodyDay{}, err
	}
	tr, err := astro.TransitFor(body, jd, tz, obs)
	if err != nil {
		return BodyDay{}, err
	}

	noon := localNoon(jd, tz)
	eq, err := body.EquatorialCoordinates(noon)
	if err != nil {
		return BodyDay{}, err
	}
	hz, err := astro.HorizontalPosition(body, noon, obs)
	if err != nil {
		return BodyDay{}, err
	}

	return BodyDay{
		Name:           body.Name(),
		RiseSet:        rs,
		Transit:        tr,
		Noon:           eq,
		NoonHorizontal: hz,
	}, nil
}

// localNoon returns the UT Julian Date of 12h local time.
func localNoon(jd, tz float64) float64 {
	return jd + (12-tz)/24
}

// Range computes days consecutive almanacs starting at start's calendar
// date. Days are computed concurrently and returned in calendar order. The
// first failure cancels the remaining work and no partial result is
// returned.
func (c *Calculator) Range(ctx context.Context, start time.Time, days int) ([]Day, error) {
	if days < 1 || days > MaxRangeDays {
		return nil, &astro.ConfigurationError{
			Field:  "days",
			Value:  strconv.Itoa(days),
			Reason: fmt.Sprintf("must be within [1, %d]", MaxRangeDays),
		}
	}

	began := time.Now()
	out := make([]Day, days)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i := 0; i < days; i++ {
		i := i
		date := start.AddDate(0, 0, i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := c.Day(date)
			if err != nil {
				return err
			}
			out[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.log.Info("computed %d day(s) from %s in %v", days, start.Format("2006-01-02"), time.Since(began).Round(time.Millisecond))
	return out, nil
}

// Track samples the horizontal position of body across the local day of
// date every step, from 0h to 24h inclusive.
func (c *Calculator) Track(body astro.Body, date time.Time, step time.Duration) ([]Sample, error) {
	if step < MinTrackStep {
		return nil, &astro.ConfigurationError{Field: "step", Value: step.String(), Reason: "must be at least " + MinTrackStep.String()}
	}
	year, month, dom := date.Date()
	jd, err := astro.JulianDate(year, int(month), dom)
	if err != nil {
		return nil, err
	}
	tz, _ := c.cfg.zoneFor(year, month, dom)

	stepHours := step.Hours()
	n := int(24/stepHours) + 1
	samples := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		h := float64(i) * stepHours
		pos, err := astro.HorizontalPosition(body, jd+(h-tz)/24, c.cfg.Observer)
		if err != nil {
			return nil, err
		}
		samples = append(samples, Sample{Hour: h, Position: pos})
	}
	return samples, nil
}

// SkyAt returns where the Sun and Moon are at instant t.
func (c *Calculator) SkyAt(t time.Time) (Sky, error) {
	jd := astro.JulianDateTime(t)
	obs := c.cfg.Observer

	sun, err := astro.HorizontalPosition(astro.Sun{}, jd, obs)
	if err != nil {
		return Sky{}, err
	}
	moon, err := astro.HorizontalPosition(astro.Moon{}, jd, obs)
	if err != nil {
		return Sky{}, err
	}
	phase, err := astro.MoonPhaseAt(jd)
	if err != nil {
		return Sky{}, err
	}
	return Sky{Time: t, Sun: sun, Moon: moon, Phase: phase}, nil
}

func describe(rs astro.RiseSet) string {
	switch {
	case rs.AlwaysAbove():
		return "always up"
	case rs.AlwaysBelow():
		return "always down"
	}
	rise, set := "--:--", "--:--"
	if rs.HasRise {
		rise = astro.FormatHours(rs.Rise)
	}
	if rs.HasSet {
		set = astro.FormatHours(rs.Set)
	}
	return rise + "/" + set
}
