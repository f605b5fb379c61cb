// Package config loads the observer configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-sunmoon/internal/astro"
	"github.com/litescript/ls-sunmoon/internal/ephem"
)

// Config is the on-disk configuration.
type Config struct {
	Observer   ObserverConfig `yaml:"observer"`
	Timezone   TimezoneConfig `yaml:"timezone"`
	HorizonDip float64        `yaml:"horizon_dip"`
	Days       int            `yaml:"days"`
	LogLevel   string         `yaml:"log_level"`
	Twilight   bool           `yaml:"twilight"`
}

// ObserverConfig locates the observer. Longitude is east positive.
type ObserverConfig struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// TimezoneConfig selects either a fixed offset or an IANA zone. Zone wins
// when both are set.
type TimezoneConfig struct {
	OffsetHours float64 `yaml:"offset_hours"`
	Zone        string  `yaml:"zone"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	def := ephem.DefaultConfig()
	return &Config{
		Observer: ObserverConfig{
			Name:      def.Observer.Name,
			Latitude:  def.Observer.LatDeg,
			Longitude: def.Observer.LonDeg,
		},
		HorizonDip: def.HorizonDip,
		Days:       7,
		LogLevel:   "info",
		Twilight:   def.Twilight,
	}
}

// Load reads a YAML file over the defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Timezone.Zone = strings.TrimSpace(cfg.Timezone.Zone)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	obs := astro.Observer{Name: c.Observer.Name, LatDeg: c.Observer.Latitude, LonDeg: c.Observer.Longitude}
	if err := obs.Validate(); err != nil {
		return err
	}

	tz := c.Timezone.OffsetHours
	if math.IsNaN(tz) || math.Abs(tz) > 14 {
		return &astro.NumericDomainError{Quantity: "timezone offset", Value: tz, Reason: "must be within [-14, 14] hours"}
	}
	if c.Timezone.Zone != "" {
		if _, err := time.LoadLocation(c.Timezone.Zone); err != nil {
			return &astro.ConfigurationError{Field: "timezone.zone", Value: c.Timezone.Zone, Reason: err.Error()}
		}
	}

	if math.IsNaN(c.HorizonDip) || math.IsInf(c.HorizonDip, 0) || c.HorizonDip < -90 || c.HorizonDip > 90 {
		return &astro.ConfigurationError{
			Field:  "horizon_dip",
			Value:  strconv.FormatFloat(c.HorizonDip, 'g', -1, 64),
			Reason: "must be a finite altitude in degrees",
		}
	}
	if c.Days < 1 || c.Days > ephem.MaxRangeDays {
		return &astro.ConfigurationError{
			Field:  "days",
			Value:  strconv.Itoa(c.Days),
			Reason: fmt.Sprintf("must be within [1, %d]", ephem.MaxRangeDays),
		}
	}
	return nil
}

// Ephem converts the configuration into calculator settings, resolving the
// IANA zone when one is named.
func (c *Config) Ephem() (ephem.Config, error) {
	if err := c.Validate(); err != nil {
		return ephem.Config{}, err
	}
	out := ephem.Config{
		Observer: astro.Observer{
			Name:   c.Observer.Name,
			LatDeg: c.Observer.Latitude,
			LonDeg: c.Observer.Longitude,
		},
		TZHours:    c.Timezone.OffsetHours,
		HorizonDip: c.HorizonDip,
		Twilight:   c.Twilight,
	}
	if c.Timezone.Zone != "" {
		loc, err := time.LoadLocation(c.Timezone.Zone)
		if err != nil {
			return ephem.Config{}, &astro.ConfigurationError{Field: "timezone.zone", Value: c.Timezone.Zone, Reason: err.Error()}
		}
		out.Location = loc
	}
	return out, nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
