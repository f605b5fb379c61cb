package astro

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks. The typed errors below unwrap to one
// of these.
var (
	ErrInvalidDate   = errors.New("invalid calendar date")
	ErrNumericDomain = errors.New("value outside numeric domain")
	ErrConfiguration = errors.New("invalid configuration")
)

// Supported proleptic Gregorian year range for JulianDate.
const (
	MinYear = 1
	MaxYear = 9999
)

// InvalidDateError reports a calendar date that JulianDate cannot convert.
type InvalidDateError struct {
	Year, Month, Day int
	Reason           string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %04d-%02d-%02d: %s", e.Year, e.Month, e.Day, e.Reason)
}

func (e *InvalidDateError) Unwrap() error { return ErrInvalidDate }

// NumericDomainError reports an input or intermediate value for which a
// formula is undefined, e.g. a latitude beyond the poles or a degenerate
// right ascension denominator.
type NumericDomainError struct {
	Quantity string
	Value    float64
	Reason   string
}

func (e *NumericDomainError) Error() string {
	return fmt.Sprintf("%s = %g: %s", e.Quantity, e.Value, e.Reason)
}

func (e *NumericDomainError) Unwrap() error { return ErrNumericDomain }

// ConfigurationError reports an unusable solver or application setting.
type ConfigurationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config %s=%s: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }
