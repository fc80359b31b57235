package maze

import (
	"errors"
	"fmt"
)

// Engine errors.
var (
	// ErrConfiguration is matched by every *ConfigError.
	ErrConfiguration = errors.New("maze: invalid configuration")

	// ErrInvariantViolation signals corrupted engine state. Valid inputs never produce it.
	ErrInvariantViolation = errors.New("maze: invariant violation")

	// ErrNotExhausted is returned when the path is requested before the flood is over.
	ErrNotExhausted = errors.New("maze: flood is not exhausted")
)

// ConfigError describes a rejected construction parameter.
type ConfigError struct {
	Field  string // Name of the offending parameter
	Reason string // What is wrong with it
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrConfiguration, e.Field, e.Reason)
}

// Is reports ErrConfiguration as a match so callers can use errors.Is.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

func configErrorf(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
