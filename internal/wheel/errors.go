package wheel

import (
	"errors"
	"fmt"
)

// Domain errors for engine construction and lifecycle.
var (
	// ErrInvalidConfiguration indicates a setting that makes the selection
	// contract impossible to satisfy.
	ErrInvalidConfiguration = errors.New("wheel: invalid configuration")

	// ErrStopped indicates the engine was torn down.
	ErrStopped = errors.New("wheel: engine stopped")
)

// ConfigError wraps ErrInvalidConfiguration with the offending field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfiguration, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}

// Invalid builds a ConfigError.
func Invalid(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
