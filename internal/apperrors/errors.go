// Package apperrors classifies command failures and maps them to process
// exit codes.
//
// Solver sentinels are matched with errors.Is, so wrapped errors keep
// their exit code.
package apperrors

import (
	"fmt"
)

// Exit codes returned by the bisect command.
const (
	ExitSuccess       = 0 // converged, or nothing to solve
	ExitErrorGeneric  = 1 // unexpected failure
	ExitNoSignChange  = 2 // the interval does not bracket a root
	ExitMaxIterations = 3 // the iteration budget ran out
	ExitErrorConfig   = 4 // invalid flags, configuration or input
)

// ConfigError represents a user configuration error such as an unreadable
// config file or an unknown preset.
type ConfigError struct {
	Message string
	Cause   error
}

func (e ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e ConfigError) Unwrap() error { return e.Cause }

// NewConfigError creates a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// WrapConfigError attaches a configuration context to cause. A nil cause
// yields nil.
func WrapConfigError(cause error, format string, a ...any) error {
	if cause == nil {
		return nil
	}
	return ConfigError{Message: fmt.Sprintf(format, a...), Cause: cause}
}

// ValidationError reports a single field that failed validation.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}
