// Package cerrors provides the typed errors used outside the completion engine.
// The engine itself reports "no partial" and "no matches" as outcomes, not errors.
package cerrors

import (
	"errors"
	"fmt"
)

// Error is implemented by every chatcomplete error
type Error interface {
	error
	// Code returns a stable identifier for programmatic handling
	Code() string
}

type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// ConfigurationError is returned when a config file cannot be loaded or is invalid
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{code: "CONFIG_ERROR", message: message, cause: cause},
		Path:      path,
	}
}

// PatternError is returned when a configured word pattern does not compile
type PatternError struct {
	baseError
	Field   string
	Pattern string
}

// NewPatternError creates a new pattern error
func NewPatternError(field, pattern string, cause error) *PatternError {
	return &PatternError{
		baseError: baseError{
			code:    "PATTERN_ERROR",
			message: fmt.Sprintf("invalid %s pattern %q", field, pattern),
			cause:   cause,
		},
		Field:   field,
		Pattern: pattern,
	}
}

// HistoryError is returned when a channel log cannot be read or parsed
type HistoryError struct {
	baseError
	Path string
	Line int
}

// NewHistoryError creates a new history error. line is 0 when not line-specific.
func NewHistoryError(path string, line int, message string, cause error) *HistoryError {
	return &HistoryError{
		baseError: baseError{code: "HISTORY_ERROR", message: message, cause: cause},
		Path:      path,
		Line:      line,
	}
}

// HostError wraps a failed call into the host (watch registration, fallback command)
type HostError struct {
	baseError
	Op string
}

// NewHostError creates a new host error
func NewHostError(op string, cause error) *HostError {
	return &HostError{
		baseError: baseError{code: "HOST_ERROR", message: "host " + op + " failed", cause: cause},
		Op:        op,
	}
}

// NotFoundError represents a missing resource such as a log file or view
type NotFoundError struct {
	baseError
	Resource string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, message string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{code: "NOT_FOUND", message: message},
		Resource:  resource,
	}
}

// AlreadyExistsError represents a file that would be overwritten
type AlreadyExistsError struct {
	baseError
	Resource string
}

// NewAlreadyExistsError creates a new already exists error
func NewAlreadyExistsError(resource string, message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		baseError: baseError{code: "ALREADY_EXISTS", message: message},
		Resource:  resource,
	}
}

// CodeOf returns the code of the first chatcomplete error in err's chain, or "".
func CodeOf(err error) string {
	var ce Error
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}
