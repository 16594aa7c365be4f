package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/NikitaCOEUR/chatcomplete/internal/cerrors"
	"github.com/NikitaCOEUR/chatcomplete/internal/completion"
	"github.com/hashicorp/go-multierror"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of config validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// Validate checks the semantic rules the schema cannot express: patterns and
// the notice template must compile, bounds must be consistent, keys distinct.
func (c *Config) Validate() error {
	var result *multierror.Error

	if _, err := completion.CompilePattern(c.WordStart); err != nil {
		result = multierror.Append(result, cerrors.NewPatternError("word_start", c.WordStart, err))
	}
	if _, err := completion.CompilePattern(c.WordContinuation); err != nil {
		result = multierror.Append(result, cerrors.NewPatternError("word_continuation", c.WordContinuation, err))
	}
	if c.Lines <= 0 {
		result = multierror.Append(result, fieldError("lines", fmt.Sprintf("must be positive, got %d", c.Lines)))
	}
	if c.MaxRawLines < 0 {
		result = multierror.Append(result, fieldError("max_raw_lines", fmt.Sprintf("must not be negative, got %d", c.MaxRawLines)))
	}
	if c.MaxRawLines > 0 && c.MaxRawLines < c.Lines {
		result = multierror.Append(result, fieldError("max_raw_lines",
			fmt.Sprintf("(%d) is smaller than lines (%d); use 0 for no limit", c.MaxRawLines, c.Lines)))
	}
	if c.MessagesOnly && strings.TrimSpace(c.MessageTag) == "" {
		result = multierror.Append(result, fieldError("message_tag", "is required when messages_only is true"))
	}
	if _, err := completion.ParseNotice(c.NoticeTemplate); err != nil {
		result = multierror.Append(result, fieldError("notice_template", err.Error()))
	}
	if c.KeyBackward == "" || c.KeyForward == "" {
		result = multierror.Append(result, fieldError("key_backward", "both trigger keys must be set"))
	} else if c.KeyBackward == c.KeyForward {
		result = multierror.Append(result, fieldError("key_forward", fmt.Sprintf("is the same key as key_backward (%s)", c.KeyBackward)))
	}

	return result.ErrorOrNil()
}

// ValidateFile validates a config file against the JSON Schema and, when the
// structure is valid, against the semantic rules of Validate
func ValidateFile(path string) (*ValidationResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, cerrors.NewNotFoundError(path, "config file not found: "+path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	result, err := ValidateWithSchema(path, content)
	if err != nil || !result.Valid {
		return result, err
	}

	cfg, err := New().Load(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{Field: "syntax", Message: err.Error()})
		return result, nil
	}

	if err := cfg.Validate(); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ToValidationErrors(err)...)
	}
	return result, nil
}

type validationFieldError struct {
	field   string
	message string
}

func (e *validationFieldError) Error() string {
	return e.field + " " + e.message
}

func fieldError(field, message string) error {
	return &validationFieldError{field: field, message: message}
}

// ToValidationErrors flattens an error returned by Validate into one entry per problem
func ToValidationErrors(err error) []ValidationError {
	var merr *multierror.Error
	errs := []error{err}
	if errors.As(err, &merr) {
		errs = merr.Errors
	}

	out := make([]ValidationError, 0, len(errs))
	for _, e := range errs {
		var fe *validationFieldError
		var pe *cerrors.PatternError
		switch {
		case errors.As(e, &fe):
			out = append(out, ValidationError{Field: fe.field, Message: fe.message})
		case errors.As(e, &pe):
			out = append(out, ValidationError{Field: pe.Field, Message: pe.Error()})
		default:
			out = append(out, ValidationError{Field: "config", Message: e.Error()})
		}
	}
	return out
}
