package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when input fails validation.
	// It is usually wrapped in a ValidationError carrying the field issues.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when a card ID path parameter is malformed.
	ErrInvalidID = errors.New("invalid ID")
)

// Issue codes reported in validation issues.
const (
	IssueInvalidType      = "invalid_type"
	IssueTooSmall         = "too_small"
	IssueTooBig           = "too_big"
	IssueInvalidEnumValue = "invalid_enum_value"
	IssueInvalidString    = "invalid_string"
	IssueInvalidJSON      = "invalid_json"
	IssueCustom           = "custom"
)

// Issue describes one rejected field. Field is empty when the problem concerns
// the input as a whole.
type Issue struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError carries every issue found while parsing an input.
type ValidationError struct {
	Issues []Issue
	Err    error
}

// NewValidationError creates a ValidationError wrapping err.
// A nil err defaults to ErrValidation.
func NewValidationError(err error, issues ...Issue) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Issues: issues, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return e.Err.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Field == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("%v: %s", e.Err, strings.Join(parts, "; "))
}

// Unwrap returns the wrapped sentinel to support errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// HasField reports whether any issue names the given field.
func (e *ValidationError) HasField(field string) bool {
	for _, issue := range e.Issues {
		if issue.Field == field {
			return true
		}
	}
	return false
}
