package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrValidation      = errors.New("validation error")
	ErrSourceFormat    = errors.New("source format violation")
	ErrAlreadyImported = errors.New("already imported")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// SourceFormatError reports a violation of the dictionary source format.
// These are never recoverable: the source is expected to be pre-validated,
// so the whole import aborts.
type SourceFormatError struct {
	// Sequence of the entry being read, empty if unknown.
	Sequence string
	Element  string
	Detail   string
}

func (e *SourceFormatError) Error() string {
	if e.Sequence == "" {
		return fmt.Sprintf("source format: <%s>: %s", e.Element, e.Detail)
	}
	return fmt.Sprintf("source format: entry %s: <%s>: %s", e.Sequence, e.Element, e.Detail)
}

func (e *SourceFormatError) Unwrap() error { return ErrSourceFormat }
