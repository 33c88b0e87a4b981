package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is the base error for every domain validation failure.
	// Specific sentinels wrap it, so errors.Is(err, ErrValidation) classifies
	// any invalid entity regardless of which rule it broke.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidContentType is returned when a content type is not one of
	// the supported values.
	ErrInvalidContentType = fmt.Errorf("%w: invalid content type", ErrValidation)
)

// ValidationError provides field-level context for a validation failure.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError wrapping the given sentinel.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// Unwrap returns the wrapped sentinel error so errors.Is keeps working.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
