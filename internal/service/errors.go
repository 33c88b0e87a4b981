package service

import (
	"errors"
	"fmt"
)

// Common service-level errors.
var (
	// ErrEmptyText indicates a text submission that is empty or whitespace-only.
	ErrEmptyText = errors.New("text input must not be empty")

	// ErrNoGenerator indicates the service was constructed without a generator.
	ErrNoGenerator = errors.New("card generator is required")

	// ErrNoProcessor indicates the service was constructed without a document
	// processor.
	ErrNoProcessor = errors.New("document processor is required")
)

// ContentServiceError is a custom error type for content service failures.
// It preserves the underlying ingest or generation error so callers can
// classify it with errors.Is.
type ContentServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ContentServiceError.
func (e *ContentServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("content service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("content service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ContentServiceError) Unwrap() error {
	return e.Err
}

// NewContentServiceError creates a new ContentServiceError.
func NewContentServiceError(operation, message string, err error) *ContentServiceError {
	return &ContentServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
