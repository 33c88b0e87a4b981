package api

import (
	"errors"
	"net/http"

	"github.com/cardforge/cardforge-api/internal/domain"
	"github.com/cardforge/cardforge-api/internal/generation"
	"github.com/cardforge/cardforge-api/internal/ingest"
	"github.com/cardforge/cardforge-api/internal/service"
)

// Machine-readable error types used in the error envelope.
const (
	ErrorTypeValidation     = "validation_error"
	ErrorTypeFileTooLarge   = "file_too_large"
	ErrorTypeUnsupported    = "unsupported_file_type"
	ErrorTypeEmptyDocument  = "empty_document"
	ErrorTypeMalformed      = "malformed_document"
	ErrorTypeContentBlocked = "content_blocked"
	ErrorTypeGeneration     = "generation_error"
	ErrorTypeInternal       = "internal_error"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Payload too large
	case errors.Is(err, ingest.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge

	// Bad request errors
	case errors.Is(err, ingest.ErrUnsupportedType),
		errors.Is(err, ingest.ErrEmptyDocument),
		errors.Is(err, ingest.ErrNotUTF8),
		errors.Is(err, ingest.ErrMalformedDocument),
		errors.Is(err, service.ErrEmptyText),
		errors.Is(err, generation.ErrEmptyInput),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// The model refused the content; the request itself was well-formed
	case errors.Is(err, generation.ErrContentBlocked):
		return http.StatusUnprocessableEntity

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// ErrorTypeFor returns the machine-readable error type for the error
// envelope's error_type field.
func ErrorTypeFor(err error) string {
	switch {
	case errors.Is(err, ingest.ErrFileTooLarge):
		return ErrorTypeFileTooLarge
	case errors.Is(err, ingest.ErrUnsupportedType):
		return ErrorTypeUnsupported
	case errors.Is(err, ingest.ErrEmptyDocument),
		errors.Is(err, service.ErrEmptyText),
		errors.Is(err, generation.ErrEmptyInput):
		return ErrorTypeEmptyDocument
	case errors.Is(err, ingest.ErrNotUTF8),
		errors.Is(err, ingest.ErrMalformedDocument):
		return ErrorTypeMalformed
	case errors.Is(err, domain.ErrValidation):
		return ErrorTypeValidation
	case errors.Is(err, generation.ErrContentBlocked):
		return ErrorTypeContentBlocked
	case errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrTransientFailure):
		return ErrorTypeGeneration
	default:
		return ErrorTypeInternal
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details,
// in particular raw provider error text.
func GetSafeErrorMessage(err error) string {
	// Handle nil error
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Upload errors
	case errors.Is(err, ingest.ErrFileTooLarge):
		return "Uploaded file exceeds the maximum allowed size"

	case errors.Is(err, ingest.ErrUnsupportedType):
		return "Unsupported file type"

	case errors.Is(err, ingest.ErrEmptyDocument):
		return "No readable content found in the uploaded file"

	case errors.Is(err, ingest.ErrNotUTF8):
		return "Text file is not valid UTF-8"

	case errors.Is(err, ingest.ErrMalformedDocument):
		return "The uploaded file could not be parsed"

	// Input errors
	case errors.Is(err, service.ErrEmptyText),
		errors.Is(err, generation.ErrEmptyInput):
		return "Input text must not be empty"

	case errors.Is(err, domain.ErrValidation):
		return "Invalid request data"

	// Generation errors
	case errors.Is(err, generation.ErrContentBlocked):
		return "The content was blocked by the AI provider's safety filters"

	case errors.Is(err, generation.ErrInvalidResponse):
		return "The AI model returned an unusable response, please try again"

	case errors.Is(err, generation.ErrTransientFailure):
		return "The AI service is temporarily unavailable, please try again"

	case errors.Is(err, generation.ErrGenerationFailed):
		return "Card generation failed"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}
