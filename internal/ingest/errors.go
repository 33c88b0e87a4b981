package ingest

import "errors"

// Common errors returned by the ingest package
var (
	// ErrUnsupportedType is returned when a file's extension is not supported.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrFileTooLarge is returned when an upload exceeds the configured size cap.
	ErrFileTooLarge = errors.New("file size exceeds maximum allowed size")

	// ErrEmptyDocument is returned when a file yields no usable text content.
	ErrEmptyDocument = errors.New("no text content found in document")

	// ErrNotUTF8 is returned when a text file is not valid UTF-8.
	ErrNotUTF8 = errors.New("text file is not valid UTF-8")

	// ErrMalformedDocument is returned when a file cannot be parsed as its
	// claimed format.
	ErrMalformedDocument = errors.New("document is malformed or corrupt")
)
