// Package api provides HTTP handlers for the card generation API.
//
// Handlers translate HTTP requests into service calls and service results
// into the response envelope. They own request validation (multipart form
// parsing, count clamping, content type parsing) and the mapping of internal
// errors to HTTP status codes and sanitized messages.
//
// Subpackages:
//   - shared: response envelope helpers, JSON decoding, trace ID context
//   - middleware: request-scoped middleware (trace IDs)
package api
