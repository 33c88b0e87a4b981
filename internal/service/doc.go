// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between the ingestion pipeline (defined
// in internal/ingest) and the card generator boundary (defined in
// internal/generation) to fulfill application features.
//
// The service package implements the application layer in the clean
// architecture. It abstracts away infrastructure details (which AI provider is
// used, how documents are parsed) while coordinating the flow of data between
// the delivery mechanism (the HTTP API) and the domain layer.
//
// Key components:
//
// 1. ContentService:
//   - Orchestrates document ingestion and card generation for uploaded files
//     and raw text submissions
//   - Produces distractor choices for standalone terms and questions
//   - Attaches request metadata (source filename, model name, elapsed time)
//     to every successful result
//
// 2. Dependency Management:
//   - Services receive dependencies through constructor injection
//   - Core dependencies include the document processor, the card generator,
//     and a structured logger
//
// 3. Error Handling:
//   - Service errors wrap the underlying ingest or generation error so
//     callers can classify them with errors.Is
//   - Provide meaningful error context for API responses
//
// The service layer depends on domain entities and the generation interface,
// but never on specific infrastructure implementations, maintaining the
// Dependency Inversion Principle.
package service
