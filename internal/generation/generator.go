package generation

import (
	"context"

	"github.com/cardforge/cardforge-api/internal/domain"
)

// CardRequest describes a single card-generation job. Exactly one of Text or
// Image must be set; Image requests additionally carry the sniffed MIME type.
type CardRequest struct {
	// Text is the extracted source text for text-based generation.
	Text string

	// Image holds raw image bytes for multimodal generation.
	Image []byte

	// ImageMIMEType is the MIME type of Image (e.g. image/png).
	ImageMIMEType string

	// NumFlashcards and NumMCQs are the requested card counts.
	NumFlashcards int
	NumMCQs       int

	// ContentType steers prompt selection (vocab vs knowledge).
	ContentType domain.ContentType
}

// IsImage reports whether the request carries image content.
func (r CardRequest) IsImage() bool {
	return len(r.Image) > 0
}

// Generator defines the interface for generating study content from source
// material. This interface serves as a boundary between the application core
// and external AI/LLM services, following the hexagonal architecture pattern.
type Generator interface {
	// GenerateCards creates flashcards and multiple-choice questions from
	// the source content described by req.
	//
	// Returns a slice of domain.Card pointers or an error if generation
	// fails for any reason (see errors.go for specific types).
	GenerateCards(ctx context.Context, req CardRequest) ([]*domain.Card, error)

	// GenerateChoices produces one correct answer and three plausible
	// distractors for a single question or term.
	GenerateChoices(ctx context.Context, input string) (*domain.Choices, error)
}
