package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Card-specific validation errors. All wrap ErrValidation.
var (
	// ErrCardTermEmpty is returned when a card's term is empty.
	ErrCardTermEmpty = fmt.Errorf("%w: card term cannot be empty", ErrValidation)

	// ErrCardDefinitionEmpty is returned when a card's definition is empty.
	ErrCardDefinitionEmpty = fmt.Errorf("%w: card definition cannot be empty", ErrValidation)

	// ErrCardTypeInvalid is returned when a card's type is not a known value.
	ErrCardTypeInvalid = fmt.Errorf("%w: card type must be flashcard or mcq", ErrValidation)

	// ErrFlashcardHasOptions is returned when a flashcard carries answer options.
	ErrFlashcardHasOptions = fmt.Errorf("%w: flashcard cannot have options", ErrValidation)

	// ErrMCQOptionCount is returned when an MCQ does not carry exactly three
	// distractor options.
	ErrMCQOptionCount = fmt.Errorf("%w: mcq must have exactly 3 distractor options", ErrValidation)

	// ErrMCQOptionEmpty is returned when an MCQ distractor option is blank.
	ErrMCQOptionEmpty = fmt.Errorf("%w: mcq option cannot be empty", ErrValidation)
)

// CardType distinguishes plain flashcards from multiple-choice questions.
// The numeric values are part of the wire format consumed by clients.
type CardType int

const (
	// CardTypeFlashcard is a front/back card with no answer options.
	CardTypeFlashcard CardType = 1

	// CardTypeMCQ is a multiple-choice question. Its Options hold the
	// distractors only; the correct answer lives in Definition.
	CardTypeMCQ CardType = 2
)

// Valid reports whether the card type is a known value.
func (t CardType) Valid() bool {
	return t == CardTypeFlashcard || t == CardTypeMCQ
}

// String returns a human-readable name for the card type.
func (t CardType) String() string {
	switch t {
	case CardTypeFlashcard:
		return "flashcard"
	case CardTypeMCQ:
		return "mcq"
	default:
		return "unknown"
	}
}

// Card represents a single generated study card. For flashcards the Term is
// the front and the Definition is the back. For MCQs the Term is the question,
// the Definition is the correct answer, and Options hold the three incorrect
// choices the client shuffles in alongside the correct one.
type Card struct {
	ID         uuid.UUID `json:"id"`
	Term       string    `json:"term"`
	Definition string    `json:"definition"`
	Type       CardType  `json:"type"`
	Options    []string  `json:"options"`
}

// NewCard creates a Card with a fresh UUID and validates it.
// Returns an error if validation fails.
func NewCard(term, definition string, cardType CardType, options []string) (*Card, error) {
	if options == nil {
		options = []string{}
	}

	card := &Card{
		ID:         uuid.New(),
		Term:       term,
		Definition: definition,
		Type:       cardType,
		Options:    options,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns a ValidationError naming the offending field.
func (c *Card) Validate() error {
	if strings.TrimSpace(c.Term) == "" {
		return NewValidationError("term", "cannot be empty", ErrCardTermEmpty)
	}

	if strings.TrimSpace(c.Definition) == "" {
		return NewValidationError("definition", "cannot be empty", ErrCardDefinitionEmpty)
	}

	if !c.Type.Valid() {
		return NewValidationError("type", "must be flashcard or mcq", ErrCardTypeInvalid)
	}

	switch c.Type {
	case CardTypeFlashcard:
		if len(c.Options) != 0 {
			return NewValidationError("options", "flashcard cannot have options", ErrFlashcardHasOptions)
		}
	case CardTypeMCQ:
		if len(c.Options) != 3 {
			return NewValidationError("options", "mcq must have exactly 3 distractors", ErrMCQOptionCount)
		}
		for _, opt := range c.Options {
			if strings.TrimSpace(opt) == "" {
				return NewValidationError("options", "mcq option cannot be empty", ErrMCQOptionEmpty)
			}
		}
	}

	return nil
}
