package domain

import (
	"fmt"
	"strings"
)

// Choices-specific validation errors. All wrap ErrValidation.
var (
	// ErrChoicesCorrectEmpty is returned when the correct choice is blank.
	ErrChoicesCorrectEmpty = fmt.Errorf("%w: correct choice cannot be empty", ErrValidation)

	// ErrChoicesOptionCount is returned when a choice set does not carry
	// exactly three distractor options.
	ErrChoicesOptionCount = fmt.Errorf("%w: choices must have exactly 3 distractor options", ErrValidation)

	// ErrChoicesOptionEmpty is returned when a distractor option is blank.
	ErrChoicesOptionEmpty = fmt.Errorf("%w: choice option cannot be empty", ErrValidation)
)

// Choices is a generated answer set for a single question or term: one
// correct answer plus three incorrect but plausible distractors.
type Choices struct {
	CorrectChoice string   `json:"correct_choice"`
	Options       []string `json:"options"`
}

// NewChoices creates a validated Choices value.
func NewChoices(correct string, options []string) (*Choices, error) {
	choices := &Choices{
		CorrectChoice: correct,
		Options:       options,
	}

	if err := choices.Validate(); err != nil {
		return nil, err
	}

	return choices, nil
}

// Validate checks if the Choices value is well formed.
// Returns a ValidationError naming the offending field.
func (c *Choices) Validate() error {
	if strings.TrimSpace(c.CorrectChoice) == "" {
		return NewValidationError("correct_choice", "cannot be empty", ErrChoicesCorrectEmpty)
	}

	if len(c.Options) != 3 {
		return NewValidationError("options", "must have exactly 3 distractors", ErrChoicesOptionCount)
	}

	for _, opt := range c.Options {
		if strings.TrimSpace(opt) == "" {
			return NewValidationError("options", "option cannot be empty", ErrChoicesOptionEmpty)
		}
	}

	return nil
}
