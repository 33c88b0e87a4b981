package mocks

import (
	"context"
	"sync"

	"github.com/cardforge/cardforge-api/internal/domain"
	"github.com/cardforge/cardforge-api/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateCardsFn allows test cases to mock the GenerateCards behavior
	GenerateCardsFn func(ctx context.Context, req generation.CardRequest) ([]*domain.Card, error)

	// GenerateChoicesFn allows test cases to mock the GenerateChoices behavior
	GenerateChoicesFn func(ctx context.Context, input string) (*domain.Choices, error)

	// Default response values
	Cards   []*domain.Card
	Choices *domain.Choices
	Err     error

	// Call tracking for verification
	GenerateCardsCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times GenerateCards was called
		Count int

		// Requests contains all requests passed to GenerateCards calls
		Requests []generation.CardRequest
	}

	GenerateChoicesCalls struct {
		mu sync.Mutex

		Count  int
		Inputs []string
	}
}

// compile-time interface check
var _ generation.Generator = (*MockGenerator)(nil)

// GenerateCards implements the generation.Generator interface
func (m *MockGenerator) GenerateCards(
	ctx context.Context,
	req generation.CardRequest,
) ([]*domain.Card, error) {
	m.GenerateCardsCalls.mu.Lock()
	m.GenerateCardsCalls.Count++
	m.GenerateCardsCalls.Requests = append(m.GenerateCardsCalls.Requests, req)
	m.GenerateCardsCalls.mu.Unlock()

	if m.GenerateCardsFn != nil {
		return m.GenerateCardsFn(ctx, req)
	}

	return m.Cards, m.Err
}

// GenerateChoices implements the generation.Generator interface
func (m *MockGenerator) GenerateChoices(
	ctx context.Context,
	input string,
) (*domain.Choices, error) {
	m.GenerateChoicesCalls.mu.Lock()
	m.GenerateChoicesCalls.Count++
	m.GenerateChoicesCalls.Inputs = append(m.GenerateChoicesCalls.Inputs, input)
	m.GenerateChoicesCalls.mu.Unlock()

	if m.GenerateChoicesFn != nil {
		return m.GenerateChoicesFn(ctx, input)
	}

	return m.Choices, m.Err
}

// NewMockGeneratorWithCards creates a MockGenerator that returns the specified cards
func NewMockGeneratorWithCards(cards []*domain.Card) *MockGenerator {
	return &MockGenerator{
		Cards: cards,
	}
}

// NewMockGeneratorWithError creates a MockGenerator that returns the specified error
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{
		Err: err,
	}
}

// NewMockGeneratorWithDefaultCards creates a MockGenerator with a small
// sample deck: one flashcard and one MCQ.
func NewMockGeneratorWithDefaultCards() *MockGenerator {
	flashcard, _ := domain.NewCard(
		"Photosynthesis",
		"The process by which plants convert light into chemical energy",
		domain.CardTypeFlashcard,
		nil,
	)
	mcq, _ := domain.NewCard(
		"Which pigment absorbs light during photosynthesis?",
		"Chlorophyll",
		domain.CardTypeMCQ,
		[]string{"Melanin", "Keratin", "Hemoglobin"},
	)

	return &MockGenerator{
		Cards: []*domain.Card{flashcard, mcq},
	}
}
