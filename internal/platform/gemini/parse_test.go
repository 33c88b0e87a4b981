package gemini

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/cardforge/cardforge-api/internal/domain"
	"github.com/cardforge/cardforge-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newParseOnlyGenerator builds a generator wired for parsing tests only.
// The Gemini client stays nil because no network call is made.
func newParseOnlyGenerator(t *testing.T) *GeminiGenerator {
	t.Helper()
	prompts, err := newPromptLibrary()
	require.NoError(t, err)
	return &GeminiGenerator{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		prompts: prompts,
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bare_json", input: `{"cards": []}`, want: `{"cards": []}`},
		{name: "json_fence", input: "```json\n{\"cards\": []}\n```", want: `{"cards": []}`},
		{name: "plain_fence", input: "```\n{\"cards\": []}\n```", want: `{"cards": []}`},
		{name: "surrounding_whitespace", input: "  \n{\"a\":1}\n  ", want: `{"a":1}`},
		{name: "fence_with_whitespace", input: "\n```json\n{}\n```\n", want: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFences(tt.input))
		})
	}
}

func TestParseCardsResponse(t *testing.T) {
	g := newParseOnlyGenerator(t)
	ctx := context.Background()

	t.Run("valid_mixed_cards", func(t *testing.T) {
		raw := `{
			"cards": [
				{"term": "Supervised learning", "definition": "Learning with labeled training data", "type": 1, "options": []},
				{"term": "Which algorithm builds decision trees?", "definition": "Random forest", "type": 2,
				 "options": ["Linear regression", "K-means", "Naive Bayes"]}
			]
		}`

		cards, err := g.parseCardsResponse(ctx, raw)
		require.NoError(t, err)
		require.Len(t, cards, 2)

		assert.Equal(t, domain.CardTypeFlashcard, cards[0].Type)
		assert.Equal(t, "Supervised learning", cards[0].Term)
		assert.Empty(t, cards[0].Options)

		assert.Equal(t, domain.CardTypeMCQ, cards[1].Type)
		assert.Len(t, cards[1].Options, 3)
	})

	t.Run("fenced_response", func(t *testing.T) {
		raw := "```json\n{\"cards\":[{\"term\":\"A\",\"definition\":\"B\",\"type\":1,\"options\":[]}]}\n```"

		cards, err := g.parseCardsResponse(ctx, raw)
		require.NoError(t, err)
		assert.Len(t, cards, 1)
	})

	t.Run("flashcard_with_stray_options_dropped", func(t *testing.T) {
		raw := `{"cards":[{"term":"A","definition":"B","type":1,"options":["stray"]}]}`

		cards, err := g.parseCardsResponse(ctx, raw)
		require.NoError(t, err)
		require.Len(t, cards, 1)
		assert.Empty(t, cards[0].Options)
	})

	t.Run("mcq_option_echoing_answer_removed", func(t *testing.T) {
		raw := `{"cards":[{"term":"Q","definition":"Right", "type":2,
			"options":["Right", "Wrong A", "Wrong B", "Wrong C"]}]}`

		cards, err := g.parseCardsResponse(ctx, raw)
		require.NoError(t, err)
		require.Len(t, cards, 1)
		assert.Equal(t, []string{"Wrong A", "Wrong B", "Wrong C"}, cards[0].Options)
	})

	t.Run("mcq_with_extra_options_truncated", func(t *testing.T) {
		raw := `{"cards":[{"term":"Q","definition":"Right","type":2,
			"options":["W1","W2","W3","W4"]}]}`

		cards, err := g.parseCardsResponse(ctx, raw)
		require.NoError(t, err)
		assert.Equal(t, []string{"W1", "W2", "W3"}, cards[0].Options)
	})

	t.Run("mcq_with_too_few_options", func(t *testing.T) {
		raw := `{"cards":[{"term":"Q","definition":"Right","type":2,"options":["W1","W2"]}]}`

		cards, err := g.parseCardsResponse(ctx, raw)
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
		assert.Nil(t, cards)
	})

	t.Run("unknown_card_type", func(t *testing.T) {
		raw := `{"cards":[{"term":"Q","definition":"A","type":7,"options":[]}]}`

		cards, err := g.parseCardsResponse(ctx, raw)
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
		assert.Nil(t, cards)
	})

	t.Run("missing_term", func(t *testing.T) {
		raw := `{"cards":[{"term":"","definition":"A","type":1,"options":[]}]}`

		cards, err := g.parseCardsResponse(ctx, raw)
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
		assert.Nil(t, cards)
	})

	t.Run("no_cards", func(t *testing.T) {
		cards, err := g.parseCardsResponse(ctx, `{"cards":[]}`)
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
		assert.Nil(t, cards)
	})

	t.Run("not_json", func(t *testing.T) {
		cards, err := g.parseCardsResponse(ctx, "I could not generate cards, sorry.")
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
		assert.Nil(t, cards)
	})
}

func TestParseChoicesResponse(t *testing.T) {
	g := newParseOnlyGenerator(t)
	ctx := context.Background()

	t.Run("valid_choices", func(t *testing.T) {
		raw := `{"correct_choice": "Paris", "options": ["London", "Berlin", "Madrid"]}`

		choices, err := g.parseChoicesResponse(ctx, raw)
		require.NoError(t, err)
		assert.Equal(t, "Paris", choices.CorrectChoice)
		assert.Equal(t, []string{"London", "Berlin", "Madrid"}, choices.Options)
	})

	t.Run("correct_answer_leaked_into_options", func(t *testing.T) {
		raw := `{"correct_choice": "Paris", "options": ["Paris", "London", "Berlin", "Madrid"]}`

		choices, err := g.parseChoicesResponse(ctx, raw)
		require.NoError(t, err)
		assert.Equal(t, []string{"London", "Berlin", "Madrid"}, choices.Options)
	})

	t.Run("too_few_options", func(t *testing.T) {
		raw := `{"correct_choice": "Paris", "options": ["London"]}`

		choices, err := g.parseChoicesResponse(ctx, raw)
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
		assert.Nil(t, choices)
	})

	t.Run("empty_correct_choice", func(t *testing.T) {
		raw := `{"correct_choice": "", "options": ["London", "Berlin", "Madrid"]}`

		choices, err := g.parseChoicesResponse(ctx, raw)
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
		assert.Nil(t, choices)
	})

	t.Run("not_json", func(t *testing.T) {
		choices, err := g.parseChoicesResponse(ctx, "no dice")
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
		assert.Nil(t, choices)
	})
}

func TestNewGeminiGeneratorValidation(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("nil_logger", func(t *testing.T) {
		g, err := NewGeminiGenerator(ctx, nil, validLLMConfig())
		assert.Error(t, err)
		assert.Nil(t, g)
	})

	t.Run("missing_api_key", func(t *testing.T) {
		cfg := validLLMConfig()
		cfg.GeminiAPIKey = ""
		g, err := NewGeminiGenerator(ctx, logger, cfg)
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
		assert.Nil(t, g)
	})

	t.Run("missing_model_name", func(t *testing.T) {
		cfg := validLLMConfig()
		cfg.ModelName = ""
		g, err := NewGeminiGenerator(ctx, logger, cfg)
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
		assert.Nil(t, g)
	})
}
