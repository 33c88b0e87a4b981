package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/cardforge/cardforge-api/internal/config"
	"github.com/cardforge/cardforge-api/internal/domain"
	"github.com/cardforge/cardforge-api/internal/generation"
	"google.golang.org/genai"
)

// mcqOptionCount is the number of distractors every MCQ must carry.
const mcqOptionCount = 3

// modelCaller abstracts the Gemini model invocation so the retry loop can be
// tested without a real client. Satisfied by genai.Client.Models.
type modelCaller interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API to generate study cards from text or images.
type GeminiGenerator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// prompts holds the parsed prompt templates
	prompts *promptLibrary

	// caller issues the Gemini API requests
	caller modelCaller

	// model is the name of the Gemini model to use
	model string
}

// compile-time interface check
var _ generation.Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a new instance of GeminiGenerator with the
// provided dependencies. It validates the configuration, parses the embedded
// prompt templates, and initializes the Gemini client.
func NewGeminiGenerator(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.LLMConfig,
) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	prompts, err := newPromptLibrary()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &GeminiGenerator{
		logger:  logger,
		config:  cfg,
		prompts: prompts,
		caller:  client.Models,
		model:   cfg.ModelName,
	}, nil
}

// GenerateCards creates flashcards and multiple-choice questions from the
// source content described by req.
func (g *GeminiGenerator) GenerateCards(
	ctx context.Context,
	req generation.CardRequest,
) ([]*domain.Card, error) {
	if req.Text == "" && !req.IsImage() {
		return nil, generation.ErrEmptyInput
	}

	prompt, err := g.prompts.ContentPrompt(
		req.Text, req.NumFlashcards, req.NumMCQs, req.ContentType, req.IsImage())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	if req.IsImage() {
		parts = append(parts, genai.NewPartFromBytes(req.Image, req.ImageMIMEType))
	}

	raw, err := g.callGeminiWithRetry(ctx, parts)
	if err != nil {
		return nil, err
	}

	return g.parseCardsResponse(ctx, raw)
}

// GenerateChoices produces one correct answer and three plausible distractors
// for the given question or term.
func (g *GeminiGenerator) GenerateChoices(
	ctx context.Context,
	input string,
) (*domain.Choices, error) {
	if strings.TrimSpace(input) == "" {
		return nil, generation.ErrEmptyInput
	}

	prompt, err := g.prompts.ChoicesPrompt(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	raw, err := g.callGeminiWithRetry(ctx, []*genai.Part{genai.NewPartFromText(prompt)})
	if err != nil {
		return nil, err
	}

	return g.parseChoicesResponse(ctx, raw)
}

// callGeminiWithRetry makes a call to the Gemini API with exponential backoff
// retry logic. Transient API errors are retried up to config.MaxRetries times
// with jittered backoff; permanent errors (content blocked by safety filters,
// empty or malformed replies) are returned immediately.
func (g *GeminiGenerator) callGeminiWithRetry(
	ctx context.Context,
	parts []*genai.Part,
) (string, error) {
	maxRetries := g.config.MaxRetries
	baseDelaySeconds := g.config.RetryDelaySeconds
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if maxRetries < 0 {
		g.logger.WarnContext(ctx, "invalid max retries value, using default", "max_retries", 3)
		maxRetries = 3
	}
	if baseDelaySeconds < 1 {
		g.logger.WarnContext(ctx, "invalid retry delay value, using default", "base_delay_seconds", 2)
		baseDelaySeconds = 2
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	genConfig := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(g.config.Temperature),
		ResponseMIMEType: "application/json",
	}

	for attempt := 0; attempt <= maxRetries; attempt++ {
		attemptNum := attempt + 1 // For logging (1-based)
		g.logger.InfoContext(ctx, "making Gemini API call",
			"model", g.model,
			"attempt", attemptNum,
			"max_attempts", maxRetries+1)

		resp, err := g.caller.GenerateContent(ctx, g.model, contents, genConfig)
		if err == nil {
			text, extractErr := extractResponseText(resp)
			if extractErr != nil {
				// Malformed or blocked replies do not improve on retry.
				g.logger.WarnContext(ctx, "permanent error from Gemini API, not retrying",
					"error", extractErr,
					"attempt", attemptNum)
				return "", extractErr
			}

			g.logger.InfoContext(ctx, "Gemini API call successful",
				"attempt", attemptNum,
				"response_length", len(text))
			return text, nil
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attemptNum,
			"error", err)

		if attempt >= maxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, maxRetries, err)
		}

		// Exponential backoff with jitter:
		// delay = baseDelay * 2^attempt * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		g.logger.InfoContext(ctx, "retrying after delay",
			"attempt", attemptNum,
			"delay", delay.String())

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			g.logger.WarnContext(ctx, "API call cancelled during retry delay",
				"attempt", attemptNum,
				"ctx_err", ctx.Err())
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}

	return "", fmt.Errorf("%w: failed after %d attempts",
		generation.ErrTransientFailure, maxRetries+1)
}

// extractResponseText pulls the concatenated text out of a Gemini response,
// mapping safety blocks and empty replies to permanent errors.
func extractResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)",
			generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}

	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var builder strings.Builder
	for _, part := range candidate.Content.Parts {
		builder.WriteString(part.Text)
	}

	text := builder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty text in response", generation.ErrInvalidResponse)
	}

	return text, nil
}

// parseCardsResponse converts the model's raw JSON reply into domain cards.
// If any card in the response fails validation, the method returns an error
// and no cards are returned.
func (g *GeminiGenerator) parseCardsResponse(ctx context.Context, raw string) ([]*domain.Card, error) {
	var parsed responseSchema
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v",
			generation.ErrInvalidResponse, err)
	}

	if len(parsed.Cards) == 0 {
		return nil, fmt.Errorf("%w: no cards in response", generation.ErrInvalidResponse)
	}

	g.logger.InfoContext(ctx, "parsing Gemini API response", "card_count", len(parsed.Cards))

	cards := make([]*domain.Card, 0, len(parsed.Cards))
	for i, schema := range parsed.Cards {
		card, err := schemaToCard(schema)
		if err != nil {
			return nil, fmt.Errorf("%w: card %d: %v", generation.ErrInvalidResponse, i, err)
		}

		cards = append(cards, card)
		g.logger.DebugContext(ctx, "created card from API response",
			"card_id", card.ID.String(),
			"card_type", card.Type.String(),
			"term_length", len(card.Term))
	}

	g.logger.InfoContext(ctx, "successfully parsed API response", "created_cards", len(cards))
	return cards, nil
}

// schemaToCard maps a single response card onto a validated domain.Card.
func schemaToCard(schema cardSchema) (*domain.Card, error) {
	cardType := domain.CardType(schema.Type)
	if !cardType.Valid() {
		return nil, fmt.Errorf("unknown card type %d", schema.Type)
	}

	options := []string{}
	if cardType == domain.CardTypeMCQ {
		normalized, err := normalizeOptions(schema.Options, schema.Definition)
		if err != nil {
			return nil, err
		}
		options = normalized
	}
	// Models occasionally echo options on flashcards despite the format
	// instructions; those are dropped rather than rejected.

	return domain.NewCard(schema.Term, schema.Definition, cardType, options)
}

// normalizeOptions cleans up MCQ distractors: trims whitespace, drops blanks
// and any option duplicating the correct answer, and truncates to exactly
// three. Fewer than three usable distractors is a malformed reply.
func normalizeOptions(options []string, correctAnswer string) ([]string, error) {
	cleaned := make([]string, 0, len(options))
	for _, opt := range options {
		opt = strings.TrimSpace(opt)
		if opt == "" || strings.EqualFold(opt, strings.TrimSpace(correctAnswer)) {
			continue
		}
		cleaned = append(cleaned, opt)
	}

	if len(cleaned) < mcqOptionCount {
		return nil, fmt.Errorf("mcq has %d usable options, need %d", len(cleaned), mcqOptionCount)
	}

	return cleaned[:mcqOptionCount], nil
}

// parseChoicesResponse converts the model's raw JSON reply into a validated
// domain.Choices value.
func (g *GeminiGenerator) parseChoicesResponse(ctx context.Context, raw string) (*domain.Choices, error) {
	var parsed choicesSchema
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v",
			generation.ErrInvalidResponse, err)
	}

	options, err := normalizeOptions(parsed.Options, parsed.CorrectChoice)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	choices, err := domain.NewChoices(parsed.CorrectChoice, options)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	g.logger.DebugContext(ctx, "parsed choices from API response",
		"correct_length", len(choices.CorrectChoice),
		"option_count", len(choices.Options))

	return choices, nil
}

// stripCodeFences removes a surrounding markdown code block from the model's
// reply. Some models wrap JSON output in ```json fences even when asked for
// bare JSON.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s)
}
