package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cardforge/cardforge-api/internal/domain"
	"github.com/cardforge/cardforge-api/internal/generation"
	"github.com/cardforge/cardforge-api/internal/ingest"
)

// textInputFilename is reported as the source filename for raw text
// submissions, which have no file behind them.
const textInputFilename = "text_input"

// DocumentProcessor defines the ingestion boundary the service depends on.
// It is implemented by ingest.Processor.
type DocumentProcessor interface {
	// Process parses an uploaded file into a normalized Document.
	Process(ctx context.Context, filename string, data []byte) (*ingest.Document, error)
}

// GenerateOptions carries the caller's tuning knobs for card generation.
type GenerateOptions struct {
	// NumFlashcards is the requested number of term/definition cards.
	NumFlashcards int

	// NumMCQs is the requested number of multiple choice questions.
	NumMCQs int

	// ContentType steers the generator toward vocabulary extraction or
	// general knowledge questions.
	ContentType domain.ContentType
}

// Metadata describes how a generation result was produced.
type Metadata struct {
	// OriginalFilename is the name of the uploaded file, or "text_input"
	// for raw text submissions.
	OriginalFilename string

	// Model is the name of the AI model that produced the cards.
	Model string

	// ProcessingTime is the end-to-end duration of the request in seconds,
	// including document parsing and the provider round trip.
	ProcessingTime float64
}

// Result bundles generated cards with their request metadata.
type Result struct {
	Cards    []*domain.Card
	Metadata Metadata
}

// ContentService orchestrates document ingestion and card generation.
type ContentService struct {
	logger    *slog.Logger
	processor DocumentProcessor
	generator generation.Generator
	modelName string
}

// NewContentService creates a new ContentService with the given dependencies.
func NewContentService(
	logger *slog.Logger,
	processor DocumentProcessor,
	generator generation.Generator,
	modelName string,
) (*ContentService, error) {
	if logger == nil {
		return nil, NewContentServiceError("initialization", "logger is required", nil)
	}
	if processor == nil {
		return nil, NewContentServiceError("initialization", "missing processor", ErrNoProcessor)
	}
	if generator == nil {
		return nil, NewContentServiceError("initialization", "missing generator", ErrNoGenerator)
	}

	return &ContentService{
		logger:    logger.With(slog.String("component", "content_service")),
		processor: processor,
		generator: generator,
		modelName: modelName,
	}, nil
}

// GenerateFromFile parses an uploaded file and generates cards from its
// content. Text-bearing documents (txt, md, pdf, docx) are sent to the
// generator as extracted text; images are forwarded as raw bytes for the
// model to read directly.
func (s *ContentService) GenerateFromFile(
	ctx context.Context,
	filename string,
	data []byte,
	opts GenerateOptions,
) (*Result, error) {
	start := time.Now()

	doc, err := s.processor.Process(ctx, filename, data)
	if err != nil {
		return nil, NewContentServiceError("generate_from_file", "document processing failed", err)
	}

	req := generation.CardRequest{
		NumFlashcards: opts.NumFlashcards,
		NumMCQs:       opts.NumMCQs,
		ContentType:   opts.ContentType,
	}
	switch doc.Kind {
	case ingest.KindImage:
		req.Image = doc.Raw
		req.ImageMIMEType = doc.MIMEType
	default:
		req.Text = doc.Text
	}

	cards, err := s.generator.GenerateCards(ctx, req)
	if err != nil {
		return nil, NewContentServiceError("generate_from_file", "card generation failed", err)
	}

	elapsed := time.Since(start)
	s.logger.InfoContext(ctx, "generated cards from file",
		slog.String("filename", filename),
		slog.String("kind", string(doc.Kind)),
		slog.Int("card_count", len(cards)),
		slog.Duration("elapsed", elapsed))

	return &Result{
		Cards: cards,
		Metadata: Metadata{
			OriginalFilename: filename,
			Model:            s.modelName,
			ProcessingTime:   elapsed.Seconds(),
		},
	}, nil
}

// GenerateFromText generates cards from a raw text submission.
func (s *ContentService) GenerateFromText(
	ctx context.Context,
	text string,
	opts GenerateOptions,
) (*Result, error) {
	start := time.Now()

	if strings.TrimSpace(text) == "" {
		return nil, NewContentServiceError("generate_from_text", "empty submission", ErrEmptyText)
	}

	req := generation.CardRequest{
		Text:          text,
		NumFlashcards: opts.NumFlashcards,
		NumMCQs:       opts.NumMCQs,
		ContentType:   opts.ContentType,
	}

	cards, err := s.generator.GenerateCards(ctx, req)
	if err != nil {
		return nil, NewContentServiceError("generate_from_text", "card generation failed", err)
	}

	elapsed := time.Since(start)
	s.logger.InfoContext(ctx, "generated cards from text",
		slog.Int("text_length", len(text)),
		slog.Int("card_count", len(cards)),
		slog.Duration("elapsed", elapsed))

	return &Result{
		Cards: cards,
		Metadata: Metadata{
			OriginalFilename: textInputFilename,
			Model:            s.modelName,
			ProcessingTime:   elapsed.Seconds(),
		},
	}, nil
}

// GenerateChoices produces three plausible distractors for a term or
// question, along with the correct answer.
func (s *ContentService) GenerateChoices(ctx context.Context, input string) (*domain.Choices, error) {
	if strings.TrimSpace(input) == "" {
		return nil, NewContentServiceError("generate_choices", "empty submission", ErrEmptyText)
	}

	choices, err := s.generator.GenerateChoices(ctx, input)
	if err != nil {
		return nil, NewContentServiceError("generate_choices", "choice generation failed", err)
	}

	s.logger.InfoContext(ctx, "generated choices",
		slog.Int("input_length", len(input)),
		slog.Int("option_count", len(choices.Options)))

	return choices, nil
}
