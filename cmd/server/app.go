package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cardforge/cardforge-api/internal/config"
	"github.com/cardforge/cardforge-api/internal/ingest"
	"github.com/cardforge/cardforge-api/internal/platform/gemini"
	"github.com/cardforge/cardforge-api/internal/service"
)

// application holds the wired dependencies of the running server.
type application struct {
	config         *config.Config
	logger         *slog.Logger
	contentService *service.ContentService
}

// newApplication builds the dependency graph: document processor, Gemini
// generator, and the content service that orchestrates them.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (*application, error) {
	processor, err := ingest.NewProcessor(logger, cfg.Upload.MaxFileSizeBytes())
	if err != nil {
		return nil, fmt.Errorf("create document processor: %w", err)
	}

	generator, err := gemini.NewGeminiGenerator(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("create gemini generator: %w", err)
	}

	contentService, err := service.NewContentService(logger, processor, generator, cfg.LLM.ModelName)
	if err != nil {
		return nil, fmt.Errorf("create content service: %w", err)
	}

	return &application{
		config:         cfg,
		logger:         logger,
		contentService: contentService,
	}, nil
}
