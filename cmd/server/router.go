package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cardforge/cardforge-api/internal/api"
	apiMiddleware "github.com/cardforge/cardforge-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Create API handlers using the application's services
	generateHandler := api.NewGenerateHandler(
		app.contentService,
		app.logger,
		app.config.Upload.MaxFlashcards,
		app.config.Upload.MaxMCQs,
		app.config.Upload.MaxFileSizeBytes(),
	)
	choicesHandler := api.NewChoicesHandler(app.contentService, app.logger, app.config.LLM.ModelName)
	systemHandler := api.NewSystemHandler()

	// Register routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/generate", generateHandler.Generate)
		r.Post("/choices", choicesHandler.GenerateChoices)
		r.Get("/health", systemHandler.Health)
	})

	r.Get("/health", systemHandler.Health)
	r.Get("/", systemHandler.Welcome)

	return r
}
