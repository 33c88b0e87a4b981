package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cardforge/cardforge-api/internal/config"
	"github.com/cardforge/cardforge-api/internal/ingest"
	"github.com/cardforge/cardforge-api/internal/mocks"
	"github.com/cardforge/cardforge-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApplication wires an application around a mock generator so router
// tests run without a Gemini client.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:        8080,
			LogLevel:    "info",
			CORSOrigins: []string{"*"},
		},
		LLM: config.LLMConfig{
			GeminiAPIKey:      "test-key",
			ModelName:         "gemini-2.0-flash",
			Temperature:       0.3,
			MaxRetries:        3,
			RetryDelaySeconds: 2,
		},
		Upload: config.UploadConfig{
			MaxFileSizeMB: 10,
			MaxFlashcards: 20,
			MaxMCQs:       20,
		},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	processor, err := ingest.NewProcessor(logger, cfg.Upload.MaxFileSizeBytes())
	require.NoError(t, err)

	contentService, err := service.NewContentService(
		logger, processor, mocks.NewMockGeneratorWithDefaultCards(), cfg.LLM.ModelName)
	require.NoError(t, err)

	return &application{
		config:         cfg,
		logger:         logger,
		contentService: contentService,
	}
}

func TestRouterRoutes(t *testing.T) {
	app := newTestApplication(t)
	router := app.setupRouter()

	t.Run("health endpoints", func(t *testing.T) {
		for _, path := range []string{"/health", "/api/v1/health"} {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

			require.Equal(t, http.StatusOK, w.Code, path)
			assert.Contains(t, w.Body.String(), "healthy")
		}
	})

	t.Run("welcome endpoint", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "CardForge")
	})

	t.Run("generate from text end to end", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		require.NoError(t, writer.WriteField("text", "The cell wall protects plant cells."))
		require.NoError(t, writer.Close())

		r := httptest.NewRequest(http.MethodPost, "/api/v1/generate", body)
		r.Header.Set("Content-Type", writer.FormDataContentType())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "success", resp["status"])

		metadata, ok := resp["metadata"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "text_input", metadata["original_filename"])
	})

	t.Run("unknown route returns 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("cors preflight allowed", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodOptions, "/api/v1/generate", nil)
		r.Header.Set("Origin", "https://example.com")
		r.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
