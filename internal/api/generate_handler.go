package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/cardforge/cardforge-api/internal/api/shared"
	"github.com/cardforge/cardforge-api/internal/domain"
	"github.com/cardforge/cardforge-api/internal/platform/logger"
	"github.com/cardforge/cardforge-api/internal/service"
)

// defaultCardCount is used when the form omits num_flashcards or num_mcqs.
const defaultCardCount = 5

// multipartMemoryLimit bounds how much of the multipart body is held in
// memory before spilling to disk. The upload size cap itself is enforced
// against the actual file bytes.
const multipartMemoryLimit = 32 << 20

// ContentGenerator defines the service boundary the generate handler
// depends on. It is implemented by service.ContentService.
type ContentGenerator interface {
	GenerateFromFile(
		ctx context.Context,
		filename string,
		data []byte,
		opts service.GenerateOptions,
	) (*service.Result, error)
	GenerateFromText(
		ctx context.Context,
		text string,
		opts service.GenerateOptions,
	) (*service.Result, error)
	GenerateChoices(ctx context.Context, input string) (*domain.Choices, error)
}

// GenerateHandler handles card generation HTTP requests
type GenerateHandler struct {
	contentService ContentGenerator
	logger         *slog.Logger
	maxFlashcards  int
	maxMCQs        int
	maxUploadBytes int64
}

// NewGenerateHandler creates a new GenerateHandler
func NewGenerateHandler(
	contentService ContentGenerator,
	logger *slog.Logger,
	maxFlashcards, maxMCQs int,
	maxUploadBytes int64,
) *GenerateHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GenerateHandler")
	}
	if contentService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("contentService cannot be nil for GenerateHandler")
	}

	return &GenerateHandler{
		contentService: contentService,
		logger:         logger.With(slog.String("component", "generate_handler")),
		maxFlashcards:  maxFlashcards,
		maxMCQs:        maxMCQs,
		maxUploadBytes: maxUploadBytes,
	}
}

// Generate handles POST /api/v1/generate requests.
// It accepts a multipart form with exactly one of a file upload or a text
// field, plus optional num_flashcards, num_mcqs, and content_type fields.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	// Cap the request body slightly above the upload limit so oversized
	// uploads fail with a clear 413 instead of an opaque read error.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartMemoryLimit)

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			shared.RespondWithError(w, r, http.StatusRequestEntityTooLarge,
				ErrorTypeFileTooLarge, "Uploaded file exceeds the maximum allowed size")
			return
		}
		shared.RespondWithError(w, r, http.StatusBadRequest,
			ErrorTypeValidation, "Request must be a multipart form")
		return
	}

	opts, ok := h.parseGenerateOptions(w, r)
	if !ok {
		return
	}

	text := r.FormValue("text")
	file, header, fileErr := r.FormFile("file")
	hasFile := fileErr == nil
	hasText := strings.TrimSpace(text) != ""

	switch {
	case hasFile && hasText:
		shared.RespondWithError(w, r, http.StatusBadRequest, ErrorTypeValidation,
			"Provide either a file or text input, not both")
		return
	case !hasFile && !hasText:
		shared.RespondWithError(w, r, http.StatusBadRequest, ErrorTypeValidation,
			"Either a file or text input is required")
		return
	}

	var (
		result *service.Result
		err    error
	)
	if hasFile {
		defer func() { _ = file.Close() }()

		data, readErr := io.ReadAll(file)
		if readErr != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
				ErrorTypeValidation, "Failed to read uploaded file", readErr)
			return
		}

		log.Debug("processing file upload",
			slog.String("filename", header.Filename),
			slog.Int("size_bytes", len(data)))

		result, err = h.contentService.GenerateFromFile(r.Context(), header.Filename, data, opts)
	} else {
		log.Debug("processing text submission", slog.Int("text_length", len(text)))

		result, err = h.contentService.GenerateFromText(r.Context(), text, opts)
	}

	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), ErrorTypeFor(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resultToResponse(result))
}

// parseGenerateOptions reads and validates the tuning fields of the
// multipart form. On failure it writes the error response and returns
// ok=false.
func (h *GenerateHandler) parseGenerateOptions(
	w http.ResponseWriter,
	r *http.Request,
) (service.GenerateOptions, bool) {
	numFlashcards, err := parseCardCount(r.FormValue("num_flashcards"), h.maxFlashcards)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, ErrorTypeValidation,
			fmt.Sprintf("num_flashcards must be an integer between 0 and %d", h.maxFlashcards))
		return service.GenerateOptions{}, false
	}

	numMCQs, err := parseCardCount(r.FormValue("num_mcqs"), h.maxMCQs)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, ErrorTypeValidation,
			fmt.Sprintf("num_mcqs must be an integer between 0 and %d", h.maxMCQs))
		return service.GenerateOptions{}, false
	}

	if numFlashcards == 0 && numMCQs == 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, ErrorTypeValidation,
			"At least one flashcard or multiple choice question must be requested")
		return service.GenerateOptions{}, false
	}

	contentType, err := domain.ParseContentType(r.FormValue("content_type"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, ErrorTypeValidation,
			"content_type must be either \"vocab\" or \"knowledge\"")
		return service.GenerateOptions{}, false
	}

	return service.GenerateOptions{
		NumFlashcards: numFlashcards,
		NumMCQs:       numMCQs,
		ContentType:   contentType,
	}, true
}

// parseCardCount parses a count form value, applying the default when the
// field is absent and rejecting values outside [0, max]. The default is
// clamped so a low configured max still holds for omitted fields.
func parseCardCount(raw string, max int) (int, error) {
	if raw == "" {
		if defaultCardCount > max {
			return max, nil
		}
		return defaultCardCount, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse card count: %w", err)
	}
	if n < 0 || n > max {
		return 0, fmt.Errorf("card count %d outside [0, %d]", n, max)
	}

	return n, nil
}
