package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cardforge/cardforge-api/internal/api/shared"
	"github.com/cardforge/cardforge-api/internal/platform/logger"
)

// ChoicesHandler handles distractor generation HTTP requests
type ChoicesHandler struct {
	contentService ContentGenerator
	logger         *slog.Logger
	modelName      string
}

// NewChoicesHandler creates a new ChoicesHandler
func NewChoicesHandler(
	contentService ContentGenerator,
	logger *slog.Logger,
	modelName string,
) *ChoicesHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ChoicesHandler")
	}
	if contentService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("contentService cannot be nil for ChoicesHandler")
	}

	return &ChoicesHandler{
		contentService: contentService,
		logger:         logger.With(slog.String("component", "choices_handler")),
		modelName:      modelName,
	}
}

// GenerateChoices handles POST /api/v1/choices requests.
// It accepts a JSON body with a single input field holding a term or
// question, and responds with the correct answer plus three distractors.
func (h *ChoicesHandler) GenerateChoices(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	start := time.Now()

	var req ChoicesRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, ErrorTypeValidation,
			"Request body must be valid JSON with an input field")
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, ErrorTypeValidation,
			"Input text must not be empty")
		return
	}

	if strings.TrimSpace(req.Input) == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, ErrorTypeValidation,
			"Input text must not be empty")
		return
	}

	log.Debug("generating choices", slog.Int("input_length", len(req.Input)))

	choices, err := h.contentService.GenerateChoices(r.Context(), req.Input)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), ErrorTypeFor(err), GetSafeErrorMessage(err), err)
		return
	}

	response := ChoicesResponse{
		Status: shared.StatusSuccess,
		Metadata: MetadataResponse{
			OriginalFilename:      "text_input",
			AIModel:               h.modelName,
			ProcessingTimeSeconds: time.Since(start).Seconds(),
		},
		Data: ChoicesData{
			CorrectChoice: choices.CorrectChoice,
			Options:       choices.Options,
		},
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}
