package api

import (
	"net/http"

	"github.com/cardforge/cardforge-api/internal/api/shared"
)

// Service identity reported by the system endpoints.
const (
	ServiceName    = "cardforge-api"
	ServiceVersion = "1.0.0"
)

// SystemHandler serves the health and welcome endpoints.
type SystemHandler struct{}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// Health handles GET /health and GET /api/v1/health requests.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: ServiceName,
		Version: ServiceVersion,
	})
}

// Welcome handles GET / requests.
func (h *SystemHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, WelcomeResponse{
		Message: "Welcome to the CardForge API",
		Service: ServiceName,
		Version: ServiceVersion,
		Docs:    "/api/v1",
	})
}
