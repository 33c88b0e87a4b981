package api

import (
	"github.com/cardforge/cardforge-api/internal/api/shared"
	"github.com/cardforge/cardforge-api/internal/domain"
	"github.com/cardforge/cardforge-api/internal/service"
)

// CardResponse represents a single generated card on the wire.
// Type is 1 for flashcards and 2 for multiple choice questions; Options
// holds the three distractors for MCQs and is empty for flashcards.
type CardResponse struct {
	Term       string   `json:"term"`
	Definition string   `json:"definition"`
	Type       int      `json:"type"`
	Options    []string `json:"options"`
}

// MetadataResponse describes how a result was produced.
type MetadataResponse struct {
	OriginalFilename      string  `json:"original_filename"`
	AIModel               string  `json:"ai_model"`
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
}

// GenerateResponse is the success envelope for POST /api/v1/generate.
type GenerateResponse struct {
	Status   string           `json:"status"`
	Metadata MetadataResponse `json:"metadata"`
	Data     CardsData        `json:"data"`
}

// CardsData wraps the generated card list.
type CardsData struct {
	Cards []CardResponse `json:"cards"`
}

// ChoicesRequest is the JSON body for POST /api/v1/choices.
type ChoicesRequest struct {
	Input string `json:"input" validate:"required"`
}

// ChoicesResponse is the success envelope for POST /api/v1/choices.
type ChoicesResponse struct {
	Status   string           `json:"status"`
	Metadata MetadataResponse `json:"metadata"`
	Data     ChoicesData      `json:"data"`
}

// ChoicesData carries the correct answer and its distractors.
type ChoicesData struct {
	CorrectChoice string   `json:"correct_choice"`
	Options       []string `json:"options"`
}

// HealthResponse is the payload for the health endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// WelcomeResponse is the payload for GET /.
type WelcomeResponse struct {
	Message string `json:"message"`
	Service string `json:"service"`
	Version string `json:"version"`
	Docs    string `json:"docs"`
}

// cardToResponse transforms a domain card into its wire representation.
func cardToResponse(card *domain.Card) CardResponse {
	options := card.Options
	if options == nil {
		options = []string{}
	}
	return CardResponse{
		Term:       card.Term,
		Definition: card.Definition,
		Type:       int(card.Type),
		Options:    options,
	}
}

// resultToResponse transforms a service result into the success envelope.
func resultToResponse(result *service.Result) GenerateResponse {
	cards := make([]CardResponse, 0, len(result.Cards))
	for _, card := range result.Cards {
		cards = append(cards, cardToResponse(card))
	}
	return GenerateResponse{
		Status: shared.StatusSuccess,
		Metadata: MetadataResponse{
			OriginalFilename:      result.Metadata.OriginalFilename,
			AIModel:               result.Metadata.Model,
			ProcessingTimeSeconds: result.Metadata.ProcessingTime,
		},
		Data: CardsData{Cards: cards},
	}
}
