package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ninthhouse/arcana-api/internal/api/shared"
	"github.com/ninthhouse/arcana-api/internal/domain"
	"github.com/ninthhouse/arcana-api/internal/platform/logger"
	"github.com/ninthhouse/arcana-api/internal/redact"
	"github.com/ninthhouse/arcana-api/internal/service"
)

// CardResponse represents the response data for a catalog card
type CardResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortText string `json:"short_text"`
	LongText  string `json:"long_text"`
}

// CatalogImportResponse represents the result of a catalog import
type CatalogImportResponse struct {
	Cards []CardResponse `json:"cards"`
	Count int            `json:"count"`
}

// UpdateCardRequest represents the request body for editing a card's texts
type UpdateCardRequest struct {
	Name      string `json:"name"       validate:"required,min=1"`
	ShortText string `json:"short_text"`
	LongText  string `json:"long_text"`
}

// CatalogHandler handles catalog-related HTTP requests
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *slog.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService, logger *slog.Logger) *CatalogHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CatalogHandler")
	}

	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger.With(slog.String("component", "catalog_handler")),
	}
}

// ImportCatalog handles PUT /catalog requests.
// The body is the raw import payload: a JSON array of card entries in any of
// the tolerated shapes. The whole catalog is replaced atomically.
func (h *CatalogHandler) ImportCatalog(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Warn("failed to read import body", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	cards, err := h.catalogService.ImportCatalog(r.Context(), json.RawMessage(body))
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	log.Info("catalog imported", slog.Int("cards", len(cards)))
	shared.RespondWithJSON(w, r, http.StatusOK, CatalogImportResponse{
		Cards: cardsToResponse(cards),
		Count: len(cards),
	})
}

// ListCards handles GET /catalog/cards requests.
func (h *CatalogHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards := h.catalogService.ListCards(r.Context())
	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(cards))
}

// GetCard handles GET /catalog/cards/{id} requests.
func (h *CatalogHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "id")
	if cardID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Card ID is required")
		return
	}

	card, err := h.catalogService.GetCard(r.Context(), cardID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// UpdateCard handles PUT /catalog/cards/{id} requests.
// An unknown id is accepted and changes nothing, matching the import
// contract of never rejecting individual entries.
func (h *CatalogHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cardID := chi.URLParam(r, "id")
	if cardID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Card ID is required")
		return
	}

	var req UpdateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("card_id", cardID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	card := domain.Card{
		ID:        cardID,
		Name:      req.Name,
		ShortText: req.ShortText,
		LongText:  req.LongText,
	}
	if err := h.catalogService.UpdateCard(r.Context(), card); err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// cardToResponse converts a domain.Card to a CardResponse
func cardToResponse(card domain.Card) CardResponse {
	return CardResponse{
		ID:        card.ID,
		Name:      card.Name,
		ShortText: card.ShortText,
		LongText:  card.LongText,
	}
}

// cardsToResponse converts a card slice, keeping catalog order.
func cardsToResponse(cards []domain.Card) []CardResponse {
	responses := make([]CardResponse, len(cards))
	for i, card := range cards {
		responses[i] = cardToResponse(card)
	}
	return responses
}
