package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/ninthhouse/arcana-api/internal/api/shared"
	"github.com/ninthhouse/arcana-api/internal/domain"
	"github.com/ninthhouse/arcana-api/internal/platform/logger"
	"github.com/ninthhouse/arcana-api/internal/redact"
	"github.com/ninthhouse/arcana-api/internal/service"
)

// SettingsRequest represents the request body for replacing the settings
type SettingsRequest struct {
	Theme       string `json:"theme"`
	LastGroupID string `json:"last_group_id"`
	LastYear    int    `json:"last_year"`
}

// SettingsResponse represents the response data for the settings
type SettingsResponse struct {
	Theme       string `json:"theme"`
	LastGroupID string `json:"last_group_id,omitempty"`
	LastYear    int    `json:"last_year,omitempty"`
}

// SettingsHandler handles settings HTTP requests
type SettingsHandler struct {
	settingsService service.SettingsService
	logger          *slog.Logger
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService service.SettingsService, logger *slog.Logger) *SettingsHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SettingsHandler")
	}

	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger.With(slog.String("component", "settings_handler")),
	}
}

// GetSettings handles GET /settings requests.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings := h.settingsService.GetSettings(r.Context())
	shared.RespondWithJSON(w, r, http.StatusOK, settingsToResponse(settings))
}

// UpdateSettings handles PUT /settings requests.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SettingsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	settings := domain.Settings{
		Theme:    req.Theme,
		LastYear: req.LastYear,
	}
	if req.LastGroupID != "" {
		groupID, err := uuid.Parse(req.LastGroupID)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid group ID format")
			return
		}
		settings.LastGroupID = &groupID
	}

	updated := h.settingsService.UpdateSettings(r.Context(), settings)
	shared.RespondWithJSON(w, r, http.StatusOK, settingsToResponse(updated))
}

// settingsToResponse converts domain.Settings to a SettingsResponse
func settingsToResponse(settings domain.Settings) SettingsResponse {
	response := SettingsResponse{
		Theme:    settings.Theme,
		LastYear: settings.LastYear,
	}
	if settings.LastGroupID != nil {
		response.LastGroupID = settings.LastGroupID.String()
	}
	return response
}
