package api

import (
	"log/slog"
	"net/http"

	"github.com/ninthhouse/arcana-api/internal/api/shared"
	"github.com/ninthhouse/arcana-api/internal/domain"
	"github.com/ninthhouse/arcana-api/internal/service"
)

// RankEntryResponse represents one row of a rankings result
type RankEntryResponse struct {
	Card  CardResponse `json:"card"`
	Count int          `json:"count"`
}

// RankingsResponse represents the response data for a rankings query
type RankingsResponse struct {
	Kind    string              `json:"kind"`
	Value   string              `json:"value,omitempty"`
	Entries []RankEntryResponse `json:"entries"`
}

// RankingsHandler handles rankings HTTP requests
type RankingsHandler struct {
	rankingsService service.RankingsService
	logger          *slog.Logger
}

// NewRankingsHandler creates a new RankingsHandler
func NewRankingsHandler(rankingsService service.RankingsService, logger *slog.Logger) *RankingsHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for RankingsHandler")
	}

	return &RankingsHandler{
		rankingsService: rankingsService,
		logger:          logger.With(slog.String("component", "rankings_handler")),
	}
}

// GetRankings handles GET /rankings requests.
// The kind query parameter picks the aggregation dimension (all, year,
// month, person, group) and value carries its argument. An empty match is a
// valid result with no entries.
func (h *RankingsHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	value := r.URL.Query().Get("value")

	filter, err := service.ParseFilter(kind, value)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	entries := h.rankingsService.Rank(r.Context(), filter)

	if kind == "" {
		kind = service.FilterKindAll
	}
	shared.RespondWithJSON(w, r, http.StatusOK, RankingsResponse{
		Kind:    kind,
		Value:   value,
		Entries: rankEntriesToResponse(entries),
	})
}

// rankEntriesToResponse converts rank entries, keeping rank order.
func rankEntriesToResponse(entries []domain.RankEntry) []RankEntryResponse {
	responses := make([]RankEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = RankEntryResponse{
			Card:  cardToResponse(entry.Card),
			Count: entry.Count,
		}
	}
	return responses
}
