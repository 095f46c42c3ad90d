package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ninthhouse/arcana-api/internal/api/shared"
	"github.com/ninthhouse/arcana-api/internal/domain"
	"github.com/ninthhouse/arcana-api/internal/platform/logger"
	"github.com/ninthhouse/arcana-api/internal/redact"
	"github.com/ninthhouse/arcana-api/internal/service"
)

// StartSessionRequest represents the request body for opening a selection
// session. MonthIndex is zero-based (0 = January).
type StartSessionRequest struct {
	GroupID    string `json:"group_id"    validate:"required,uuid"`
	Person     string `json:"person"      validate:"required,min=1"`
	Year       int    `json:"year"        validate:"required,gte=1"`
	MonthIndex int    `json:"month_index" validate:"gte=0,lte=11"`
}

// PickRequest represents the request body for picking a card
type PickRequest struct {
	CardID string `json:"card_id" validate:"required,min=1"`
}

// SessionResponse represents the response data for a selection session
type SessionResponse struct {
	ID         string         `json:"id"`
	GroupID    string         `json:"group_id"`
	Person     string         `json:"person"`
	Year       int            `json:"year"`
	MonthIndex int            `json:"month_index"`
	Month      string         `json:"month"`
	State      string         `json:"state"`
	Picks      []CardResponse `json:"picks"`
}

// MonthReadingResponse represents one committed month entry
type MonthReadingResponse struct {
	MonthIndex int            `json:"month_index"`
	Month      string         `json:"month"`
	Cards      []CardResponse `json:"cards"`
}

// ReadingResponse represents a person's committed history for a year
type ReadingResponse struct {
	Person       string                 `json:"person"`
	Year         int                    `json:"year"`
	Months       []MonthReadingResponse `json:"months"`
	FilledMonths int                    `json:"filled_months"`
	Completed    bool                   `json:"completed"`
	CompletedAt  *time.Time             `json:"completed_at,omitempty"`
}

// CommitResponse represents the result of committing a month entry
type CommitResponse struct {
	Reading ReadingResponse `json:"reading"`
	Session SessionResponse `json:"session"`
}

// ReadingHandler handles selection session and reading HTTP requests
type ReadingHandler struct {
	readingService service.ReadingService
	logger         *slog.Logger
}

// NewReadingHandler creates a new ReadingHandler
func NewReadingHandler(readingService service.ReadingService, logger *slog.Logger) *ReadingHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReadingHandler")
	}

	return &ReadingHandler{
		readingService: readingService,
		logger:         logger.With(slog.String("component", "reading_handler")),
	}
}

// StartSession handles POST /sessions requests.
func (h *ReadingHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req StartSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	groupID, err := uuid.Parse(req.GroupID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid group ID format")
		return
	}

	session, err := h.readingService.StartSession(
		r.Context(),
		groupID,
		req.Person,
		req.Year,
		req.MonthIndex,
	)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, sessionToResponse(session))
}

// GetSession handles GET /sessions/{id} requests.
func (h *ReadingHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.pathSessionID(w, r)
	if !ok {
		return
	}

	session, err := h.readingService.GetSession(r.Context(), sessionID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(session))
}

// Candidates handles GET /sessions/{id}/candidates requests.
// It returns the cards pickable right now: the catalog minus ids used
// earlier in the year and ids already picked.
func (h *ReadingHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.pathSessionID(w, r)
	if !ok {
		return
	}

	cards, err := h.readingService.Candidates(r.Context(), sessionID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(cards))
}

// Pick handles POST /sessions/{id}/picks requests.
func (h *ReadingHandler) Pick(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sessionID, ok := h.pathSessionID(w, r)
	if !ok {
		return
	}

	var req PickRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("session_id", sessionID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	session, err := h.readingService.Pick(r.Context(), sessionID, req.CardID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(session))
}

// Unpick handles DELETE /sessions/{id}/picks/{cardID} requests.
func (h *ReadingHandler) Unpick(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.pathSessionID(w, r)
	if !ok {
		return
	}

	cardID := chi.URLParam(r, "cardID")
	if cardID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Card ID is required")
		return
	}

	session, err := h.readingService.Unpick(r.Context(), sessionID, cardID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(session))
}

// Commit handles POST /sessions/{id}/commit requests.
// It writes the four picked cards to the ledger and advances the session.
func (h *ReadingHandler) Commit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sessionID, ok := h.pathSessionID(w, r)
	if !ok {
		return
	}

	reading, session, err := h.readingService.Commit(r.Context(), sessionID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("month entry committed",
		slog.String("session_id", sessionID.String()),
		slog.Int("filled_months", reading.FilledMonths()))
	shared.RespondWithJSON(w, r, http.StatusOK, CommitResponse{
		Reading: readingToResponse(reading),
		Session: sessionToResponse(session),
	})
}

// Cancel handles POST /sessions/{id}/cancel requests.
// It discards the in-progress picks; the session stays usable.
func (h *ReadingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.pathSessionID(w, r)
	if !ok {
		return
	}

	session, err := h.readingService.Cancel(r.Context(), sessionID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(session))
}

// End handles DELETE /sessions/{id} requests.
func (h *ReadingHandler) End(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.pathSessionID(w, r)
	if !ok {
		return
	}

	if err := h.readingService.End(r.Context(), sessionID); err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetReading handles GET /groups/{id}/readings/{person}/{year} requests.
// A 204 response means the pair has no committed months yet.
func (h *ReadingHandler) GetReading(w http.ResponseWriter, r *http.Request) {
	pathID := chi.URLParam(r, "id")
	groupID, err := uuid.Parse(pathID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid group ID format")
		return
	}

	person := chi.URLParam(r, "person")
	if person == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Person is required")
		return
	}

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid year")
		return
	}

	reading, err := h.readingService.GetReading(r.Context(), groupID, person, year)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}
	if reading == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, readingToResponse(reading))
}

// pathSessionID extracts and parses the {id} path parameter, writing an
// error response when it is missing or malformed.
func (h *ReadingHandler) pathSessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	pathID := chi.URLParam(r, "id")
	if pathID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Session ID is required")
		return uuid.Nil, false
	}

	sessionID, err := uuid.Parse(pathID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID format")
		return uuid.Nil, false
	}

	return sessionID, true
}

// sessionToResponse converts a domain.Session to a SessionResponse
func sessionToResponse(session *domain.Session) SessionResponse {
	return SessionResponse{
		ID:         session.ID.String(),
		GroupID:    session.GroupID.String(),
		Person:     session.Person,
		Year:       session.Year,
		MonthIndex: session.MonthIndex,
		Month:      monthName(session.MonthIndex),
		State:      string(session.State()),
		Picks:      cardsToResponse(session.Picks),
	}
}

// monthName resolves a month index for display, tolerating out-of-range
// indices with an empty string.
func monthName(index int) string {
	name, err := domain.MonthName(index)
	if err != nil {
		return ""
	}
	return name
}

// readingToResponse converts a domain.PersonYearReading to a ReadingResponse.
// Only filled months are listed; absent months are simply missing.
func readingToResponse(reading *domain.PersonYearReading) ReadingResponse {
	months := make([]MonthReadingResponse, 0, domain.MonthsPerYear)
	for _, month := range reading.Months {
		if month == nil {
			continue
		}
		months = append(months, MonthReadingResponse{
			MonthIndex: month.MonthIndex,
			Month:      monthName(month.MonthIndex),
			Cards:      cardsToResponse(month.Cards),
		})
	}

	return ReadingResponse{
		Person:       reading.PersonName,
		Year:         reading.Year,
		Months:       months,
		FilledMonths: reading.FilledMonths(),
		Completed:    reading.Completed(),
		CompletedAt:  reading.CompletedAt,
	}
}
