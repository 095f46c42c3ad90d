package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ninthhouse/arcana-api/internal/api/shared"
	"github.com/ninthhouse/arcana-api/internal/domain"
	"github.com/ninthhouse/arcana-api/internal/platform/logger"
	"github.com/ninthhouse/arcana-api/internal/redact"
	"github.com/ninthhouse/arcana-api/internal/service"
)

// CreateGroupRequest represents the request body for creating a group
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

// AddMemberRequest represents the request body for adding a group member
type AddMemberRequest struct {
	Name      string `json:"name"       validate:"required,min=1"`
	StartYear int    `json:"start_year" validate:"required,gte=1"`
}

// JoinYearRequest represents the request body for joining a member to a year
type JoinYearRequest struct {
	Year int `json:"year" validate:"required,gte=1"`
}

// MemberResponse represents the response data for a roster member
type MemberResponse struct {
	Name        string `json:"name"`
	JoinedYears []int  `json:"joined_years"`
}

// GroupResponse represents the response data for a group
type GroupResponse struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Members []MemberResponse `json:"members"`
}

// RosterResponse represents the member names eligible for a year
type RosterResponse struct {
	Year    int      `json:"year"`
	Members []string `json:"members"`
}

// GroupHandler handles group-related HTTP requests
type GroupHandler struct {
	groupService service.GroupService
	logger       *slog.Logger
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupService service.GroupService, logger *slog.Logger) *GroupHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GroupHandler")
	}

	return &GroupHandler{
		groupService: groupService,
		logger:       logger.With(slog.String("component", "group_handler")),
	}
}

// CreateGroup handles POST /groups requests.
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateGroupRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	group, err := h.groupService.CreateGroup(r.Context(), req.Name)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, groupToResponse(group))
}

// ListGroups handles GET /groups requests.
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups := h.groupService.ListGroups(r.Context())

	responses := make([]GroupResponse, len(groups))
	for i, group := range groups {
		responses[i] = groupToResponse(group)
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// GetGroup handles GET /groups/{id} requests.
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := h.pathGroupID(w, r)
	if !ok {
		return
	}

	group, err := h.groupService.GetGroup(r.Context(), groupID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, groupToResponse(group))
}

// GetRoster handles GET /groups/{id}/roster requests.
// The year query parameter limits the roster to members whose joined years
// include it; without a year every member is eligible.
func (h *GroupHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	groupID, ok := h.pathGroupID(w, r)
	if !ok {
		return
	}

	group, err := h.groupService.GetGroup(r.Context(), groupID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	yearParam := r.URL.Query().Get("year")
	if yearParam == "" {
		names := make([]string, len(group.Members))
		for i, member := range group.Members {
			names[i] = member.Name
		}
		shared.RespondWithJSON(w, r, http.StatusOK, RosterResponse{Members: names})
		return
	}

	year, err := strconv.Atoi(yearParam)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid year")
		return
	}

	names := make([]string, 0, len(group.Members))
	for _, i := range group.MembersForYear(year) {
		names = append(names, group.Members[i].Name)
	}
	shared.RespondWithJSON(w, r, http.StatusOK, RosterResponse{
		Year:    year,
		Members: names,
	})
}

// AddMember handles POST /groups/{id}/members requests.
func (h *GroupHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	groupID, ok := h.pathGroupID(w, r)
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("group_id", groupID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	group, err := h.groupService.AddMember(r.Context(), groupID, req.Name, req.StartYear)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, groupToResponse(group))
}

// JoinYear handles POST /groups/{id}/members/{index}/years requests.
func (h *GroupHandler) JoinYear(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	groupID, ok := h.pathGroupID(w, r)
	if !ok {
		return
	}

	memberIndex, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid member index")
		return
	}

	var req JoinYearRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("group_id", groupID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	group, err := h.groupService.JoinYear(r.Context(), groupID, memberIndex, req.Year)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, groupToResponse(group))
}

// pathGroupID extracts and parses the {id} path parameter, writing an error
// response when it is missing or malformed.
func (h *GroupHandler) pathGroupID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	pathID := chi.URLParam(r, "id")
	if pathID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Group ID is required")
		return uuid.Nil, false
	}

	groupID, err := uuid.Parse(pathID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid group ID format")
		return uuid.Nil, false
	}

	return groupID, true
}

// groupToResponse converts a domain.Group to a GroupResponse
func groupToResponse(group *domain.Group) GroupResponse {
	members := make([]MemberResponse, len(group.Members))
	for i, member := range group.Members {
		years := make([]int, len(member.JoinedYears))
		copy(years, member.JoinedYears)
		members[i] = MemberResponse{
			Name:        member.Name,
			JoinedYears: years,
		}
	}
	return GroupResponse{
		ID:      group.ID.String(),
		Name:    group.Name,
		Members: members,
	}
}
