package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/ninthhouse/arcana-api/internal/service"
)

// testLogger returns the logger handlers are constructed with in tests.
func testLogger() *slog.Logger {
	return slog.Default()
}

// newTestRouter builds a router over fresh in-memory services, with the
// protected routes mounted without authentication so handler behavior can be
// exercised directly.
func newTestRouter(t *testing.T) (http.Handler, *service.AppState) {
	t.Helper()

	logger := slog.Default()
	state := service.NewAppState(nil, logger)

	catalogService, err := service.NewCatalogService(state, logger)
	require.NoError(t, err)
	groupService, err := service.NewGroupService(state, logger)
	require.NoError(t, err)
	readingService, err := service.NewReadingService(state, logger)
	require.NoError(t, err)
	rankingsService, err := service.NewRankingsService(state, logger)
	require.NoError(t, err)
	settingsService, err := service.NewSettingsService(state, logger)
	require.NoError(t, err)

	catalogHandler := NewCatalogHandler(catalogService, logger)
	groupHandler := NewGroupHandler(groupService, logger)
	readingHandler := NewReadingHandler(readingService, logger)
	rankingsHandler := NewRankingsHandler(rankingsService, logger)
	settingsHandler := NewSettingsHandler(settingsService, logger)

	r := chi.NewRouter()
	r.Put("/catalog", catalogHandler.ImportCatalog)
	r.Get("/catalog/cards", catalogHandler.ListCards)
	r.Get("/catalog/cards/{id}", catalogHandler.GetCard)
	r.Put("/catalog/cards/{id}", catalogHandler.UpdateCard)

	r.Post("/groups", groupHandler.CreateGroup)
	r.Get("/groups", groupHandler.ListGroups)
	r.Get("/groups/{id}", groupHandler.GetGroup)
	r.Get("/groups/{id}/roster", groupHandler.GetRoster)
	r.Post("/groups/{id}/members", groupHandler.AddMember)
	r.Post("/groups/{id}/members/{index}/years", groupHandler.JoinYear)
	r.Get("/groups/{id}/readings/{person}/{year}", readingHandler.GetReading)

	r.Post("/sessions", readingHandler.StartSession)
	r.Get("/sessions/{id}", readingHandler.GetSession)
	r.Get("/sessions/{id}/candidates", readingHandler.Candidates)
	r.Post("/sessions/{id}/picks", readingHandler.Pick)
	r.Delete("/sessions/{id}/picks/{cardID}", readingHandler.Unpick)
	r.Post("/sessions/{id}/commit", readingHandler.Commit)
	r.Post("/sessions/{id}/cancel", readingHandler.Cancel)
	r.Delete("/sessions/{id}", readingHandler.End)

	r.Get("/rankings", rankingsHandler.GetRankings)
	r.Get("/settings", settingsHandler.GetSettings)
	r.Put("/settings", settingsHandler.UpdateSettings)

	return r, state
}

// doJSON performs a request with an optional JSON body and decodes the JSON
// response into out when out is non-nil.
func doJSON(
	t *testing.T,
	router http.Handler,
	method, path string,
	body interface{},
	out interface{},
) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		encoded, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if out != nil && rec.Code < http.StatusMultipleChoices && rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

// importTestCatalog seeds the catalog with n generated cards named
// "Card 1".."Card n".
func importTestCatalog(t *testing.T, router http.Handler, n int) []CardResponse {
	t.Helper()

	entries := make([]map[string]string, n)
	for i := range entries {
		entries[i] = map[string]string{"name": testCardName(i)}
	}

	var resp CatalogImportResponse
	rec := doJSON(t, router, http.MethodPut, "/catalog", entries, &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Cards, n)
	return resp.Cards
}

func testCardName(i int) string {
	names := []string{
		"The Fool", "The Magician", "The High Priestess", "The Empress",
		"The Emperor", "The Hierophant", "The Lovers", "The Chariot",
	}
	if i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("Arcanum %d", i+1)
}

// createTestGroup creates a group with one member via the API.
func createTestGroup(t *testing.T, router http.Handler, name, member string, year int) GroupResponse {
	t.Helper()

	var group GroupResponse
	rec := doJSON(t, router, http.MethodPost, "/groups", CreateGroupRequest{Name: name}, &group)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/groups/"+group.ID+"/members",
		AddMemberRequest{Name: member, StartYear: year}, &group)
	require.Equal(t, http.StatusOK, rec.Code)
	return group
}
