package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ninthhouse/arcana-api/internal/api"
	apiMiddleware "github.com/ninthhouse/arcana-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(
		&app.config.Auth,
		app.jwtService,
		app.passwordVerifier,
		app.logger,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	catalogHandler := api.NewCatalogHandler(app.catalogService, app.logger)
	groupHandler := api.NewGroupHandler(app.groupService, app.logger)
	readingHandler := api.NewReadingHandler(app.readingService, app.logger)
	rankingsHandler := api.NewRankingsHandler(app.rankingsService, app.logger)
	settingsHandler := api.NewSettingsHandler(app.settingsService, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Catalog endpoints
			r.Put("/catalog", catalogHandler.ImportCatalog)
			r.Get("/catalog/cards", catalogHandler.ListCards)
			r.Get("/catalog/cards/{id}", catalogHandler.GetCard)
			r.Put("/catalog/cards/{id}", catalogHandler.UpdateCard)

			// Group and roster endpoints
			r.Post("/groups", groupHandler.CreateGroup)
			r.Get("/groups", groupHandler.ListGroups)
			r.Get("/groups/{id}", groupHandler.GetGroup)
			r.Get("/groups/{id}/roster", groupHandler.GetRoster)
			r.Post("/groups/{id}/members", groupHandler.AddMember)
			r.Post("/groups/{id}/members/{index}/years", groupHandler.JoinYear)

			// Committed reading lookup
			r.Get("/groups/{id}/readings/{person}/{year}", readingHandler.GetReading)

			// Selection session endpoints
			r.Post("/sessions", readingHandler.StartSession)
			r.Get("/sessions/{id}", readingHandler.GetSession)
			r.Get("/sessions/{id}/candidates", readingHandler.Candidates)
			r.Post("/sessions/{id}/picks", readingHandler.Pick)
			r.Delete("/sessions/{id}/picks/{cardID}", readingHandler.Unpick)
			r.Post("/sessions/{id}/commit", readingHandler.Commit)
			r.Post("/sessions/{id}/cancel", readingHandler.Cancel)
			r.Delete("/sessions/{id}", readingHandler.End)

			// Rankings endpoint
			r.Get("/rankings", rankingsHandler.GetRankings)

			// Settings endpoints
			r.Get("/settings", settingsHandler.GetSettings)
			r.Put("/settings", settingsHandler.UpdateSettings)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
