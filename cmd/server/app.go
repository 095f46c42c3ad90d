package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/ninthhouse/arcana-api/internal/config"
	"github.com/ninthhouse/arcana-api/internal/platform/postgres"
	"github.com/ninthhouse/arcana-api/internal/service"
	"github.com/ninthhouse/arcana-api/internal/service/auth"
	"github.com/ninthhouse/arcana-api/internal/store"
	"github.com/ninthhouse/arcana-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Persistence
	snapshotStore store.SnapshotStore
	flusher       *task.Flusher

	// In-memory state
	state *service.AppState

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	catalogService   service.CatalogService
	groupService     service.GroupService
	readingService   service.ReadingService
	rankingsService  service.RankingsService
	settingsService  service.SettingsService
}

// newApplication creates a new application instance with all dependencies
// initialized: the snapshot store over the database, the debounced flusher,
// the restored in-memory state, and the services over it.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.snapshotStore = postgres.NewPostgresSnapshotStore(db, cfg.Persistence.SnapshotName, logger)

	flusherConfig := task.DefaultFlusherConfig()
	flusherConfig.Debounce = time.Duration(cfg.Persistence.DebounceMillis) * time.Millisecond
	app.flusher = task.NewFlusher(app.snapshotStore, flusherConfig, logger)

	app.state = service.NewAppState(app.flusher, logger)
	if err := app.state.Restore(ctx, app.snapshotStore); err != nil {
		return nil, fmt.Errorf("failed to restore snapshot: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	app.jwtService = jwtService
	app.passwordVerifier = auth.NewBcryptVerifier()

	if app.catalogService, err = service.NewCatalogService(app.state, logger); err != nil {
		return nil, fmt.Errorf("failed to create catalog service: %w", err)
	}
	if app.groupService, err = service.NewGroupService(app.state, logger); err != nil {
		return nil, fmt.Errorf("failed to create group service: %w", err)
	}
	if app.readingService, err = service.NewReadingService(app.state, logger); err != nil {
		return nil, fmt.Errorf("failed to create reading service: %w", err)
	}
	if app.rankingsService, err = service.NewRankingsService(app.state, logger); err != nil {
		return nil, fmt.Errorf("failed to create rankings service: %w", err)
	}
	if app.settingsService, err = service.NewSettingsService(app.state, logger); err != nil {
		return nil, fmt.Errorf("failed to create settings service: %w", err)
	}

	return app, nil
}

// cleanup flushes any pending snapshot write and releases resources. Called
// after the HTTP server has stopped accepting requests.
func (app *application) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.flusher.Stop(ctx); err != nil {
		app.logger.Error("failed to flush final snapshot", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", "error", err)
	}
}
