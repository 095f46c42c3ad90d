// Package main implements the entry point for the arcana-api server, the
// fortune card reading ledger: per-person monthly drawings, year completion
// tracking, and card-frequency rankings behind a small authenticated API.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/ninthhouse/arcana-api/internal/config"
	"github.com/ninthhouse/arcana-api/internal/platform/logger"
)

// main initializes configuration, logging, the database, and the application
// dependencies, then runs the HTTP server until a shutdown signal arrives.
func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set up structured logging using the configured log level
	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	// Establish the database connection and apply pending migrations
	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if err := runMigrations(db, appLogger); err != nil {
		return err
	}

	// Wire the application: snapshot store, flusher, state, services
	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	router := app.setupRouter()
	return app.startHTTPServer(ctx, router)
}
