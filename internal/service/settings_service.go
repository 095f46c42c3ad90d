package service

import (
	"context"
	"log/slog"

	"github.com/ninthhouse/arcana-api/internal/domain"
)

// SettingsService reads and writes the lightweight presentation settings
// carried in the snapshot: theme and the last-selected group and year. None
// of these affect a ledger invariant, but they persist with everything else.
type SettingsService interface {
	// GetSettings returns the current settings.
	GetSettings(ctx context.Context) domain.Settings

	// UpdateSettings replaces the settings.
	UpdateSettings(ctx context.Context, settings domain.Settings) domain.Settings
}

// settingsServiceImpl implements the SettingsService interface.
type settingsServiceImpl struct {
	state  *AppState
	logger *slog.Logger
}

// NewSettingsService creates a new SettingsService over the given state.
func NewSettingsService(state *AppState, log *slog.Logger) (SettingsService, error) {
	if state == nil {
		return nil, NewServiceError("new_settings_service", "state cannot be nil", nil)
	}
	if log == nil {
		log = slog.Default()
	}
	return &settingsServiceImpl{
		state:  state,
		logger: log.With(slog.String("component", "settings_service")),
	}, nil
}

// GetSettings implements SettingsService.GetSettings.
func (s *settingsServiceImpl) GetSettings(ctx context.Context) domain.Settings {
	return s.state.Settings()
}

// UpdateSettings implements SettingsService.UpdateSettings.
func (s *settingsServiceImpl) UpdateSettings(
	ctx context.Context,
	settings domain.Settings,
) domain.Settings {
	s.state.SetSettings(settings)
	return settings
}
