package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ninthhouse/arcana-api/internal/domain"
	"github.com/ninthhouse/arcana-api/internal/platform/logger"
)

// CatalogService provides card catalog operations.
type CatalogService interface {
	// ImportCatalog coerces a raw import payload and atomically replaces
	// the whole catalog. Returns domain.ErrInvalidImportShape when the
	// payload is not an array.
	ImportCatalog(ctx context.Context, raw json.RawMessage) ([]domain.Card, error)

	// UpdateCard replaces the catalog entry whose id matches. Updating an
	// unknown id is a no-op, mirroring the import contract of never
	// rejecting individual entries.
	UpdateCard(ctx context.Context, card domain.Card) error

	// GetCard retrieves a card by id.
	GetCard(ctx context.Context, id string) (domain.Card, error)

	// ListCards returns the catalog in import order.
	ListCards(ctx context.Context) []domain.Card
}

// catalogServiceImpl implements the CatalogService interface.
type catalogServiceImpl struct {
	state  *AppState
	logger *slog.Logger
}

// NewCatalogService creates a new CatalogService over the given state.
func NewCatalogService(state *AppState, log *slog.Logger) (CatalogService, error) {
	if state == nil {
		return nil, NewServiceError("new_catalog_service", "state cannot be nil", nil)
	}
	if log == nil {
		log = slog.Default()
	}
	return &catalogServiceImpl{
		state:  state,
		logger: log.With(slog.String("component", "catalog_service")),
	}, nil
}

// ImportCatalog implements CatalogService.ImportCatalog.
func (s *catalogServiceImpl) ImportCatalog(
	ctx context.Context,
	raw json.RawMessage,
) ([]domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	catalog, err := domain.ReplaceAll(raw)
	if err != nil {
		log.Debug("catalog import rejected", slog.String("error", err.Error()))
		return nil, err
	}

	s.state.ReplaceCatalog(catalog)
	log.Info("catalog replaced", slog.Int("cards", catalog.Len()))
	return catalog.Cards(), nil
}

// UpdateCard implements CatalogService.UpdateCard.
func (s *catalogServiceImpl) UpdateCard(ctx context.Context, card domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	catalog := s.state.Catalog()
	updated := catalog.Update(card)
	if updated == catalog {
		log.Debug("card update matched nothing", slog.String("card_id", card.ID))
		return nil
	}

	s.state.ReplaceCatalog(updated)
	log.Debug("card updated", slog.String("card_id", card.ID))
	return nil
}

// GetCard implements CatalogService.GetCard.
func (s *catalogServiceImpl) GetCard(ctx context.Context, id string) (domain.Card, error) {
	return s.state.Catalog().Lookup(id)
}

// ListCards implements CatalogService.ListCards.
func (s *catalogServiceImpl) ListCards(ctx context.Context) []domain.Card {
	return s.state.Catalog().Cards()
}
