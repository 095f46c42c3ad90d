package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/ninthhouse/arcana-api/internal/domain"
	"github.com/ninthhouse/arcana-api/internal/store"
)

// SnapshotFlusher receives the latest state snapshot after each mutation and
// schedules its persistence. Implemented by task.Flusher.
type SnapshotFlusher interface {
	MarkDirty(snapshot *domain.Snapshot)
}

// AppState owns the whole in-memory application state: the catalog, the
// groups with their nested ledger partitions, and the settings. Every
// mutation runs to completion under the state lock and swaps in
// immutably-updated substructures, so values handed out earlier stay
// complete and consistent. After each mutation the flusher is marked dirty
// with a fresh snapshot.
type AppState struct {
	mu       sync.RWMutex
	catalog  *domain.Catalog
	groups   []*domain.Group
	settings domain.Settings

	flusher SnapshotFlusher
	logger  *slog.Logger
}

// NewAppState creates an empty state. The flusher may be nil, in which case
// mutations are kept in memory only (used by tests).
func NewAppState(flusher SnapshotFlusher, logger *slog.Logger) *AppState {
	if logger == nil {
		logger = slog.Default()
	}
	return &AppState{
		catalog: domain.EmptyCatalog(),
		groups:  []*domain.Group{},
		flusher: flusher,
		logger:  logger.With(slog.String("component", "app_state")),
	}
}

// Restore loads the persisted snapshot into the state. A missing or
// undecodable snapshot is not fatal: the state falls back to the empty
// default with a warning, accepting the data loss rather than refusing to
// start. Any other store failure is returned.
func (s *AppState) Restore(ctx context.Context, snapshots store.SnapshotStore) error {
	snapshot, err := snapshots.Load(ctx)
	switch {
	case errors.Is(err, store.ErrSnapshotNotFound):
		s.logger.Info("no persisted snapshot; starting empty")
		snapshot = domain.EmptySnapshot()
	case errors.Is(err, store.ErrSnapshotCorrupt):
		s.logger.Warn("persisted snapshot is corrupt; starting empty")
		snapshot = domain.EmptySnapshot()
	case err != nil:
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = domain.NewCatalog(snapshot.Catalog)
	s.groups = snapshot.Groups
	if s.groups == nil {
		s.groups = []*domain.Group{}
	}
	s.settings = snapshot.Settings
	s.logger.Info("state restored",
		slog.Int("cards", s.catalog.Len()),
		slog.Int("groups", len(s.groups)))
	return nil
}

// Snapshot assembles the current state into a persistable snapshot. The
// nested structures are immutable, so sharing them with the caller is safe.
func (s *AppState) Snapshot() *domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *AppState) snapshotLocked() *domain.Snapshot {
	groups := make([]*domain.Group, len(s.groups))
	copy(groups, s.groups)
	return &domain.Snapshot{
		Catalog:  s.catalog.Cards(),
		Groups:   groups,
		Settings: s.settings,
	}
}

// markDirtyLocked hands the flusher a fresh snapshot. Must be called with
// the write lock held.
func (s *AppState) markDirtyLocked() {
	if s.flusher != nil {
		s.flusher.MarkDirty(s.snapshotLocked())
	}
}

// Catalog returns the current catalog.
func (s *AppState) Catalog() *domain.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// ReplaceCatalog swaps in a new catalog.
func (s *AppState) ReplaceCatalog(catalog *domain.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = catalog
	s.markDirtyLocked()
}

// Groups returns the groups in registry order. The slice is a copy; the
// groups themselves are immutable.
func (s *AppState) Groups() []*domain.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups := make([]*domain.Group, len(s.groups))
	copy(groups, s.groups)
	return groups
}

// Group returns the group with the given id, or ErrGroupNotFound.
func (s *AppState) Group(id uuid.UUID) (*domain.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groupLocked(id)
}

func (s *AppState) groupLocked(id uuid.UUID) (*domain.Group, error) {
	for _, g := range s.groups {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, ErrGroupNotFound
}

// AppendGroup adds a newly created group to the registry.
func (s *AppState) AppendGroup(group *domain.Group) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = append(s.groups, group)
	s.markDirtyLocked()
}

// UpdateGroup applies fn to the group with the given id and swaps in the
// returned copy-on-write replacement. The whole update runs under the write
// lock; fn must not block.
func (s *AppState) UpdateGroup(
	id uuid.UUID,
	fn func(group *domain.Group) (*domain.Group, error),
) (*domain.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.groupLocked(id)
	if err != nil {
		return nil, err
	}
	updated, err := fn(current)
	if err != nil {
		return nil, err
	}
	if updated == current {
		return current, nil
	}

	groups := make([]*domain.Group, len(s.groups))
	copy(groups, s.groups)
	for i, g := range groups {
		if g.ID == id {
			groups[i] = updated
			break
		}
	}
	s.groups = groups
	s.markDirtyLocked()
	return updated, nil
}

// Settings returns the current presentation settings.
func (s *AppState) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SetSettings replaces the presentation settings.
func (s *AppState) SetSettings(settings domain.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.markDirtyLocked()
}
