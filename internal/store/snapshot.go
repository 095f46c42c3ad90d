package store

import (
	"context"

	"github.com/ninthhouse/arcana-api/internal/domain"
)

// SnapshotStore defines the interface for whole-state persistence.
// Implementations persist the full application snapshot under a single name
// and load it back; there are no partial or incremental writes.
// Version: 1.0
type SnapshotStore interface {
	// Load retrieves the persisted snapshot.
	// Returns ErrSnapshotNotFound when nothing has been saved yet, and
	// ErrSnapshotCorrupt when the stored payload cannot be decoded.
	Load(ctx context.Context) (*domain.Snapshot, error)

	// Save persists the snapshot, replacing any previous one atomically.
	// Last writer wins; no merging is attempted.
	Save(ctx context.Context, snapshot *domain.Snapshot) error
}
