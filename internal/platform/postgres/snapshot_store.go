package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/ninthhouse/arcana-api/internal/domain"
	"github.com/ninthhouse/arcana-api/internal/store"
)

// DefaultSnapshotName is the row key used when the configuration does not
// override it. A single deployment owns a single snapshot row.
const DefaultSnapshotName = "arcana"

// PostgresSnapshotStore implements the store.SnapshotStore interface using a
// PostgreSQL database as the storage backend. The whole application state is
// persisted as one jsonb row keyed by snapshot name, upserted on every save.
type PostgresSnapshotStore struct {
	db     store.DBTX
	name   string
	logger *slog.Logger
}

// NewPostgresSnapshotStore creates a new PostgreSQL implementation of the
// SnapshotStore interface. It accepts a database connection or transaction
// managed by the caller; name selects the snapshot row. If logger is nil, a
// default logger will be used.
func NewPostgresSnapshotStore(db store.DBTX, name string, logger *slog.Logger) *PostgresSnapshotStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if name == "" {
		name = DefaultSnapshotName
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSnapshotStore{
		db:     db,
		name:   name,
		logger: logger.With(slog.String("component", "snapshot_store")),
	}
}

// Ensure PostgresSnapshotStore implements store.SnapshotStore interface
var _ store.SnapshotStore = (*PostgresSnapshotStore)(nil)

// Load implements store.SnapshotStore.Load.
// Returns store.ErrSnapshotNotFound when no row exists for the configured
// name, and store.ErrSnapshotCorrupt when the payload does not decode.
func (s *PostgresSnapshotStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM snapshots WHERE name = $1`,
		s.name,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, store.NewStoreError("load", "query failed", err)
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		s.logger.Warn("persisted snapshot does not decode",
			slog.String("name", s.name),
			slog.String("error", err.Error()))
		return nil, store.ErrSnapshotCorrupt
	}
	return &snapshot, nil
}

// Save implements store.SnapshotStore.Save.
// The snapshot replaces any previous row for the configured name in one
// upsert, so readers never observe a partially written state.
func (s *PostgresSnapshotStore) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return store.NewStoreError("save", "encode failed", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (name, data, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (name)
		 DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		s.name, data, time.Now().UTC(),
	)
	if err != nil {
		return store.NewStoreError("save", "upsert failed", err)
	}

	s.logger.Debug("snapshot saved",
		slog.String("name", s.name),
		slog.Int("bytes", len(data)))
	return nil
}
