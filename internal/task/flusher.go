package task

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ninthhouse/arcana-api/internal/domain"
	"github.com/ninthhouse/arcana-api/internal/store"
)

// FlusherConfig holds configuration for the snapshot flusher.
type FlusherConfig struct {
	// Debounce is how long after the last MarkDirty the write fires.
	// Edits arriving inside the window reset it.
	Debounce time.Duration

	// SaveTimeout bounds a single save attempt.
	SaveTimeout time.Duration
}

// DefaultFlusherConfig returns a FlusherConfig with reasonable defaults.
func DefaultFlusherConfig() FlusherConfig {
	return FlusherConfig{
		Debounce:    2 * time.Second,
		SaveTimeout: 10 * time.Second,
	}
}

// Flusher schedules debounced snapshot writes. Mutations mark the flusher
// dirty with the latest snapshot; after the debounce window a single
// fire-and-forget save runs with the most recent snapshot, last writer wins.
// Saves never block the caller and save errors are logged, not propagated —
// the in-memory state stays authoritative.
type Flusher struct {
	store  store.SnapshotStore
	config FlusherConfig
	logger *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending *domain.Snapshot
	stopped bool
	wg      sync.WaitGroup
}

// NewFlusher creates a new Flusher writing through the given snapshot store.
func NewFlusher(snapshots store.SnapshotStore, config FlusherConfig, logger *slog.Logger) *Flusher {
	if snapshots == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("snapshot store cannot be nil for Flusher")
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultFlusherConfig().Debounce
	}
	if config.SaveTimeout <= 0 {
		config.SaveTimeout = DefaultFlusherConfig().SaveTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Flusher{
		store:  snapshots,
		config: config,
		logger: logger.With(slog.String("component", "snapshot_flusher")),
	}
}

// MarkDirty records the latest snapshot and (re)arms the debounce timer.
// Calling it repeatedly within the window results in one write carrying the
// last snapshot seen.
func (f *Flusher) MarkDirty(snapshot *domain.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopped {
		f.logger.Warn("snapshot marked dirty after flusher stop; write dropped")
		return
	}

	f.pending = snapshot
	if f.timer == nil {
		f.timer = time.AfterFunc(f.config.Debounce, f.fire)
	} else {
		f.timer.Reset(f.config.Debounce)
	}
}

// fire runs on the timer goroutine: it takes the pending snapshot and saves
// it in the background.
func (f *Flusher) fire() {
	f.mu.Lock()
	snapshot := f.pending
	f.pending = nil
	if snapshot == nil || f.stopped {
		f.mu.Unlock()
		return
	}
	f.wg.Add(1)
	f.mu.Unlock()

	go func() {
		defer f.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), f.config.SaveTimeout)
		defer cancel()
		if err := f.store.Save(ctx, snapshot); err != nil {
			f.logger.Error("debounced snapshot save failed",
				slog.String("error", err.Error()))
		}
	}()
}

// Flush writes any pending snapshot immediately, bypassing the debounce
// window. Used on shutdown so the last edits are not lost to the timer.
func (f *Flusher) Flush(ctx context.Context) error {
	f.mu.Lock()
	snapshot := f.pending
	f.pending = nil
	if f.timer != nil {
		f.timer.Stop()
	}
	f.mu.Unlock()

	if snapshot == nil {
		return nil
	}
	return f.store.Save(ctx, snapshot)
}

// Stop flushes pending work, prevents further scheduling, and waits for any
// in-flight background save to finish.
func (f *Flusher) Stop(ctx context.Context) error {
	err := f.Flush(ctx)

	f.mu.Lock()
	f.stopped = true
	if f.timer != nil {
		f.timer.Stop()
	}
	f.mu.Unlock()

	f.wg.Wait()
	return err
}
