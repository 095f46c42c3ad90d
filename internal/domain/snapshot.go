package domain

import "github.com/google/uuid"

// Settings are the lightweight presentation preferences carried in the
// persisted snapshot. They do not affect any ledger invariant but must
// round-trip losslessly through save and load.
type Settings struct {
	Theme       string     `json:"theme"`
	LastGroupID *uuid.UUID `json:"last_group_id,omitempty"`
	LastYear    int        `json:"last_year,omitempty"`
}

// Snapshot is the whole persisted application state: the full catalog, every
// group with its nested ledger partition, and the settings. Persistence is
// whole-snapshot only; the core exposes no partial or incremental writes.
type Snapshot struct {
	Catalog  []Card   `json:"catalog"`
	Groups   []*Group `json:"groups"`
	Settings Settings `json:"settings"`
}

// EmptySnapshot is the default state used when no snapshot has been
// persisted yet, or when a persisted snapshot cannot be decoded.
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		Catalog: []Card{},
		Groups:  []*Group{},
	}
}
