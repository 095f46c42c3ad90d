// Package store defines interfaces for data persistence operations.
// Persistence is whole-snapshot only: the application state is loaded once
// at startup and written back as a single record, so the interfaces abstract
// a key-value snapshot store rather than per-entity repositories.
package store
