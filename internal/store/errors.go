package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested record does not exist in
	// the store.
	ErrNotFound = errors.New("record not found")

	// ErrSnapshotNotFound indicates that no snapshot has been persisted
	// under the requested name yet.
	ErrSnapshotNotFound = fmt.Errorf("%w: snapshot", ErrNotFound)

	// ErrSnapshotCorrupt is returned when a persisted snapshot cannot be
	// decoded. Callers treat this as "start empty", not as fatal.
	ErrSnapshotCorrupt = errors.New("snapshot cannot be decoded")
)

// StoreError is a custom error type for store-specific errors with
// additional context.
type StoreError struct {
	Operation string // The operation that failed (e.g. "load", "save")
	Message   string
	Err       error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("snapshot %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("snapshot %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given operation, message,
// and wrapped error.
func NewStoreError(operation, message string, err error) *StoreError {
	return &StoreError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
