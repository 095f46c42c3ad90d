// Package service provides application-level services over the in-memory
// state: catalog import, group and roster management, the card selection
// workflow, frequency rankings, and settings. Services operate on the state
// through AppState, which serializes mutations and schedules debounced
// snapshot persistence.
package service
