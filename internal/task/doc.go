// Package task provides background write scheduling. The core exposes only
// whole-snapshot persistence, so the scheduler here coalesces bursts of
// edits into a single debounced, fire-and-forget save.
package task
