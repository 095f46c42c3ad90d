// Package postgres provides PostgreSQL-backed implementations of the
// interfaces in internal/store, using the pgx stdlib driver through
// database/sql.
package postgres
