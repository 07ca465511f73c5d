package store

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by the SQL-backed card stores.
// Both *sql.DB and *sql.Tx satisfy it, so a store can run against a pool or
// inside a caller-managed transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
