package database

import (
	"context"
	"database/sql"
)

// Database abstracts the execution backend a bound statement runs against.
// Both *sql.DB (SqlDatabase) and pgxpool.Pool (PgxDatabase) satisfy it, so
// the binding and decoding layers never touch a concrete driver.
type Database interface {
	Query(query string, args ...any) (Rows, error)
	QueryContext(ctx context.Context, query string, args ...any) (Rows, error)
	Exec(query string, args ...any) (Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (Result, error)
	PingContext(ctx context.Context) error
	Close() error
	Prepare(query string) (*sql.Stmt, error)
}

// Rows is the row cursor the decode package consumes: forward-only,
// single-pass, closed exactly once per decode operation. Err reports the
// error, if any, that ended iteration early.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
	Columns() ([]string, error)
}

// Result mirrors sql.Result for drivers that report it differently.
type Result interface {
	LastInsertId() (int64, error)
	RowsAffected() (int64, error)
}
