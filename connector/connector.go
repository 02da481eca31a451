// Package connector opens database backends from plain configuration.
// It produces the database.Database abstraction the rest of the module runs
// on, either over pgxpool or over database/sql with the pgx stdlib driver.
package connector

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver

	"github.com/go-faro/sqlbind/database"
)

// Connect opens a pgxpool-backed database.
func Connect(ctx context.Context, cfg Config) (database.Database, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	poolCfg, err := pgxpool.ParseConfig(dsnFor(cfg))
	if err != nil {
		return nil, fmt.Errorf("connector: parse config: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.Pool.MaxOpen)
	if cfg.Pool.MaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.Pool.MaxLifetime
	}
	if cfg.Pool.MaxIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.Pool.MaxIdleTime
	}
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connector: open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connector: ping: %w", err)
	}
	return database.NewPgxDatabase(pool), nil
}

// ConnectSQL opens a database/sql-backed database through the pgx stdlib
// driver. Use this variant when prepared-statement caching is wanted;
// pgxpool prepares internally and does not expose sql.Stmt.
func ConnectSQL(ctx context.Context, cfg Config) (database.Database, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	db, err := sql.Open("pgx", dsnFor(cfg))
	if err != nil {
		return nil, fmt.Errorf("connector: open: %w", err)
	}
	db.SetMaxOpenConns(cfg.Pool.MaxOpen)
	db.SetMaxIdleConns(cfg.Pool.MaxIdle)
	if cfg.Pool.MaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.Pool.MaxLifetime)
	}
	if cfg.Pool.MaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.Pool.MaxIdleTime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connector: ping: %w", err)
	}
	return database.NewSqlDatabase(db), nil
}
