// Package sqlbind is the front door: it ties the named-placeholder template
// layer, the parameter binder and the result decoder together over a
// database backend. SQL text with :name placeholders goes in, typed values
// and containers come out.
//
//	db := sqlbind.Open(database.NewSqlDatabase(raw), sqlbind.Config{Dialect: template.Dollar})
//	email, err := sqlbind.One(ctx, db,
//		`SELECT email FROM users WHERE id = :id`, decode.String,
//		nil, func(b *bind.Binder) error { return b.SetInt64("id", 42) })
package sqlbind

import (
	"context"

	"github.com/go-faro/sqlbind/bind"
	"github.com/go-faro/sqlbind/cache"
	"github.com/go-faro/sqlbind/database"
	"github.com/go-faro/sqlbind/decode"
	"github.com/go-faro/sqlbind/template"
)

// Lists declares which parameter names are list-valued for one execution,
// and how many elements each will bind. A nil Lists means no list parameters.
type Lists = map[string]int

// BindFunc applies the caller's values to the statement through a Binder.
type BindFunc func(*bind.Binder) error

// Config tunes a DB. The zero value is usable: question-mark placeholders,
// lenient unknown-name handling, default cache sizes.
type Config struct {
	// Dialect selects the positional placeholder style.
	Dialect template.Dialect

	// Strict makes binding an unknown parameter name an error instead of a
	// silent no-op. Off by default for compatibility with callers migrating
	// from the lenient behavior.
	Strict bool

	// TemplateCacheSize bounds the parsed-template LRU. 0 means 1024.
	TemplateCacheSize int

	// CacheStatements prepares and LRU-caches positional statements. It
	// requires a Prepare-capable backend (SqlDatabase; pgxpool prepares
	// internally already).
	CacheStatements bool

	// StatementCacheSize bounds the prepared-statement LRU. 0 means 256.
	StatementCacheSize int
}

func (c Config) withDefaults() Config {
	if c.TemplateCacheSize <= 0 {
		c.TemplateCacheSize = 1024
	}
	if c.StatementCacheSize <= 0 {
		c.StatementCacheSize = 256
	}
	return c
}

// DB executes named statements against a backend. Safe for concurrent use;
// each execution gets its own table, argument buffer and binder.
type DB struct {
	db        database.Database
	cfg       Config
	templates *cache.TemplateCache
	stmts     *cache.StatementCache
}

// Open wraps a backend. Optionally provide a Config; unspecified fields fall
// back to defaults.
func Open(db database.Database, cfg ...Config) *DB {
	c := Config{}
	if len(cfg) > 0 {
		c = cfg[0]
	}
	c = c.withDefaults()
	return &DB{
		db:        db,
		cfg:       c,
		templates: cache.NewTemplateCache(c.TemplateCacheSize),
		stmts:     cache.NewStatementCache(c.StatementCacheSize),
	}
}

// Close releases cached prepared statements. The backend itself is the
// caller's to close.
func (d *DB) Close() error {
	return d.stmts.Close()
}

// Backend returns the wrapped database.
func (d *DB) Backend() database.Database { return d.db }

// prepare compiles src, expands it for this execution's list sizes, and runs
// the caller's bind function over a fresh argument buffer.
func (d *DB) prepare(src string, lists Lists, fn BindFunc) (string, *bind.Args, error) {
	tmpl, err := d.templates.GetOrParse(src)
	if err != nil {
		return "", nil, err
	}
	sql, table, err := tmpl.Expand(d.cfg.Dialect, lists)
	if err != nil {
		return "", nil, err
	}
	args := bind.NewArgs(table.Width())
	if fn != nil {
		b := bind.New(table, args)
		if d.cfg.Strict {
			b = bind.NewStrict(table, args)
		}
		if err := fn(b); err != nil {
			return "", nil, err
		}
	}
	return sql, args, nil
}

// Query executes a named statement and returns its row cursor. The caller
// owns the cursor; the decode package closes it on every path.
func (d *DB) Query(ctx context.Context, src string, lists Lists, fn BindFunc) (database.Rows, error) {
	sql, args, err := d.prepare(src, lists, fn)
	if err != nil {
		return nil, err
	}
	if d.cfg.CacheStatements {
		stmt, err := d.stmts.GetOrPrepare(d.db, sql)
		if err != nil {
			return nil, err
		}
		rows, err := stmt.QueryContext(ctx, args.Values()...)
		if err != nil {
			return nil, err
		}
		return database.WrapRows(rows), nil
	}
	return d.db.QueryContext(ctx, sql, args.Values()...)
}

// Exec executes a named statement that returns no rows.
func (d *DB) Exec(ctx context.Context, src string, lists Lists, fn BindFunc) (database.Result, error) {
	sql, args, err := d.prepare(src, lists, fn)
	if err != nil {
		return nil, err
	}
	if d.cfg.CacheStatements {
		stmt, err := d.stmts.GetOrPrepare(d.db, sql)
		if err != nil {
			return nil, err
		}
		return stmt.ExecContext(ctx, args.Values()...)
	}
	return d.db.ExecContext(ctx, sql, args.Values()...)
}

// One runs a single-column query and decodes the first row, sql.ErrNoRows on
// an empty result.
func One[T any](ctx context.Context, d *DB, src string, c decode.Codec[T], lists Lists, fn BindFunc) (T, error) {
	rows, err := d.Query(ctx, src, lists, fn)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode.One(rows, c)
}

// First runs a single-column query and decodes at most one row; nil means no
// rows.
func First[T any](ctx context.Context, d *DB, src string, c decode.Codec[T], lists Lists, fn BindFunc) (*T, error) {
	rows, err := d.Query(ctx, src, lists, fn)
	if err != nil {
		return nil, err
	}
	return decode.First(rows, c)
}

// All runs a single-column query and decodes every row into a slice.
func All[T any](ctx context.Context, d *DB, src string, c decode.Codec[T], lists Lists, fn BindFunc) ([]T, error) {
	rows, err := d.Query(ctx, src, lists, fn)
	if err != nil {
		return nil, err
	}
	return decode.All(rows, c)
}

// Grouped runs a two-column query and decodes it into a key → value-set
// multimap.
func Grouped[K, V comparable](ctx context.Context, d *DB, src string, kc decode.Codec[K], vc decode.Codec[V], lists Lists, fn BindFunc) (map[K]map[V]struct{}, error) {
	rows, err := d.Query(ctx, src, lists, fn)
	if err != nil {
		return nil, err
	}
	return decode.Grouped(rows, kc, vc)
}
