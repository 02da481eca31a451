package sqlbind

import (
	"context"
	"errors"

	"github.com/go-faro/sqlbind/batch"
	"github.com/go-faro/sqlbind/bind"
	"github.com/go-faro/sqlbind/database"
)

// ErrEmptyBatch is returned by ExecBatch when called with no rows; a VALUES
// clause needs at least one tuple.
var ErrEmptyBatch = errors.New("sqlbind: batch needs at least one row")

// ExecBatch inserts rows rows through one multi-row statement. fn is called
// once per row with that row's offset binder; all rows share a single
// argument buffer.
func (d *DB) ExecBatch(ctx context.Context, in *batch.Insert, rows int, fn func(row int, t *bind.Tuple) error) (database.Result, error) {
	if rows < 1 {
		return nil, ErrEmptyBatch
	}
	row := in.Row
	if d.cfg.Strict {
		row = in.RowStrict
	}
	args := in.Args(rows)
	for r := 0; r < rows; r++ {
		if err := fn(r, row(args, r)); err != nil {
			return nil, err
		}
	}
	return d.db.ExecContext(ctx, in.SQL(d.cfg.Dialect, rows), args.Values()...)
}
