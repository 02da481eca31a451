// Package batch builds multi-row INSERT statements and hands out one
// row-offset binder per row, so a single named-column set binds repeatedly
// at increasing positional offsets.
package batch

import (
	"strings"

	"github.com/go-faro/sqlbind/bind"
	"github.com/go-faro/sqlbind/param"
	"github.com/go-faro/sqlbind/template"
)

// Insert describes one batch-insert shape: a table and a fixed column set.
// Row values are bound by column name through a bind.Tuple, never
// positionally by the caller. An Insert is immutable and reusable across
// batches of any row count.
type Insert struct {
	table   string
	columns []string
	row     *param.Table
}

// NewInsert targets the conventional table for an entity name
// ("OrderItem" -> "order_items"). Column order fixes the positional layout
// of every row.
func NewInsert(entity string, columns ...string) *Insert {
	return Into(TableName(entity), columns...)
}

// Into is NewInsert with an explicit table name.
func Into(table string, columns ...string) *Insert {
	positions := make(map[string][]int, len(columns))
	for i, col := range columns {
		positions[col] = append(positions[col], i+1)
	}
	return &Insert{
		table:   table,
		columns: columns,
		row:     param.NewTable(positions, nil),
	}
}

// Width returns the number of positional slots one row occupies.
func (in *Insert) Width() int { return len(in.columns) }

// SQL renders the INSERT statement for rows rows:
//
//	INSERT INTO t (a, b) VALUES (?, ?), (?, ?)
//
// with placeholders in the dialect's style. rows must be at least 1; a zero
// row count has no valid VALUES clause.
func (in *Insert) SQL(d template.Dialect, rows int) string {
	var b strings.Builder
	b.Grow(64 + rows*4*len(in.columns))

	b.WriteString("INSERT INTO ")
	b.WriteString(in.table)
	b.WriteString(" (")
	b.WriteString(strings.Join(in.columns, ", "))
	b.WriteString(") VALUES ")

	pos := 1
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for c := range in.columns {
			if c > 0 {
				b.WriteString(", ")
			}
			b.WriteString(d.Placeholder(pos))
			pos++
		}
		b.WriteByte(')')
	}
	return b.String()
}

// Args returns an argument buffer sized for rows rows.
func (in *Insert) Args(rows int) *bind.Args {
	return bind.NewArgs(rows * len(in.columns))
}

// Row returns the binder for the row-th row (0-based) of the batch writing
// into stmt.
func (in *Insert) Row(stmt bind.Statement, row int) *bind.Tuple {
	return bind.NewTuple(in.row, stmt, row*len(in.columns))
}

// RowStrict is Row with unknown column names reported as errors.
func (in *Insert) RowStrict(stmt bind.Statement, row int) *bind.Tuple {
	return bind.NewStrictTuple(in.row, stmt, row*len(in.columns))
}
