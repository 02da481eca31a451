package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-faro/sqlbind/bind"
	"github.com/go-faro/sqlbind/template"
)

func TestTableName(t *testing.T) {
	tests := []struct {
		entity string
		want   string
	}{
		{"User", "users"},
		{"OrderItem", "order_items"},
		{"Person", "people"},
		{"HTTPLog", "http_logs"},
		{"category", "categories"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TableName(tt.entity), "entity %s", tt.entity)
	}
}

func TestInsertSQL(t *testing.T) {
	in := NewInsert("OrderItem", "order_id", "sku", "qty")

	assert.Equal(t, 3, in.Width())
	assert.Equal(t,
		"INSERT INTO order_items (order_id, sku, qty) VALUES (?, ?, ?), (?, ?, ?)",
		in.SQL(template.Question, 2),
	)
	assert.Equal(t,
		"INSERT INTO order_items (order_id, sku, qty) VALUES ($1, $2, $3), ($4, $5, $6)",
		in.SQL(template.Dollar, 2),
	)
}

func TestInsertRowBinding(t *testing.T) {
	in := Into("events", "kind", "payload")
	args := in.Args(3)

	kinds := []string{"open", "close", "open"}
	for r, kind := range kinds {
		tp := in.Row(args, r)
		require.NoError(t, tp.SetString("kind", kind))
		require.NoError(t, tp.SetBytes("payload", []byte{byte(r)}))
	}

	assert.Equal(t, []any{
		"open", []byte{0},
		"close", []byte{1},
		"open", []byte{2},
	}, args.Values())
}

func TestInsertRowStrict(t *testing.T) {
	in := Into("events", "kind")
	args := in.Args(1)

	tp := in.RowStrict(args, 0)
	assert.ErrorIs(t, tp.SetString("knid", "x"), bind.ErrUnknownParam)

	tp = in.Row(args, 0)
	require.NoError(t, tp.SetString("knid", "x"))
	assert.Nil(t, args.Value(1))
}
