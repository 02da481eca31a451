// Package decode turns a row cursor into typed values and containers. The
// requested shape is picked by the caller through a Codec (per column type)
// and, for multi-row shapes, a Builder (per container type); there is no
// reflection on the decoded data itself.
//
// Every operation takes ownership of the cursor and closes it on every exit
// path, including decode failure, before the failure reaches the caller.
package decode

import (
	"database/sql"
	"fmt"

	"github.com/go-faro/sqlbind/database"
)

// NoLimit disables row limiting for Collect and CollectPairs.
const NoLimit = 0

// One decodes the single column of the first row. It returns sql.ErrNoRows
// when the cursor is empty and never advances past the first row: extra rows
// are ignored without error, so call sites that require exactly one row must
// enforce that in SQL (LIMIT 1 or an equivalent predicate).
func One[T any](rows database.Rows, c Codec[T]) (T, error) {
	var zero T
	if !rows.Next() {
		err := rows.Err()
		_ = rows.Close()
		if err != nil {
			return zero, fmt.Errorf("sqlbind: decode: %w", err)
		}
		return zero, sql.ErrNoRows
	}
	var src any
	if err := rows.Scan(&src); err != nil {
		_ = rows.Close()
		return zero, fmt.Errorf("sqlbind: decode: %w", err)
	}
	v, err := c.Decode(src)
	if err != nil {
		_ = rows.Close()
		return zero, err
	}
	return v, rows.Close()
}

// First is the optional form of One: nil on an empty cursor, otherwise a
// pointer to the first row's decoded value. It is the collection traversal
// limited to a single row, so the cursor never advances past row one.
func First[T any](rows database.Rows, c Codec[T]) (*T, error) {
	out, err := Collect[T, []T](rows, c, ToSlice[T](), 1)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

// All decodes every row's single column into a slice, in row order.
func All[T any](rows database.Rows, c Codec[T]) ([]T, error) {
	return Collect[T, []T](rows, c, ToSlice[T](), NoLimit)
}

// Collect drives the homogeneous-collection traversal: while the row index
// is under limit (NoLimit for unbounded) and a next row exists, decode one
// element per row and append it to b. Rows past the limit are never fetched.
func Collect[T, C any](rows database.Rows, c Codec[T], b Builder[T, C], limit int) (C, error) {
	var zero C
	for i := 0; (limit <= 0 || i < limit) && rows.Next(); i++ {
		var src any
		if err := rows.Scan(&src); err != nil {
			_ = rows.Close()
			return zero, fmt.Errorf("sqlbind: decode: %w", err)
		}
		v, err := c.Decode(src)
		if err != nil {
			_ = rows.Close()
			return zero, err
		}
		b.Append(v)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return zero, fmt.Errorf("sqlbind: decode: %w", err)
	}
	if err := rows.Close(); err != nil {
		return zero, err
	}
	return b.Build(), nil
}

// Pairs decodes two columns per row into a pair slice, duplicate keys
// preserved in row order.
func Pairs[K, V any](rows database.Rows, kc Codec[K], vc Codec[V]) ([]Pair[K, V], error) {
	return CollectPairs[K, V, []Pair[K, V]](rows, kc, vc, ToPairSlice[K, V](), NoLimit)
}

// Map decodes two columns per row into a map; on duplicate keys the last row
// wins.
func Map[K comparable, V any](rows database.Rows, kc Codec[K], vc Codec[V]) (map[K]V, error) {
	return CollectPairs[K, V, map[K]V](rows, kc, vc, ToMap[K, V](), NoLimit)
}

// Grouped decodes two columns per row into a multimap from key to the set of
// values seen for it. Grouping always consumes the whole cursor; a row limit
// would change which groups exist, so none is accepted.
func Grouped[K, V comparable](rows database.Rows, kc Codec[K], vc Codec[V]) (map[K]map[V]struct{}, error) {
	return CollectPairs[K, V, map[K]map[V]struct{}](rows, kc, vc, ToGroups[K, V](), NoLimit)
}

// CollectPairs is Collect for two-column rows: the first column decodes
// through kc, the second through vc, and the pair goes to b.
func CollectPairs[K, V, C any](rows database.Rows, kc Codec[K], vc Codec[V], b Builder[Pair[K, V], C], limit int) (C, error) {
	var zero C
	for i := 0; (limit <= 0 || i < limit) && rows.Next(); i++ {
		var ksrc, vsrc any
		if err := rows.Scan(&ksrc, &vsrc); err != nil {
			_ = rows.Close()
			return zero, fmt.Errorf("sqlbind: decode: %w", err)
		}
		k, err := kc.Decode(ksrc)
		if err != nil {
			_ = rows.Close()
			return zero, err
		}
		v, err := vc.Decode(vsrc)
		if err != nil {
			_ = rows.Close()
			return zero, err
		}
		b.Append(Pair[K, V]{Key: k, Value: v})
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return zero, fmt.Errorf("sqlbind: decode: %w", err)
	}
	if err := rows.Close(); err != nil {
		return zero, err
	}
	return b.Build(), nil
}
