package decode

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRows is an in-memory cursor for exercising traversal, limiting and
// release behavior without a driver.
type fakeRows struct {
	rows    [][]any
	idx     int // rows consumed so far
	closes  int
	iterErr error // reported by Err after iteration stops
	scanErr error
}

func (f *fakeRows) Next() bool {
	if f.iterErr != nil || f.idx >= len(f.rows) {
		return false
	}
	f.idx++
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	if f.scanErr != nil {
		return f.scanErr
	}
	row := f.rows[f.idx-1]
	for i, d := range dest {
		*(d.(*any)) = row[i]
	}
	return nil
}

func (f *fakeRows) Close() error { f.closes++; return nil }

func (f *fakeRows) Err() error { return f.iterErr }

func (f *fakeRows) Columns() ([]string, error) { return nil, nil }

func single(vals ...any) *fakeRows {
	rows := make([][]any, len(vals))
	for i, v := range vals {
		rows[i] = []any{v}
	}
	return &fakeRows{rows: rows}
}

func pairs(kv ...any) *fakeRows {
	rows := make([][]any, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		rows = append(rows, []any{kv[i], kv[i+1]})
	}
	return &fakeRows{rows: rows}
}

func TestOne(t *testing.T) {
	rows := single("ada", "alan", "grace")
	v, err := One(rows, String)
	require.NoError(t, err)
	assert.Equal(t, "ada", v)

	// Extra rows are never fetched; the cursor stops after row one.
	assert.Equal(t, 1, rows.idx)
	assert.Equal(t, 1, rows.closes)
}

func TestOneNoRows(t *testing.T) {
	rows := single()
	_, err := One(rows, String)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Equal(t, 1, rows.closes)
}

func TestOneDecodeFailureClosesCursor(t *testing.T) {
	rows := single(struct{}{})
	_, err := One(rows, String)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.Equal(t, 1, rows.closes)
}

func TestFirst(t *testing.T) {
	v, err := First(single(int64(7), int64(8)), Int64)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, int64(7), *v)

	rows := single(int64(7), int64(8))
	_, err = First(rows, Int64)
	require.NoError(t, err)
	assert.Equal(t, 1, rows.idx, "optional decode must stop at row one")
}

func TestFirstEmpty(t *testing.T) {
	rows := single()
	v, err := First(rows, Int64)
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, 1, rows.closes)
}

func TestAll(t *testing.T) {
	got, err := All(single(int64(1), int64(2), int64(3)), Int64)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, got)
}

func TestCollectLimit(t *testing.T) {
	tests := []struct {
		name     string
		rows     int
		limit    int
		want     int
		consumed int
	}{
		{"under limit", 2, 5, 2, 2},
		{"at limit", 3, 3, 3, 3},
		{"over limit", 5, 2, 2, 2},
		{"no limit", 4, NoLimit, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals := make([]any, tt.rows)
			for i := range vals {
				vals[i] = int64(i)
			}
			rows := single(vals...)

			got, err := Collect[int64, []int64](rows, Int64, ToSlice[int64](), tt.limit)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
			assert.Equal(t, tt.consumed, rows.idx, "rows past the limit must not be fetched")
			assert.Equal(t, 1, rows.closes)
		})
	}
}

func TestCollectIntoSet(t *testing.T) {
	got, err := Collect[string, map[string]struct{}](
		single("a", "b", "a"), String, ToSet[string](), NoLimit)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"a": {}, "b": {}}, got)
}

func TestCollectScanFailureClosesCursor(t *testing.T) {
	boom := errors.New("disk on fire")
	rows := single(int64(1))
	rows.scanErr = boom

	_, err := Collect[int64, []int64](rows, Int64, ToSlice[int64](), NoLimit)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, rows.closes)
}

func TestCollectIterationFailure(t *testing.T) {
	boom := errors.New("connection reset")
	rows := single()
	rows.iterErr = boom

	_, err := All(rows, Int64)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, rows.closes)
}

func TestPairsKeepDuplicates(t *testing.T) {
	got, err := Pairs(pairs("a", int64(1), "a", int64(2)), String, Int64)
	require.NoError(t, err)
	assert.Equal(t, []Pair[string, int64]{
		{Key: "a", Value: 1},
		{Key: "a", Value: 2},
	}, got)
}

func TestMapLastWins(t *testing.T) {
	got, err := Map(pairs("a", int64(1), "a", int64(2), "b", int64(3)), String, Int64)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"a": 2, "b": 3}, got)
}

func TestGrouped(t *testing.T) {
	rows := pairs(
		"a", int64(1),
		"a", int64(2),
		"b", int64(3),
	)
	got, err := Grouped(rows, String, Int64)
	require.NoError(t, err)

	assert.Equal(t, map[string]map[int64]struct{}{
		"a": {1: {}, 2: {}},
		"b": {3: {}},
	}, got)
	assert.Equal(t, 3, rows.idx, "grouping consumes the whole cursor")
}

func TestPairsValueDecodeFailureClosesCursor(t *testing.T) {
	rows := pairs("a", struct{}{})
	_, err := Pairs(rows, String, Int64)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.Equal(t, 1, rows.closes)
}
