package bind

import (
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-faro/sqlbind/param"
)

func scalarTable(names map[string][]int) *param.Table {
	return param.NewTable(names, nil)
}

func TestArgsGrowAndReadBack(t *testing.T) {
	args := NewArgs(2)
	args.Set(1, "a")
	args.Set(5, "b")

	assert.Equal(t, 5, args.Len())
	assert.Equal(t, "a", args.Value(1))
	assert.Nil(t, args.Value(3))
	assert.Equal(t, "b", args.Value(5))
	assert.Nil(t, args.Value(99))

	args.Set(0, "ignored")
	assert.Equal(t, 5, args.Len())
}

func TestScalarRoundTrip(t *testing.T) {
	table := scalarTable(map[string][]int{"id": {1}, "name": {2}})
	args := NewArgs(table.Width())
	b := New(table, args)

	require.NoError(t, b.SetInt64("id", 42))
	require.NoError(t, b.SetString("name", "ada"))

	assert.Equal(t, int64(42), args.Value(1))
	assert.Equal(t, "ada", args.Value(2))
}

func TestRepeatedNameBindsEveryPosition(t *testing.T) {
	table := scalarTable(map[string][]int{"status": {1, 3}})
	args := NewArgs(table.Width())
	b := New(table, args)

	require.NoError(t, b.SetString("status", "open"))

	assert.Equal(t, "open", args.Value(1))
	assert.Nil(t, args.Value(2))
	assert.Equal(t, "open", args.Value(3))
}

func TestListBindsRunPerBasePosition(t *testing.T) {
	// "ids" expands to runs of 2 starting at positions 2 and 4:
	// N=2 elements across K=2 bases means exactly 4 writes.
	table := param.NewTable(
		map[string][]int{"a": {1}, "ids": {2, 4}},
		[]param.List{{Name: "ids", Size: 2}},
	)
	args := NewArgs(table.Width())
	b := New(table, args)

	require.NoError(t, b.SetInt64List("ids", []int64{7, 8}))

	assert.Nil(t, args.Value(1))
	assert.Equal(t, int64(7), args.Value(2))
	assert.Equal(t, int64(8), args.Value(3))
	assert.Equal(t, int64(7), args.Value(4))
	assert.Equal(t, int64(8), args.Value(5))
}

func TestUnknownNameIsNoOp(t *testing.T) {
	table := scalarTable(map[string][]int{"id": {1}})
	args := NewArgs(table.Width())
	b := New(table, args)

	require.NoError(t, b.SetInt64("idd", 42))
	require.NoError(t, b.SetInt64List("ids", []int64{1, 2}))

	assert.Nil(t, args.Value(1))
	assert.Equal(t, 1, args.Len())
}

func TestStrictUnknownName(t *testing.T) {
	table := scalarTable(map[string][]int{"id": {1}})
	b := NewStrict(table, NewArgs(table.Width()))

	err := b.SetInt64("idd", 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownParam)
	assert.Contains(t, err.Error(), "idd")

	assert.ErrorIs(t, b.SetInt64List("ids", []int64{1}), ErrUnknownParam)
}

func TestOptionalPresentDelegates(t *testing.T) {
	table := scalarTable(map[string][]int{"v": {1}})
	args := NewArgs(table.Width())
	b := New(table, args)

	v := int32(7)
	require.NoError(t, b.SetInt32Opt("v", &v))
	assert.Equal(t, int32(7), args.Value(1))
}

func TestOptionalAbsentBindsTypedNull(t *testing.T) {
	names := []string{
		"dec", "bigint", "bool", "i8", "blob", "ch", "date",
		"f64", "f32", "i32", "i64", "i16", "str", "uid", "ts",
	}
	positions := make(map[string][]int, len(names))
	for i, n := range names {
		positions[n] = []int{i + 1}
	}
	table := scalarTable(positions)
	args := NewArgs(table.Width())
	b := New(table, args)

	require.NoError(t, b.SetDecimalOpt("dec", nil))
	require.NoError(t, b.SetBigIntOpt("bigint", nil))
	require.NoError(t, b.SetBoolOpt("bool", nil))
	require.NoError(t, b.SetInt8Opt("i8", nil))
	require.NoError(t, b.SetBytesOpt("blob", nil))
	require.NoError(t, b.SetCharOpt("ch", nil))
	require.NoError(t, b.SetDateOpt("date", nil))
	require.NoError(t, b.SetFloat64Opt("f64", nil))
	require.NoError(t, b.SetFloat32Opt("f32", nil))
	require.NoError(t, b.SetInt32Opt("i32", nil))
	require.NoError(t, b.SetInt64Opt("i64", nil))
	require.NoError(t, b.SetInt16Opt("i16", nil))
	require.NoError(t, b.SetStringOpt("str", nil))
	require.NoError(t, b.SetUUIDOpt("uid", nil))
	require.NoError(t, b.SetTimeOpt("ts", nil))

	wantCodes := map[string]TypeCode{
		"dec":    TypeDecimal,
		"bigint": TypeDecimal,
		"bool":   TypeBoolean,
		"i8":     TypeTinyInt,
		"blob":   TypeBlob,
		"ch":     TypeChar,
		"date":   TypeDate,
		"f64":    TypeDouble,
		"f32":    TypeFloat,
		"i32":    TypeInteger,
		"i64":    TypeBigInt,
		"i16":    TypeSmallInt,
		"str":    TypeVarChar,
		"uid":    TypeVarChar,
		"ts":     TypeTimestamp,
	}
	for name, want := range wantCodes {
		pos, _ := table.Positions(name)
		marker, ok := args.Value(pos[0]).(Null)
		require.True(t, ok, "parameter %s should hold a Null marker", name)
		assert.Equal(t, want, marker.Code, "parameter %s", name)
	}
}

func TestNullRendersAsSQLNull(t *testing.T) {
	v, err := Null{Code: TypeVarChar}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestTypeCodeString(t *testing.T) {
	assert.Equal(t, "decimal", TypeDecimal.String())
	assert.Equal(t, "timestamp", TypeTimestamp.String())
	assert.Equal(t, "unknown", TypeCode(99).String())
	assert.Equal(t, "unknown", TypeCode(-1).String())
}

func TestEncodingRules(t *testing.T) {
	table := scalarTable(map[string][]int{
		"ch": {1}, "date": {2}, "uid": {3}, "big": {4},
	})
	args := NewArgs(table.Width())
	b := New(table, args)

	require.NoError(t, b.SetChar("ch", '€'))
	assert.Equal(t, "€", args.Value(1))

	loc := time.FixedZone("X", 3600)
	stamp := time.Date(2024, 3, 15, 13, 45, 12, 999, loc)
	require.NoError(t, b.SetDate("date", stamp))
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, loc), args.Value(2))

	id := uuid.MustParse("01020304-0506-0708-0807-060504030201")
	require.NoError(t, b.SetUUID("uid", id))
	assert.Equal(t, EncodeUUID(id), args.Value(3))

	require.NoError(t, b.SetBigInt("big", big.NewInt(123456789)))
	d, ok := args.Value(4).(decimal.Decimal)
	require.True(t, ok)
	assert.Equal(t, "123456789", d.String())
}

func TestTupleOffsetsRows(t *testing.T) {
	table := scalarTable(map[string][]int{"name": {1}, "age": {2}})
	args := NewArgs(6)

	rows := []struct {
		name string
		age  int32
	}{
		{"ada", 36}, {"alan", 41}, {"grace", 85},
	}
	for i, r := range rows {
		tp := NewTuple(table, args, i*2)
		require.NoError(t, tp.SetString("name", r.name))
		require.NoError(t, tp.SetInt32("age", r.age))
	}

	assert.Equal(t, []any{
		"ada", int32(36), "alan", int32(41), "grace", int32(85),
	}, args.Values())
}

func TestTupleStrictUnknownName(t *testing.T) {
	table := scalarTable(map[string][]int{"name": {1}})
	tp := NewStrictTuple(table, NewArgs(1), 0)

	assert.ErrorIs(t, tp.SetString("nam", "x"), ErrUnknownParam)
}
