package bind

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/go-faro/sqlbind/param"
)

// ErrUnknownParam is returned (in strict mode only) when a setter names a
// parameter the table does not contain. In the default lenient mode the same
/// call is a silent no-op: nothing is written and no error is raised. Lenient
// mode matches the historical behavior this package replaces; a typo in a
// parameter name then loses the write silently, so new code should turn
// Strict on.
var ErrUnknownParam = errors.New("sqlbind: unknown parameter")

// setters carries the shared position-resolution and write path for Binder
// and Tuple. offset shifts every resolved position; it is 0 for a plain
// Binder and the row base for a Tuple.
type setters struct {
	table  *param.Table
	stmt   Statement
	offset int
	strict bool
}

// put writes v at every position name resolves to, shifted by the offset.
func (s *setters) put(name string, v any) error {
	positions, ok := s.table.Positions(name)
	if !ok {
		if s.strict {
			return fmt.Errorf("%w: %q", ErrUnknownParam, name)
		}
		return nil
	}
	for _, pos := range positions {
		s.stmt.Set(s.offset+pos, v)
	}
	return nil
}

// putList writes element i at base+i for every base position of a list name.
// The element count must match the run length the table was prepared with;
// that is the caller's contract and is not checked here.
func (s *setters) putList(name string, vs []any) error {
	positions, ok := s.table.Positions(name)
	if !ok {
		if s.strict {
			return fmt.Errorf("%w: %q", ErrUnknownParam, name)
		}
		return nil
	}
	for _, base := range positions {
		for i, v := range vs {
			s.stmt.Set(s.offset+base+i, v)
		}
	}
	return nil
}

// opt binds either the encoded present value or a typed NULL marker.
func (s *setters) opt(name string, present bool, v any, code TypeCode) error {
	if !present {
		return s.put(name, Null{Code: code})
	}
	return s.put(name, v)
}

// Binder applies named values to a positional statement through a parameter
// table. One Binder serves one logical query execution; it mutates only the
// Statement, never the table.
type Binder struct {
	setters
}

// New returns a Binder over table writing into stmt.
func New(table *param.Table, stmt Statement) *Binder {
	return &Binder{setters{table: table, stmt: stmt}}
}

// NewStrict is New with unknown parameter names reported as ErrUnknownParam
// instead of silently ignored.
func NewStrict(table *param.Table, stmt Statement) *Binder {
	return &Binder{setters{table: table, stmt: stmt, strict: true}}
}

// Tuple binds one row's worth of values for batch insertion: every resolved
// position is shifted by the row base supplied at construction. Tuples carry
// no list-parameter support; a batch row is a fixed-width set of columns.
type Tuple struct {
	setters
}

// NewTuple returns a row binder whose positions start after rowBase slots.
// Row n of a batch with width w uses rowBase n*w.
func NewTuple(table *param.Table, stmt Statement, rowBase int) *Tuple {
	return &Tuple{setters{table: table, stmt: stmt, offset: rowBase}}
}

// NewStrictTuple is NewTuple with strict unknown-name handling.
func NewStrictTuple(table *param.Table, stmt Statement, rowBase int) *Tuple {
	return &Tuple{setters{table: table, stmt: stmt, offset: rowBase, strict: true}}
}

// list converts a typed slice to the positional form putList consumes.
func list[T any](vs []T, enc func(T) any) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = enc(v)
	}
	return out
}

func ident[T any](v T) any { return v }

// dateOnly truncates a timestamp to its calendar day; dates are stored in
// timestamp columns.
func dateOnly(v time.Time) time.Time {
	y, m, d := v.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, v.Location())
}

func encBigInt(v *big.Int) any { return decimal.NewFromBigInt(v, 0) }

// Scalar, optional and list entry points, one family per supported column
// type. Optionals take a pointer; nil binds a typed NULL carrying the fixed
// per-type code.

func (s *setters) SetBool(name string, v bool) error { return s.put(name, v) }
func (s *setters) SetBoolOpt(name string, v *bool) error {
	return s.opt(name, v != nil, deref(v), TypeBoolean)
}

func (s *setters) SetInt8(name string, v int8) error { return s.put(name, v) }
func (s *setters) SetInt8Opt(name string, v *int8) error {
	return s.opt(name, v != nil, deref(v), TypeTinyInt)
}

func (s *setters) SetInt16(name string, v int16) error { return s.put(name, v) }
func (s *setters) SetInt16Opt(name string, v *int16) error {
	return s.opt(name, v != nil, deref(v), TypeSmallInt)
}

func (s *setters) SetInt32(name string, v int32) error { return s.put(name, v) }
func (s *setters) SetInt32Opt(name string, v *int32) error {
	return s.opt(name, v != nil, deref(v), TypeInteger)
}

func (s *setters) SetInt64(name string, v int64) error { return s.put(name, v) }
func (s *setters) SetInt64Opt(name string, v *int64) error {
	return s.opt(name, v != nil, deref(v), TypeBigInt)
}

func (s *setters) SetFloat32(name string, v float32) error { return s.put(name, v) }
func (s *setters) SetFloat32Opt(name string, v *float32) error {
	return s.opt(name, v != nil, deref(v), TypeFloat)
}

func (s *setters) SetFloat64(name string, v float64) error { return s.put(name, v) }
func (s *setters) SetFloat64Opt(name string, v *float64) error {
	return s.opt(name, v != nil, deref(v), TypeDouble)
}

func (s *setters) SetDecimal(name string, v decimal.Decimal) error { return s.put(name, v) }
func (s *setters) SetDecimalOpt(name string, v *decimal.Decimal) error {
	return s.opt(name, v != nil, deref(v), TypeDecimal)
}

func (s *setters) SetBigInt(name string, v *big.Int) error { return s.put(name, encBigInt(v)) }
func (s *setters) SetBigIntOpt(name string, v *big.Int) error {
	if v == nil {
		return s.put(name, Null{Code: TypeDecimal})
	}
	return s.put(name, encBigInt(v))
}

// SetChar binds a single character as a one-character string.
func (s *setters) SetChar(name string, v rune) error { return s.put(name, string(v)) }
func (s *setters) SetCharOpt(name string, v *rune) error {
	if v == nil {
		return s.put(name, Null{Code: TypeChar})
	}
	return s.put(name, string(*v))
}

func (s *setters) SetBytes(name string, v []byte) error { return s.put(name, v) }
func (s *setters) SetBytesOpt(name string, v *[]byte) error {
	if v == nil {
		return s.put(name, Null{Code: TypeBlob})
	}
	return s.put(name, *v)
}

// SetDate binds the calendar day of v; the time-of-day part is dropped.
func (s *setters) SetDate(name string, v time.Time) error { return s.put(name, dateOnly(v)) }
func (s *setters) SetDateOpt(name string, v *time.Time) error {
	if v == nil {
		return s.put(name, Null{Code: TypeDate})
	}
	return s.put(name, dateOnly(*v))
}

func (s *setters) SetTime(name string, v time.Time) error { return s.put(name, v) }
func (s *setters) SetTimeOpt(name string, v *time.Time) error {
	return s.opt(name, v != nil, deref(v), TypeTimestamp)
}

func (s *setters) SetString(name string, v string) error { return s.put(name, v) }
func (s *setters) SetStringOpt(name string, v *string) error {
	return s.opt(name, v != nil, deref(v), TypeVarChar)
}

func (s *setters) SetUUID(name string, v uuid.UUID) error { return s.put(name, EncodeUUID(v)) }
func (s *setters) SetUUIDOpt(name string, v *uuid.UUID) error {
	if v == nil {
		return s.put(name, Null{Code: TypeVarChar})
	}
	return s.put(name, EncodeUUID(*v))
}

func (s *setters) SetULID(name string, v ulid.ULID) error { return s.put(name, EncodeULID(v)) }
func (s *setters) SetULIDOpt(name string, v *ulid.ULID) error {
	if v == nil {
		return s.put(name, Null{Code: TypeVarChar})
	}
	return s.put(name, EncodeULID(*v))
}

func deref[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

// List variants live on Binder only; a Tuple is one fixed-width row.

func (b *Binder) SetBoolList(name string, vs []bool) error {
	return b.putList(name, list(vs, ident[bool]))
}

func (b *Binder) SetInt8List(name string, vs []int8) error {
	return b.putList(name, list(vs, ident[int8]))
}

func (b *Binder) SetInt16List(name string, vs []int16) error {
	return b.putList(name, list(vs, ident[int16]))
}

func (b *Binder) SetInt32List(name string, vs []int32) error {
	return b.putList(name, list(vs, ident[int32]))
}

func (b *Binder) SetInt64List(name string, vs []int64) error {
	return b.putList(name, list(vs, ident[int64]))
}

func (b *Binder) SetFloat32List(name string, vs []float32) error {
	return b.putList(name, list(vs, ident[float32]))
}

func (b *Binder) SetFloat64List(name string, vs []float64) error {
	return b.putList(name, list(vs, ident[float64]))
}

func (b *Binder) SetDecimalList(name string, vs []decimal.Decimal) error {
	return b.putList(name, list(vs, ident[decimal.Decimal]))
}

func (b *Binder) SetBigIntList(name string, vs []*big.Int) error {
	return b.putList(name, list(vs, func(v *big.Int) any { return encBigInt(v) }))
}

func (b *Binder) SetCharList(name string, vs []rune) error {
	return b.putList(name, list(vs, func(v rune) any { return string(v) }))
}

func (b *Binder) SetBytesList(name string, vs [][]byte) error {
	return b.putList(name, list(vs, func(v []byte) any { return v }))
}

func (b *Binder) SetDateList(name string, vs []time.Time) error {
	return b.putList(name, list(vs, func(v time.Time) any { return dateOnly(v) }))
}

func (b *Binder) SetTimeList(name string, vs []time.Time) error {
	return b.putList(name, list(vs, ident[time.Time]))
}

func (b *Binder) SetStringList(name string, vs []string) error {
	return b.putList(name, list(vs, ident[string]))
}

func (b *Binder) SetUUIDList(name string, vs []uuid.UUID) error {
	return b.putList(name, list(vs, func(v uuid.UUID) any { return EncodeUUID(v) }))
}

func (b *Binder) SetULIDList(name string, vs []ulid.ULID) error {
	return b.putList(name, list(vs, func(v ulid.ULID) any { return EncodeULID(v) }))
}
