package decode

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/go-faro/sqlbind/bind"
)

var (
	// ErrTypeMismatch is wrapped by every failed column decode; the wrapping
	// error names the requested Go type and the driver value actually seen.
	ErrTypeMismatch = errors.New("sqlbind: cannot decode column")

	// ErrNullColumn is returned when a non-optional decode meets SQL NULL.
	ErrNullColumn = errors.New("sqlbind: unexpected NULL column")
)

// Codec converts between a driver-level column value and a single Go type.
// Codecs are passed explicitly at every decode call site; there is no global
// registry to resolve them from.
type Codec[T any] interface {
	// Decode converts a driver value into T.
	Decode(src any) (T, error)
	// Encode is the inverse: it renders v the way the binder would bind it.
	Encode(v T) (any, error)
}

// codec builds a Codec from two funcs; all built-in codecs use it.
type codec[T any] struct {
	dec func(src any) (T, error)
	enc func(v T) (any, error)
}

func (c codec[T]) Decode(src any) (T, error) { return c.dec(src) }
func (c codec[T]) Encode(v T) (any, error)   { return c.enc(v) }

func mismatch[T any](src any) (T, error) {
	var zero T
	if src == nil {
		return zero, fmt.Errorf("%w: want %T", ErrNullColumn, zero)
	}
	return zero, fmt.Errorf("%w as %T: got %T (%v)", ErrTypeMismatch, zero, src, src)
}

// asString normalizes the two textual driver forms.
func asString(src any) (string, bool) {
	switch v := src.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	}
	return "", false
}

// Built-in codecs, one per bindable scalar type.
var (
	Bool = codec[bool]{
		dec: func(src any) (bool, error) {
			switch v := src.(type) {
			case bool:
				return v, nil
			case int64:
				return v != 0, nil
			}
			return mismatch[bool](src)
		},
		enc: func(v bool) (any, error) { return v, nil },
	}

	Int8 = codec[int8]{
		dec: func(src any) (int8, error) { return decInt[int8](src) },
		enc: func(v int8) (any, error) { return v, nil },
	}

	Int16 = codec[int16]{
		dec: func(src any) (int16, error) { return decInt[int16](src) },
		enc: func(v int16) (any, error) { return v, nil },
	}

	Int32 = codec[int32]{
		dec: func(src any) (int32, error) { return decInt[int32](src) },
		enc: func(v int32) (any, error) { return v, nil },
	}

	Int64 = codec[int64]{
		dec: func(src any) (int64, error) { return decInt[int64](src) },
		enc: func(v int64) (any, error) { return v, nil },
	}

	Float32 = codec[float32]{
		dec: func(src any) (float32, error) {
			switch v := src.(type) {
			case float32:
				return v, nil
			case float64:
				return float32(v), nil
			}
			if s, ok := asString(src); ok {
				f, err := strconv.ParseFloat(s, 32)
				if err == nil {
					return float32(f), nil
				}
			}
			return mismatch[float32](src)
		},
		enc: func(v float32) (any, error) { return v, nil },
	}

	Float64 = codec[float64]{
		dec: func(src any) (float64, error) {
			switch v := src.(type) {
			case float64:
				return v, nil
			case float32:
				return float64(v), nil
			case int64:
				return float64(v), nil
			}
			if s, ok := asString(src); ok {
				f, err := strconv.ParseFloat(s, 64)
				if err == nil {
					return f, nil
				}
			}
			return mismatch[float64](src)
		},
		enc: func(v float64) (any, error) { return v, nil },
	}

	Decimal = codec[decimal.Decimal]{
		dec: func(src any) (decimal.Decimal, error) {
			switch v := src.(type) {
			case decimal.Decimal:
				return v, nil
			case int64:
				return decimal.NewFromInt(v), nil
			case float64:
				return decimal.NewFromFloat(v), nil
			}
			if s, ok := asString(src); ok {
				d, err := decimal.NewFromString(s)
				if err == nil {
					return d, nil
				}
			}
			return mismatch[decimal.Decimal](src)
		},
		enc: func(v decimal.Decimal) (any, error) { return v, nil },
	}

	BigInt = codec[*big.Int]{
		dec: func(src any) (*big.Int, error) {
			switch v := src.(type) {
			case int64:
				return big.NewInt(v), nil
			}
			if s, ok := asString(src); ok {
				if n, ok := new(big.Int).SetString(s, 10); ok {
					return n, nil
				}
			}
			return mismatch[*big.Int](src)
		},
		enc: func(v *big.Int) (any, error) { return decimal.NewFromBigInt(v, 0), nil },
	}

	Char = codec[rune]{
		dec: func(src any) (rune, error) {
			if s, ok := asString(src); ok && s != "" {
				return []rune(s)[0], nil
			}
			return mismatch[rune](src)
		},
		enc: func(v rune) (any, error) { return string(v), nil },
	}

	Bytes = codec[[]byte]{
		dec: func(src any) ([]byte, error) {
			switch v := src.(type) {
			case []byte:
				out := make([]byte, len(v))
				copy(out, v)
				return out, nil
			case string:
				return []byte(v), nil
			}
			return mismatch[[]byte](src)
		},
		enc: func(v []byte) (any, error) { return v, nil },
	}

	Time = codec[time.Time]{
		dec: func(src any) (time.Time, error) {
			if v, ok := src.(time.Time); ok {
				return v, nil
			}
			if s, ok := asString(src); ok {
				t, err := time.Parse(time.RFC3339Nano, s)
				if err == nil {
					return t, nil
				}
			}
			return mismatch[time.Time](src)
		},
		enc: func(v time.Time) (any, error) { return v, nil },
	}

	// Date is Time with the time-of-day part dropped, matching how the
	// binder stores dates.
	Date = codec[time.Time]{
		dec: func(src any) (time.Time, error) {
			t, err := Time.Decode(src)
			if err != nil {
				return time.Time{}, err
			}
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, t.Location()), nil
		},
		enc: func(v time.Time) (any, error) {
			y, m, d := v.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, v.Location()), nil
		},
	}

	String = codec[string]{
		dec: func(src any) (string, error) {
			if s, ok := asString(src); ok {
				return s, nil
			}
			return mismatch[string](src)
		},
		enc: func(v string) (any, error) { return v, nil },
	}

	// UUID reads either the 16-byte column form or a canonical text form.
	UUID = codec[uuid.UUID]{
		dec: func(src any) (uuid.UUID, error) {
			switch v := src.(type) {
			case []byte:
				if len(v) == 16 {
					return bind.DecodeUUID(v)
				}
				id, err := uuid.ParseBytes(v)
				if err == nil {
					return id, nil
				}
			case string:
				id, err := uuid.Parse(v)
				if err == nil {
					return id, nil
				}
			}
			return mismatch[uuid.UUID](src)
		},
		enc: func(v uuid.UUID) (any, error) { return bind.EncodeUUID(v), nil },
	}

	// ULID reads either the 16-byte column form or the 26-character text form.
	ULID = codec[ulid.ULID]{
		dec: func(src any) (ulid.ULID, error) {
			switch v := src.(type) {
			case []byte:
				if len(v) == 16 {
					return bind.DecodeULID(v)
				}
				id, err := ulid.ParseStrict(string(v))
				if err == nil {
					return id, nil
				}
			case string:
				id, err := ulid.ParseStrict(v)
				if err == nil {
					return id, nil
				}
			}
			return mismatch[ulid.ULID](src)
		},
		enc: func(v ulid.ULID) (any, error) { return bind.EncodeULID(v), nil },
	}
)

// decInt converts the integer driver forms into any fixed-width signed type.
// A value outside the target type's range is a decode failure, never a
// truncation.
func decInt[T ~int8 | ~int16 | ~int32 | ~int64](src any) (T, error) {
	var n int64
	switch v := src.(type) {
	case int64:
		n = v
	case int32:
		n = int64(v)
	case int16:
		n = int64(v)
	case int8:
		n = int64(v)
	case int:
		n = int64(v)
	default:
		s, ok := asString(src)
		if !ok {
			return mismatch[T](src)
		}
		parsed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return mismatch[T](src)
		}
		n = parsed
	}
	t := T(n)
	if int64(t) != n {
		var zero T
		return zero, fmt.Errorf("%w as %T: value %d out of range", ErrTypeMismatch, zero, n)
	}
	return t, nil
}
