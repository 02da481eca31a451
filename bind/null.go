package bind

import "database/sql/driver"

// TypeCode tags a NULL write with the SQL type of the column it targets.
// Drivers that distinguish typed NULLs (and tests) can recover the code from
// the marker; drivers that don't simply see a plain NULL.
type TypeCode int

const (
	TypeDecimal TypeCode = iota
	TypeBoolean
	TypeTinyInt
	TypeBlob
	TypeChar
	TypeDate
	TypeDouble
	TypeFloat
	TypeInteger
	TypeBigInt
	TypeSmallInt
	TypeVarChar
	TypeTimestamp
)

var typeCodeNames = []string{
	TypeDecimal:   "decimal",
	TypeBoolean:   "boolean",
	TypeTinyInt:   "tinyint",
	TypeBlob:      "blob",
	TypeChar:      "char",
	TypeDate:      "date",
	TypeDouble:    "double",
	TypeFloat:     "float",
	TypeInteger:   "integer",
	TypeBigInt:    "bigint",
	TypeSmallInt:  "smallint",
	TypeVarChar:   "varchar",
	TypeTimestamp: "timestamp",
}

func (c TypeCode) String() string {
	if c >= 0 && int(c) < len(typeCodeNames) {
		return typeCodeNames[c]
	}
	return "unknown"
}

// Null is the marker bound for an absent optional value. It renders as SQL
// NULL through driver.Valuer while still carrying the column's type code, so
// the NULL write keeps its type information all the way to the driver.
type Null struct {
	Code TypeCode
}

// Value implements driver.Valuer; a Null always evaluates to SQL NULL.
func (n Null) Value() (driver.Value, error) { return nil, nil }
