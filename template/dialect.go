package template

import "strconv"

// Dialect selects the positional placeholder style Expand renders.
type Dialect int

const (
	Question Dialect = iota // "?"          (MySQL, SQLite)
	Dollar                  // "$1, $2, …"  (PostgreSQL)
	AtP                     // "@p1, @p2…"  (SQL Server)
)

// String returns the string representation of the dialect.
func (d Dialect) String() string {
	switch d {
	case Question:
		return "question"
	case Dollar:
		return "dollar"
	case AtP:
		return "atp"
	default:
		return "unknown"
	}
}

// Placeholder renders the positional marker for the 1-based position pos.
func (d Dialect) Placeholder(pos int) string {
	switch d {
	case Dollar:
		return "$" + strconv.Itoa(pos)
	case AtP:
		return "@p" + strconv.Itoa(pos)
	default:
		return "?"
	}
}
