package bind

// Statement is the positional statement a binder writes into. Positions are
// 1-based. A binder owns its Statement for the duration of one logical query
// and never retains it afterwards.
type Statement interface {
	Set(pos int, value any)
}

// Args is the default Statement: a growable positional argument buffer whose
// Values feed Query/Exec on database/sql or pgx. Unset positions stay nil.
type Args struct {
	vals []any
}

// NewArgs returns a buffer pre-sized for width positions. A table's Width is
// the natural argument here; width 0 is fine, the buffer grows on demand.
func NewArgs(width int) *Args {
	return &Args{vals: make([]any, width)}
}

// Set writes value at the 1-based position, growing the buffer if needed.
// Positions < 1 are ignored.
func (a *Args) Set(pos int, value any) {
	if pos < 1 {
		return
	}
	if pos > len(a.vals) {
		grown := make([]any, pos)
		copy(grown, a.vals)
		a.vals = grown
	}
	a.vals[pos-1] = value
}

// Value returns the value at the 1-based position, or nil when out of range.
func (a *Args) Value(pos int) any {
	if pos < 1 || pos > len(a.vals) {
		return nil
	}
	return a.vals[pos-1]
}

// Values returns the underlying positional slice, ready to pass as variadic
// query arguments.
func (a *Args) Values() []any { return a.vals }

// Len returns the number of positional slots currently held.
func (a *Args) Len() int { return len(a.vals) }
