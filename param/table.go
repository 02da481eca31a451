package param

// Table is the name → positions snapshot for one prepared statement.
// It is computed once (normally by template.Template.Expand) and is read-only
// afterwards, so a single Table may be shared by every binder created for that
// statement without locking.
//
// Positions are 1-based to match conventional statement parameter indexing.
// A name maps to more than one position when it occurs more than once in the
// SQL text. A list-valued name maps to the start position of each of its
// contiguous runs; the run length is recorded in the List entry.
type Table struct {
	positions map[string][]int
	lists     map[string]List
	width     int
}

// List records a list-expansion placeholder: the parameter name and the
// number of elements the bound value will contain. Produced at statement
// preparation time, read-only during binding.
type List struct {
	Name string
	Size int
}

// NewTable builds a Table from explicit position and list data. The maps are
// copied, so callers are free to reuse their own.
func NewTable(positions map[string][]int, lists []List) *Table {
	t := &Table{
		positions: make(map[string][]int, len(positions)),
		lists:     make(map[string]List, len(lists)),
	}
	for name, pos := range positions {
		cp := make([]int, len(pos))
		copy(cp, pos)
		t.positions[name] = cp
	}
	for _, l := range lists {
		t.lists[l.Name] = l
	}
	t.width = computeWidth(t)
	return t
}

// Positions returns every base position the name resolves to, in declaration
// order. For a list-valued name these are run starts, not individual slots.
// ok is false when the name is not in the table; what happens then is the
// caller's decision (see bind.Config.Strict).
func (t *Table) Positions(name string) (pos []int, ok bool) {
	pos, ok = t.positions[name]
	return pos, ok
}

// List returns the list-expansion record for name, if it is list-valued.
func (t *Table) List(name string) (List, bool) {
	l, ok := t.lists[name]
	return l, ok
}

// IsList reports whether name was declared as a list-expansion placeholder.
func (t *Table) IsList(name string) bool {
	_, ok := t.lists[name]
	return ok
}

// Names returns the number of distinct parameter names in the table.
func (t *Table) Names() int { return len(t.positions) }

// Width returns the total number of positional slots the statement carries,
// list runs included. A bind.Args buffer sized to Width holds every value the
// table can address.
func (t *Table) Width() int { return t.width }

func computeWidth(t *Table) int {
	max := 0
	for name, positions := range t.positions {
		run := 1
		if l, ok := t.lists[name]; ok {
			run = l.Size
		}
		for _, base := range positions {
			if end := base + run - 1; end > max {
				max = end
			}
		}
	}
	return max
}
