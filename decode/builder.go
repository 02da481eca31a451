package decode

// Builder accumulates decoded elements into the caller's container of choice.
// It is the seam that keeps the traversal logic independent of concrete
// container types: the decode loop only ever calls Append, then Build once.
// Builders are single-use and not safe for concurrent use.
type Builder[T, C any] interface {
	Append(v T)
	Build() C
}

// Pair is one key/value row produced by a two-column decode.
type Pair[K, V any] struct {
	Key   K
	Value V
}

type sliceBuilder[T any] struct {
	out []T
}

func (b *sliceBuilder[T]) Append(v T) { b.out = append(b.out, v) }
func (b *sliceBuilder[T]) Build() []T { return b.out }

// ToSlice builds a []T in row order.
func ToSlice[T any]() Builder[T, []T] { return &sliceBuilder[T]{} }

type setBuilder[T comparable] struct {
	out map[T]struct{}
}

func (b *setBuilder[T]) Append(v T)            { b.out[v] = struct{}{} }
func (b *setBuilder[T]) Build() map[T]struct{} { return b.out }

// ToSet builds a membership set; duplicate rows collapse.
func ToSet[T comparable]() Builder[T, map[T]struct{}] {
	return &setBuilder[T]{out: make(map[T]struct{})}
}

// ToPairSlice builds a []Pair in row order, duplicate keys preserved.
func ToPairSlice[K, V any]() Builder[Pair[K, V], []Pair[K, V]] {
	return &sliceBuilder[Pair[K, V]]{}
}

type mapBuilder[K comparable, V any] struct {
	out map[K]V
}

func (b *mapBuilder[K, V]) Append(p Pair[K, V]) { b.out[p.Key] = p.Value }
func (b *mapBuilder[K, V]) Build() map[K]V      { return b.out }

// ToMap builds a map keyed by the pair key; on duplicate keys the last row
// wins.
func ToMap[K comparable, V any]() Builder[Pair[K, V], map[K]V] {
	return &mapBuilder[K, V]{out: make(map[K]V)}
}

type groupedBuilder[K, V comparable] struct {
	out map[K]map[V]struct{}
}

func (b *groupedBuilder[K, V]) Append(p Pair[K, V]) {
	set, ok := b.out[p.Key]
	if !ok {
		set = make(map[V]struct{})
		b.out[p.Key] = set
	}
	set[p.Value] = struct{}{}
}

func (b *groupedBuilder[K, V]) Build() map[K]map[V]struct{} { return b.out }

// ToGroups builds a multimap: every value seen for a key lands in that key's
// set, with no ordering guarantees.
func ToGroups[K, V comparable]() Builder[Pair[K, V], map[K]map[V]struct{}] {
	return &groupedBuilder[K, V]{out: make(map[K]map[V]struct{})}
}
