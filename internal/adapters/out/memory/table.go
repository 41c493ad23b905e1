package memory

import "slices"

// table is an insertion-ordered identity map.
type table[K comparable, V any] struct {
	rows  map[K]V
	order []K
}

func newTable[K comparable, V any]() *table[K, V] {
	return &table[K, V]{rows: map[K]V{}}
}

func (t *table[K, V]) get(id K) (V, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[K, V]) has(id K) bool {
	_, ok := t.rows[id]
	return ok
}

func (t *table[K, V]) put(id K, v V) {
	if !t.has(id) {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[K, V]) all() []V {
	out := make([]V, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *table[K, V]) mergeInto(dst *table[K, V]) {
	for _, id := range t.order {
		dst.put(id, t.rows[id])
	}
}

// layered reads a committed table with a staged table on top.
type layered[K comparable, V any] struct {
	committed *table[K, V]
	staged    *table[K, V]
}

func (l layered[K, V]) get(id K) (V, bool) {
	if v, ok := l.staged.get(id); ok {
		return v, true
	}
	return l.committed.get(id)
}

func (l layered[K, V]) has(id K) bool {
	return l.staged.has(id) || l.committed.has(id)
}

func (l layered[K, V]) all() []V {
	return slices.Concat(l.committed.all(), l.staged.all())
}
