package store

// Map is a persistent insertion-ordered map keyed by id. Every mutation
// returns a new Map and leaves the receiver untouched, so a State snapshot
// handed to a reader never changes underneath it. The zero value is empty.
//
// Replacing an existing id keeps its original position.
type Map[V any] struct {
	keys   []string
	values map[string]V
}

// Len returns the number of entries.
func (m Map[V]) Len() int {
	return len(m.keys)
}

// Get returns the value stored under id.
func (m Map[V]) Get(id string) (V, bool) {
	v, ok := m.values[id]
	return v, ok
}

// Has returns true if id is present.
func (m Map[V]) Has(id string) bool {
	_, ok := m.values[id]
	return ok
}

// Keys returns the ids in insertion order.
func (m Map[V]) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Each calls fn for every entry in insertion order until fn returns false.
func (m Map[V]) Each(fn func(id string, v V) bool) {
	for _, id := range m.keys {
		if !fn(id, m.values[id]) {
			return
		}
	}
}

// With returns a copy of m with id set to v.
func (m Map[V]) With(id string, v V) Map[V] {
	values := make(map[string]V, len(m.values)+1)
	for k, val := range m.values {
		values[k] = val
	}
	keys := m.keys
	if _, ok := m.values[id]; !ok {
		keys = make([]string, len(m.keys), len(m.keys)+1)
		copy(keys, m.keys)
		keys = append(keys, id)
	}
	values[id] = v
	return Map[V]{keys: keys, values: values}
}

// Without returns a copy of m with id removed. It returns m itself when id is
// absent.
func (m Map[V]) Without(id string) Map[V] {
	if _, ok := m.values[id]; !ok {
		return m
	}
	values := make(map[string]V, len(m.values))
	for k, val := range m.values {
		if k != id {
			values[k] = val
		}
	}
	keys := make([]string, 0, len(m.keys)-1)
	for _, k := range m.keys {
		if k != id {
			keys = append(keys, k)
		}
	}
	return Map[V]{keys: keys, values: values}
}
