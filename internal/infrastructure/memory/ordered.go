package memory

import "slices"

// orderedMap is a map that remembers insertion order. Not safe for
// concurrent use; the Store lock guards it.
type orderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

func newOrderedMap[K comparable, V any]() *orderedMap[K, V] {
	return &orderedMap[K, V]{values: make(map[K]V)}
}

func (m *orderedMap[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *orderedMap[K, V]) Set(key K, value V) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *orderedMap[K, V]) Delete(key K) bool {
	if _, exists := m.values[key]; !exists {
		return false
	}
	delete(m.values, key)
	if i := slices.Index(m.keys, key); i >= 0 {
		m.keys = slices.Delete(m.keys, i, i+1)
	}
	return true
}

// DeleteFunc removes every entry for which fn returns true and reports how many went.
func (m *orderedMap[K, V]) DeleteFunc(fn func(K, V) bool) int {
	removed := 0
	m.keys = slices.DeleteFunc(m.keys, func(k K) bool {
		if fn(k, m.values[k]) {
			delete(m.values, k)
			removed++
			return true
		}
		return false
	})
	return removed
}

// Each visits entries in insertion order until fn returns false.
func (m *orderedMap[K, V]) Each(fn func(K, V) bool) {
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

func (m *orderedMap[K, V]) Len() int {
	return len(m.keys)
}
