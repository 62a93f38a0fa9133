package orderedmap

// OrderedMap is a map that remembers the order in which keys were first set.
type OrderedMap[K comparable, V any] struct {
	underlying map[K]V
	order      []K
}

func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		underlying: make(map[K]V),
		order:      make([]K, 0),
	}
}

// Set stores value under key. An existing key keeps its place.
func (m *OrderedMap[K, V]) Set(key K, value V) {
	if _, exists := m.underlying[key]; !exists {
		m.order = append(m.order, key)
	}
	m.underlying[key] = value
}

// SetIfAbsent stores value only when key is not present and reports whether it did.
func (m *OrderedMap[K, V]) SetIfAbsent(key K, value V) bool {
	if _, exists := m.underlying[key]; exists {
		return false
	}
	m.Set(key, value)
	return true
}

func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	value, ok := m.underlying[key]
	return value, ok
}

func (m *OrderedMap[K, V]) Has(key K) bool {
	_, ok := m.underlying[key]
	return ok
}

func (m *OrderedMap[K, V]) Delete(key K) {
	if _, exists := m.underlying[key]; !exists {
		return
	}
	delete(m.underlying, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// MoveToBack moves an existing key to the end of the order.
func (m *OrderedMap[K, V]) MoveToBack(key K) {
	place := m.GetPlace(key)
	if place < 0 {
		return
	}
	m.order = append(m.order[:place], m.order[place+1:]...)
	m.order = append(m.order, key)
}

func (m *OrderedMap[K, V]) GetPlace(key K) int {
	for i, k := range m.order {
		if k == key {
			return i
		}
	}

	return -1
}

// Keys returns a copy of the keys in order.
func (m *OrderedMap[K, V]) Keys() []K {
	keys := make([]K, len(m.order))
	copy(keys, m.order)
	return keys
}

func (m *OrderedMap[K, V]) Values() []V {
	values := make([]V, len(m.order))
	for i, k := range m.order {
		values[i] = m.underlying[k]
	}
	return values
}

func (m *OrderedMap[K, V]) Len() int {
	return len(m.order)
}
