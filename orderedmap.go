package hxbind

import (
	"bytes"
	"encoding/json"
	"iter"
	"reflect"
	"slices"
)

// OrderedMap is a string-keyed map that remembers insertion order.
//
// Setting a key that already exists replaces its value but keeps the key at
// its original position, so iteration order always reflects first
// appearance:
//
//	var m OrderedMap[int]
//	m.Set("a", 1)
//	m.Set("b", 2)
//	m.Set("a", 3) // keys: a, b; a == 3
//
// The zero value is an empty map ready to use.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// DirectiveMap holds keyed directives in attribute encounter order.
type DirectiveMap = OrderedMap[DirectiveValue]

// ModifierMap holds modifier names and their parsed arguments.
type ModifierMap = OrderedMap[[]any]

// Set stores v under key.
func (m *OrderedMap[V]) Set(key string, v V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value stored under key.
func (m OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m OrderedMap[V]) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Delete removes key, preserving the order of the remaining keys.
func (m *OrderedMap[V]) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i:i], m.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (m OrderedMap[V]) Len() int {
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m OrderedMap[V]) Keys() []string {
	if len(m.keys) == 0 {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// All iterates entries in insertion order.
func (m OrderedMap[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Clone returns a deep copy. Values with a Clone method and argument lists
// are copied as well.
func (m OrderedMap[V]) Clone() OrderedMap[V] {
	if len(m.keys) == 0 {
		return OrderedMap[V]{}
	}
	out := OrderedMap[V]{
		keys:   slices.Clone(m.keys),
		values: make(map[string]V, len(m.values)),
	}
	for k, v := range m.values {
		out.values[k] = cloneValue(v)
	}
	return out
}

// Equal reports whether both maps hold deeply equal values under the same
// keys in the same order.
func (m OrderedMap[V]) Equal(o OrderedMap[V]) bool {
	if len(m.keys) != len(o.keys) {
		return false
	}
	for i, k := range m.keys {
		if o.keys[i] != k {
			return false
		}
		if !valuesEqual(m.values[k], o.values[k]) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the map as a JSON object with keys in insertion order.
func (m OrderedMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// valuesEqual compares map values. Types with an Equal method decide for
// themselves; argument lists treat nil and empty as equal.
func valuesEqual[V any](a, b V) bool {
	if eq, ok := any(a).(interface{ Equal(V) bool }); ok {
		return eq.Equal(b)
	}
	if as, ok := any(a).([]any); ok {
		bs := any(b).([]any)
		if len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !reflect.DeepEqual(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func cloneValue[V any](v V) V {
	switch c := any(v).(type) {
	case interface{ Clone() V }:
		return c.Clone()
	case []any:
		if c == nil {
			return v
		}
		return any(slices.Clone(c)).(V)
	}
	return v
}
