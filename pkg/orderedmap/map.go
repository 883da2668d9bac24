// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

package orderedmap

type Map struct {
	values map[string]interface{}
	keys   []string
}

func NewMap() *Map {
	return &Map{values: make(map[string]interface{})}
}

// Set stores value under key, appending key to the insertion order the
// first time it's seen and leaving that order alone on every subsequent
// overwrite.
func (m *Map) Set(key string, value interface{}) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *Map) Get(key string) (interface{}, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *Map) Delete(key string) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns every key in first-insertion order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *Map) Len() int { return len(m.keys) }
