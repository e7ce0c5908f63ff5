// Copyright 2026 The fhir-schema-migration-tool Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package collection provides the map-keyed-by-string-with-deterministic-
// iteration-order type that every tree stage in this repository builds on.
//
// Go has no ordered map in its standard library, and nothing in the
// retrieval pack reaches for a third-party ordered-map library either:
// goyang and ygot keep a plain map and call sort.Strings on the key set
// whenever they need a stable walk order (see ygen/directory.go). OrderedMap
// generalizes exactly that idiom into a reusable type instead of
// re-deriving it at every call site.
package collection

import "sort"

// OrderedMap is a map keyed by string whose Keys and Range always visit
// entries in lexicographic key order, regardless of insertion order.
type OrderedMap[V any] struct {
	values map[string]V
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{values: make(map[string]V)}
}

// Set stores value under key, overwriting any existing entry.
func (m *OrderedMap[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	m.values[key] = value
}

// Get returns the value stored under key and whether it was present.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *OrderedMap[V]) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	return len(m.values)
}

// Keys returns the map's keys in lexicographic order.
func (m *OrderedMap[V]) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Range calls fn for every entry in lexicographic key order. Range stops
// early if fn returns false.
func (m *OrderedMap[V]) Range(fn func(key string, value V) bool) {
	for _, k := range m.Keys() {
		if !fn(k, m.values[k]) {
			return
		}
	}
}
