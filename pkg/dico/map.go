// Package dico implements containers attribute values are persisted to.
//
// A Map is an in-memory document mapping names to element sequences; it
// satisfies attr.Dico. Maps have a YAML form, and a Store keeps named Maps in a
// bbolt database.
package dico

import (
	"slices"
	"sync"

	"src.attrkit.dev/pkg/elems"
)

// Map is an in-memory document. It is safe for concurrent use. The zero Map
// is empty and ready to use.
type Map struct {
	mu      sync.RWMutex
	entries map[string]elems.Elems
}

// NewMap returns an empty Map.
func NewMap() *Map { return &Map{entries: make(map[string]elems.Elems)} }

// Get returns a copy of the named entry. It returns nil for absent names.
func (m *Map) Get(name string) elems.Elems {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entries[name].Clone()
}

// Has reports whether the named entry exists.
func (m *Map) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[name]
	return ok
}

// Set replaces the named entry with a copy of es.
func (m *Map) Set(name string, es elems.Elems) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initLocked()
	m.entries[name] = es.Clone()
}

// Append adds e to the end of the named entry, creating it if needed.
func (m *Map) Append(name string, e elems.Elem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initLocked()
	m.entries[name] = append(m.entries[name], e)
}

// Delete removes the named entry.
func (m *Map) Delete(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, name)
}

// Len returns the number of entries.
func (m *Map) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Names returns the entry names, sorted.
func (m *Map) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.entries))
	for name := range m.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (m *Map) initLocked() {
	if m.entries == nil {
		m.entries = make(map[string]elems.Elems)
	}
}
