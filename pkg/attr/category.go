package attr

import (
	"cmp"
	"slices"
	"strings"
)

// byDisplay orders attributes the way inspectors show them: by Order, then by
// Label.
func byDisplay(a, b *Attr) int {
	return cmp.Or(cmp.Compare(a.order, b.order), strings.Compare(a.label, b.label))
}

func (m *Manager) visibleLocked(order func(a, b *Attr) int) []*Attr {
	as := m.sortedLocked(order)
	return slices.DeleteFunc(as, func(a *Attr) bool { return a.Has(Invisible) })
}

// NumCategories returns the number of distinct categories among visible
// attributes.
func (m *Manager) NumCategories() int {
	return len(m.CategoryNames(false))
}

// CategoryNames returns the distinct categories of visible attributes. When
// alphabetical is true they are sorted by name; otherwise they appear in the
// order their first attribute appears in display order.
func (m *Manager) CategoryNames(alphabetical bool) []string {
	m.mu.RLock()
	as := m.visibleLocked(byDisplay)
	m.mu.RUnlock()

	var names []string
	seen := make(map[string]bool)
	for _, a := range as {
		if !seen[a.category] {
			seen[a.category] = true
			names = append(names, a.category)
		}
	}
	if alphabetical {
		slices.Sort(names)
	}
	return names
}

// HasCategory reports whether at least one visible attribute is in the named
// category.
func (m *Manager) HasCategory(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.attrs {
		if a.category == name && !a.Has(Invisible) {
			return true
		}
	}
	return false
}

// AttributesInCategory returns the visible attributes in the named category.
// When sorted is true they are ordered by Order, then Label; otherwise by
// name.
func (m *Manager) AttributesInCategory(name string, sorted bool) []*Attr {
	order := byName
	if sorted {
		order = byDisplay
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.DeleteFunc(m.visibleLocked(order), func(a *Attr) bool {
		return a.category != name
	})
}
