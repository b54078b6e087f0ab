// Package attr implements observable attribute stores.
//
// An Attr is a named, typed value with display metadata (label, category and
// sort order), a Behavior mask, a default snapshot taken at construction and
// an optional frozen snapshot. A Manager owns a set of attributes, serializes
// access to them, and notifies weakly held listeners about additions,
// removals, value changes and behavior changes.
//
// Values cross type boundaries as element sequences (see package elems): every
// attribute can be read as one and set from one, whatever its kind.
//
// An Attr is safe for concurrent use, so listeners may read the *Attr they are
// handed while other goroutines change it. Once registered with a Manager, it
// should only be mutated through the manager, so that listeners are notified.
package attr

import (
	"sync"

	"src.attrkit.dev/pkg/elems"
)

// Meta keeps the construction-time metadata of an attribute. All fields are
// optional.
type Meta struct {
	// Label is the display name. It defaults to the attribute name.
	Label string
	// Category is the display group.
	Category string
	// Order sorts attributes within a category. Negative values are treated
	// as 0.
	Order int
	// Behavior is the initial behavior mask.
	Behavior Behavior
}

// Attr is a single attribute.
type Attr struct {
	name     string
	label    string
	category string
	order    int

	// Guards the fields below.
	mu       sync.RWMutex
	behavior Behavior
	value    Value
	def      elems.Elems
	frozen   elems.Elems
}

// New creates an attribute holding v. The current value of v becomes the
// default snapshot. New takes ownership of v.
func New(name string, v Value, meta Meta) *Attr {
	if meta.Label == "" {
		meta.Label = name
	}
	return &Attr{
		name:     name,
		label:    meta.Label,
		category: meta.Category,
		order:    max(meta.Order, 0),
		behavior: meta.Behavior,
		value:    v,
		def:      v.Elems(),
	}
}

func (a *Attr) Name() string     { return a.name }
func (a *Attr) Label() string    { return a.label }
func (a *Attr) Category() string { return a.category }
func (a *Attr) Order() int       { return a.order }

// Kind returns the kind of the underlying value, such as "int" or "color".
func (a *Attr) Kind() string { return a.value.Kind() }

func (a *Attr) Behavior() Behavior {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.behavior
}

// Has reports whether every bit of b is set in the behavior mask.
func (a *Attr) Has(b Behavior) bool { return a.Behavior()&b == b }

// SetBehavior replaces the behavior mask.
func (a *Attr) SetBehavior(b Behavior) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.behavior = b
}

func (a *Attr) updateBehavior(f func(Behavior) Behavior) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.behavior = f(a.behavior)
}

// Typed returns a copy of the typed value. Changing the copy does not affect
// the attribute.
func (a *Attr) Typed() Value {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.value.clone()
}

// Value returns the current value as an element sequence.
func (a *Attr) Value() elems.Elems {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.value.Elems()
}

// SetValue updates the current value from es and reports whether the element
// form of the value changed. It does not notify anyone.
func (a *Attr) SetValue(es elems.Elems) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.setValueLocked(es)
}

func (a *Attr) setValueLocked(es elems.Elems) bool {
	old := a.value.Elems()
	a.value.scan(es)
	return !old.Equal(a.value.Elems())
}

// String returns the textual form of the current value.
func (a *Attr) String() string { return a.Value().String() }

// SetString parses s as an element sequence and applies it with SetValue.
func (a *Attr) SetString(s string) (bool, error) {
	es, err := elems.Parse(s)
	if err != nil {
		return false, err
	}
	return a.SetValue(es), nil
}

// Default returns the default snapshot.
func (a *Attr) Default() elems.Elems {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.def.Clone()
}

// ResetToDefault applies the default snapshot and reports whether the value
// changed.
func (a *Attr) ResetToDefault() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.setValueLocked(a.def)
}

// SetDefault applies es, then records the resulting value as the new default
// snapshot. It reports whether the current value changed.
func (a *Attr) SetDefault(es elems.Elems) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	changed := a.setValueLocked(es)
	a.def = a.value.Elems()
	return changed
}

// Freeze captures the current value into the frozen snapshot when on is true,
// and discards the snapshot otherwise.
func (a *Attr) Freeze(on bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if on {
		a.frozen = a.value.Elems()
	} else {
		a.frozen = nil
	}
}

// IsFrozen reports whether a frozen snapshot exists.
func (a *Attr) IsFrozen() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.frozen != nil
}

// FrozenValue returns the frozen snapshot, or nil if the attribute is not
// frozen.
func (a *Attr) FrozenValue() elems.Elems {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.frozen.Clone()
}
