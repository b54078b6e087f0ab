package attr

import (
	"slices"
	"strings"
	"sync"

	"src.attrkit.dev/pkg/elems"
	"src.attrkit.dev/pkg/logutil"
)

var logger = logutil.GetLogger("[attr] ")

// Manager is a registry of attributes keyed by name. It is safe for concurrent
// use.
//
// Two locks are involved: the registry lock guards the attributes, and the
// listener lock guards subscriptions. Notifications are delivered after the
// registry lock has been released and after the set of recipients has been
// collected under the listener lock, so listeners may freely call back into
// the manager. Each Attr also guards its own mutable state, so listeners may
// read the attribute they are handed while other goroutines change it.
//
// The zero Manager is empty and ready to use. A Manager must not be copied
// after first use.
type Manager struct {
	mu    sync.RWMutex
	attrs map[string]*Attr

	listeners listeners
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{attrs: make(map[string]*Attr)}
}

func (m *Manager) send(a *Attr, n Notification) {
	for _, l := range m.listeners.collect(a.name, n) {
		l.Notify(m, a, n)
	}
}

// AddAttribute registers a, replacing any attribute with the same name, and
// sends Added. It returns false without doing anything if a is nil, its name
// is empty (the name Wildcard stands for) or its name is reserved (see
// IsReservedName).
func (m *Manager) AddAttribute(a *Attr) bool {
	if a == nil {
		return false
	}
	if a.name == Wildcard || IsReservedName(a.name) {
		logger.Printf("refusing to register attribute with reserved name %q", a.name)
		return false
	}
	m.mu.Lock()
	if m.attrs == nil {
		m.attrs = make(map[string]*Attr)
	}
	m.attrs[a.name] = a
	m.mu.Unlock()

	m.send(a, Added)
	return true
}

// RemoveAttribute drops the named attribute and sends Removed. It returns
// false if there is no such attribute.
func (m *Manager) RemoveAttribute(name string) bool {
	m.mu.Lock()
	a, ok := m.attrs[name]
	if ok {
		delete(m.attrs, name)
	}
	m.mu.Unlock()

	if ok {
		m.send(a, Removed)
	}
	return ok
}

// RemoveAttr is like RemoveAttribute, but only removes the registered
// attribute if it is a itself.
func (m *Manager) RemoveAttr(a *Attr) bool {
	if a == nil {
		return false
	}
	m.mu.Lock()
	ok := m.attrs[a.name] == a
	if ok {
		delete(m.attrs, a.name)
	}
	m.mu.Unlock()

	if ok {
		m.send(a, Removed)
	}
	return ok
}

// SetAttributeValue sets the value of the named attribute from es. It returns
// false if there is no such attribute.
//
// A Disabled attribute is left untouched, but the call still returns true.
// Otherwise ValueChanged is sent if the value changed and the attribute does
// not have the Notifier bit.
func (m *Manager) SetAttributeValue(name string, es elems.Elems) bool {
	return m.mutateValue(name, func(a *Attr) bool {
		if a.Has(Disabled) {
			return false
		}
		return a.SetValue(es)
	})
}

// SetAttributeString is like SetAttributeValue, but parses the value from its
// textual form first. The error is non-nil only if s cannot be parsed.
func (m *Manager) SetAttributeString(name, s string) (bool, error) {
	es, err := elems.Parse(s)
	if err != nil {
		return false, err
	}
	return m.SetAttributeValue(name, es), nil
}

// SetAttributeDefaultValues applies es to the named attribute and records the
// result as its default snapshot. The Disabled bit does not apply.
func (m *Manager) SetAttributeDefaultValues(name string, es elems.Elems) bool {
	return m.mutateValue(name, func(a *Attr) bool { return a.SetDefault(es) })
}

// ResetAttribute restores the named attribute to its default snapshot.
func (m *Manager) ResetAttribute(name string) bool {
	return m.mutateValue(name, (*Attr).ResetToDefault)
}

// ResetAll restores every attribute, including invisible ones, to its default
// snapshot.
func (m *Manager) ResetAll() {
	m.mu.Lock()
	var changed []*Attr
	for _, a := range m.attrs {
		if a.ResetToDefault() && !a.Has(Notifier) {
			changed = append(changed, a)
		}
	}
	m.mu.Unlock()

	for _, a := range changed {
		m.send(a, ValueChanged)
	}
}

// mutateValue runs f on the named attribute under the registry lock. f reports
// whether the value changed.
func (m *Manager) mutateValue(name string, f func(*Attr) bool) bool {
	m.mu.Lock()
	a, ok := m.attrs[name]
	if !ok {
		m.mu.Unlock()
		return false
	}
	notify := f(a) && !a.Has(Notifier)
	m.mu.Unlock()

	if notify {
		m.send(a, ValueChanged)
	}
	return true
}

// GetAttributeValue returns the value of the named attribute. Invisible
// attributes are found too. The second return value is false if there is no
// such attribute.
func (m *Manager) GetAttributeValue(name string) (elems.Elems, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.attrs[name]
	if !ok {
		return nil, false
	}
	return a.Value(), true
}

// AttributeString returns the textual form of the value of the named
// attribute.
func (m *Manager) AttributeString(name string) (string, bool) {
	es, ok := m.GetAttributeValue(name)
	if !ok {
		return "", false
	}
	return es.String(), true
}

// FreezeAttribute freezes or unfreezes the named attribute.
func (m *Manager) FreezeAttribute(name string, on bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.attrs[name]
	if ok {
		a.Freeze(on)
	}
	return ok
}

// IsAttributeFrozen reports whether the named attribute exists and is frozen.
func (m *Manager) IsAttributeFrozen(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.attrs[name]
	return ok && a.IsFrozen()
}

// NumAttributes returns the number of visible attributes.
func (m *Manager) NumAttributes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, a := range m.attrs {
		if !a.Has(Invisible) {
			n++
		}
	}
	return n
}

// AttributeNames returns the names of visible attributes, sorted.
func (m *Manager) AttributeNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var names []string
	for name, a := range m.attrs {
		if !a.Has(Invisible) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// HasAttribute reports whether a visible attribute with the given name exists.
func (m *Manager) HasAttribute(name string) bool {
	return m.Attribute(name) != nil
}

// Attribute returns the named attribute, or nil if there is no such attribute
// or it is invisible. The returned Attr is shared with the manager; mutate it
// through the manager only.
func (m *Manager) Attribute(name string) *Attr {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.attrs[name]
	if !ok || a.Has(Invisible) {
		return nil
	}
	return a
}

// SetAttributeBehavior replaces the behavior mask of the named attribute and
// sends BehaviorChanged.
func (m *Manager) SetAttributeBehavior(name string, b Behavior) bool {
	return m.mutateBehavior(name, func(Behavior) Behavior { return b })
}

// SetAttributeInvisible sets or clears the Invisible bit.
func (m *Manager) SetAttributeInvisible(name string, on bool) bool {
	return m.mutateBehavior(name, func(b Behavior) Behavior { return b.with(Invisible, on) })
}

// SetAttributeDisabled sets or clears the Disabled bit.
func (m *Manager) SetAttributeDisabled(name string, on bool) bool {
	return m.mutateBehavior(name, func(b Behavior) Behavior { return b.with(Disabled, on) })
}

// SetAttributeSaved clears the Unsaved bit when saved is true and sets it
// otherwise.
func (m *Manager) SetAttributeSaved(name string, saved bool) bool {
	return m.mutateBehavior(name, func(b Behavior) Behavior { return b.with(Unsaved, !saved) })
}

// SetAttributeNotifier sets or clears the Notifier bit. Setting it suppresses
// ValueChanged notifications.
func (m *Manager) SetAttributeNotifier(name string, on bool) bool {
	return m.mutateBehavior(name, func(b Behavior) Behavior { return b.with(Notifier, on) })
}

func (m *Manager) mutateBehavior(name string, f func(Behavior) Behavior) bool {
	m.mu.Lock()
	a, ok := m.attrs[name]
	if ok {
		a.updateBehavior(f)
	}
	m.mu.Unlock()

	if ok {
		m.send(a, BehaviorChanged)
	}
	return ok
}

// Write stores every attribute, including invisible ones, into d. Attributes
// are written in name order. d is called without the registry lock held.
func (m *Manager) Write(d Dico) {
	for _, a := range m.sorted(byName) {
		a.Write(d)
	}
}

// Read loads every attribute, including invisible ones, from d. ValueChanged
// is sent for each attribute whose value changed, unless it has the Notifier
// bit. d is called without the registry lock held.
func (m *Manager) Read(d Dico) {
	var changed []*Attr
	for _, a := range m.sorted(byName) {
		if a.Read(d) && !a.Has(Notifier) {
			changed = append(changed, a)
		}
	}
	for _, a := range changed {
		m.send(a, ValueChanged)
	}
}

// NumListeners returns the number of listeners with at least one live
// subscription.
func (m *Manager) NumListeners() int { return m.listeners.len() }

// Close drops all attributes and subscriptions. No notification is sent. The
// manager remains usable afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	m.attrs = nil
	m.mu.Unlock()
	m.listeners.reset()
}

func byName(a, b *Attr) int { return strings.Compare(a.name, b.name) }

func (m *Manager) sorted(order func(a, b *Attr) int) []*Attr {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sortedLocked(order)
}

func (m *Manager) sortedLocked(order func(a, b *Attr) int) []*Attr {
	as := make([]*Attr, 0, len(m.attrs))
	for _, a := range m.attrs {
		as = append(as, a)
	}
	slices.SortFunc(as, order)
	return as
}
