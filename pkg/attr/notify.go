package attr

import "strings"

// Notification is a set of notification kinds. Listeners subscribe with a mask
// and receive one kind at a time.
type Notification uint8

const (
	// Added is sent after an attribute has been registered.
	Added Notification = 1 << iota
	// Removed is sent after an attribute has been dropped from the registry.
	Removed
	// ValueChanged is sent after the value of an attribute has changed through
	// the manager.
	ValueChanged
	// BehaviorChanged is sent after a behavior setter has run.
	BehaviorChanged

	// Anything covers every kind.
	Anything = Added | Removed | ValueChanged | BehaviorChanged
)

func (n Notification) String() string {
	var parts []string
	for _, kn := range []struct {
		n    Notification
		name string
	}{
		{Added, "added"},
		{Removed, "removed"},
		{ValueChanged, "value-changed"},
		{BehaviorChanged, "behavior-changed"},
	} {
		if n&kn.n != 0 {
			parts = append(parts, kn.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Listener receives notifications from a Manager. Notify is called
// synchronously on the goroutine that caused the change, with no manager lock
// held, so it may call back into the manager.
type Listener interface {
	Notify(m *Manager, a *Attr, n Notification)
}

// ListenerFunc adapts a function to the Listener interface. Since the manager
// only holds listeners weakly, bind a pointer to a ListenerFunc and keep that
// pointer alive for as long as notifications are wanted.
type ListenerFunc func(m *Manager, a *Attr, n Notification)

func (f *ListenerFunc) Notify(m *Manager, a *Attr, n Notification) { (*f)(m, a, n) }
