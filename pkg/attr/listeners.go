package attr

import (
	"sync"
	"weak"
)

// Wildcard is the attribute name that subscribes to every attribute.
const Wildcard = ""

// Bind subscribes l to the kinds in mask for the named attribute, or for every
// attribute when name is Wildcard. Repeated calls for the same listener and
// name accumulate. A nil listener is ignored.
//
// A listener with both a subscription for a name and a Wildcard subscription
// is notified when either mask includes the kind; the exact-name mask does
// not shadow the wildcard one. Either way it is notified at most once per
// change.
//
// The manager only keeps a weak reference to l: once l is otherwise
// unreachable, it is dropped from the registry without an explicit Unbind. The
// caller must therefore keep l alive for as long as it wants notifications.
func Bind[T any, L interface {
	*T
	Listener
}](m *Manager, l L, name string, mask Notification) {
	p := (*T)(l)
	if m == nil || p == nil {
		return
	}
	wp := weak.Make(p)
	m.listeners.bind(wp, resolver[T, L](wp), name, mask)
}

// Unbind removes interest previously added with Bind.
//
// With name set to Wildcard and mask set to Anything, every subscription of l
// is dropped. With name set to Wildcard and a narrower mask, the kinds in mask
// are cleared from all of l's subscriptions. Otherwise the kinds are cleared
// from the subscription for name only. Subscriptions left empty are removed.
func Unbind[T any, L interface {
	*T
	Listener
}](m *Manager, l L, name string, mask Notification) {
	p := (*T)(l)
	if m == nil || p == nil {
		return
	}
	m.listeners.unbind(weak.Make(p), name, mask)
}

func resolver[T any, L interface {
	*T
	Listener
}](wp weak.Pointer[T]) func() Listener {
	return func() Listener {
		if p := wp.Value(); p != nil {
			return L(p)
		}
		return nil
	}
}

type listenerEntry struct {
	// Returns nil once the listener has been garbage-collected.
	resolve  func() Listener
	interest map[string]Notification
}

// listeners is the weak listener registry of a Manager. Keys are
// weak.Pointer values, which stay comparable after their target is collected.
type listeners struct {
	mu      sync.Mutex
	entries map[any]*listenerEntry
}

func (ls *listeners) bind(key any, resolve func() Listener, name string, mask Notification) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.pruneLocked()
	if mask == 0 {
		return
	}
	if ls.entries == nil {
		ls.entries = make(map[any]*listenerEntry)
	}
	e, ok := ls.entries[key]
	if !ok {
		e = &listenerEntry{resolve: resolve, interest: make(map[string]Notification)}
		ls.entries[key] = e
	}
	e.interest[name] |= mask
}

func (ls *listeners) unbind(key any, name string, mask Notification) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.pruneLocked()
	e, ok := ls.entries[key]
	if !ok {
		return
	}
	switch {
	case name == Wildcard && mask&Anything == Anything:
		clear(e.interest)
	case name == Wildcard:
		for n, m := range e.interest {
			if m &^= mask; m == 0 {
				delete(e.interest, n)
			} else {
				e.interest[n] = m
			}
		}
	default:
		if m, ok := e.interest[name]; ok {
			if m &^= mask; m == 0 {
				delete(e.interest, name)
			} else {
				e.interest[name] = m
			}
		}
	}
	if len(e.interest) == 0 {
		delete(ls.entries, key)
	}
}

// collect returns the live listeners interested in kind n for the named
// attribute, pruning expired entries on the way. A listener is interested when
// its subscription for the name or its wildcard subscription includes n; it
// appears at most once either way.
func (ls *listeners) collect(name string, n Notification) []Listener {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	var out []Listener
	for key, e := range ls.entries {
		l := e.resolve()
		if l == nil {
			delete(ls.entries, key)
			continue
		}
		if (e.interest[name]|e.interest[Wildcard])&n != 0 {
			out = append(out, l)
		}
	}
	return out
}

func (ls *listeners) pruneLocked() {
	pruned := 0
	for key, e := range ls.entries {
		if e.resolve() == nil {
			delete(ls.entries, key)
			pruned++
		}
	}
	if pruned > 0 {
		logger.Printf("pruned %d expired listeners", pruned)
	}
}

func (ls *listeners) len() int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.pruneLocked()
	return len(ls.entries)
}

func (ls *listeners) reset() {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.entries = nil
}
