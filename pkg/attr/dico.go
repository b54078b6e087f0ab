package attr

import (
	"strings"

	"src.attrkit.dev/pkg/elems"
)

// Dico is the generic key/value container attributes are persisted to. Get
// returns an empty sequence for absent names.
type Dico interface {
	Get(name string) elems.Elems
	Set(name string, es elems.Elems)
	Append(name string, e elems.Elem)
}

// ReservedPrefix starts every name reserved for bookkeeping entries inside a
// Dico. Managers refuse to register attributes whose names start with it.
const ReservedPrefix = "@"

// FrozenKey is the Dico entry listing the names of attributes that were frozen
// when written, as symbols.
const FrozenKey = ReservedPrefix + "frozen"

// IsReservedName reports whether name is reserved for bookkeeping entries.
func IsReservedName(name string) bool { return strings.HasPrefix(name, ReservedPrefix) }

// Write stores the attribute in d.
//
// A frozen attribute always writes its frozen snapshot and adds its name to the
// FrozenKey entry. Otherwise nothing is written when the Unsaved bit is set, or
// when the current value has the same length as the default and equals it
// element by element.
func (a *Attr) Write(d Dico) {
	es, frozen, ok := a.snapshotForWrite()
	if !ok {
		return
	}
	d.Set(a.name, es)
	if frozen {
		d.Append(FrozenKey, elems.Sym(a.name))
	}
}

func (a *Attr) snapshotForWrite() (es elems.Elems, frozen, ok bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.frozen != nil {
		return a.frozen.Clone(), true, true
	}
	if a.behavior&Unsaved != 0 {
		return nil, false, false
	}
	cur := a.value.Elems()
	if cur.Equal(a.def) {
		return nil, false, false
	}
	return cur, false, true
}

// Read loads the attribute from d and reports whether its value changed. An
// absent or empty entry leaves the value alone. If the name is listed under
// FrozenKey, the attribute is frozen at the value just read.
func (a *Attr) Read(d Dico) bool {
	es := d.Get(a.name)
	frozen := false
	self := elems.Sym(a.name)
	for _, e := range d.Get(FrozenKey) {
		if e == self {
			frozen = true
			break
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	changed := false
	if len(es) > 0 {
		changed = a.setValueLocked(es)
	}
	if frozen {
		a.frozen = a.value.Elems()
	}
	return changed
}
