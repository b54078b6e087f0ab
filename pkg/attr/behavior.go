package attr

import "strings"

// Behavior is a set of flags that gate how an attribute is discovered, mutated,
// persisted and observed. The zero Behavior is visible, enabled, saved and
// notifying.
type Behavior uint8

const (
	// Invisible hides the attribute from discovery: name listings, counts,
	// category queries and Manager.Attribute. Exact-name value access and
	// serialization are unaffected.
	Invisible Behavior = 1 << iota
	// Disabled makes Manager.SetAttributeValue a silent no-op. Setting the
	// value on the Attr directly still works.
	Disabled
	// Unsaved excludes the attribute from serialization unless it is frozen.
	Unsaved
	// Notifier suppresses ValueChanged notifications for the attribute.
	Notifier
)

var behaviorNames = []struct {
	b    Behavior
	name string
}{
	{Invisible, "invisible"},
	{Disabled, "disabled"},
	{Unsaved, "unsaved"},
	{Notifier, "notifier"},
}

func (b Behavior) String() string {
	if b == 0 {
		return "default"
	}
	var parts []string
	for _, bn := range behaviorNames {
		if b&bn.b != 0 {
			parts = append(parts, bn.name)
		}
	}
	return strings.Join(parts, "|")
}

func (b Behavior) with(bit Behavior, on bool) Behavior {
	if on {
		return b | bit
	}
	return b &^ bit
}
