package attr

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.attrkit.dev/pkg/dico"
	"src.attrkit.dev/pkg/elems"
)

func dump(d *dico.Map) map[string]string {
	out := make(map[string]string)
	for _, name := range d.Names() {
		out[name] = d.Get(name).String()
	}
	return out
}

func TestNew(t *testing.T) {
	a := New("count", NewInt(3), Meta{Category: "General", Order: -5})
	if a.Name() != "count" || a.Label() != "count" || a.Category() != "General" || a.Order() != 0 {
		t.Errorf("unexpected metadata: %q %q %q %d", a.Name(), a.Label(), a.Category(), a.Order())
	}
	if a.Kind() != "int" {
		t.Errorf("Kind -> %q", a.Kind())
	}
	if got := a.Default().String(); got != "3" {
		t.Errorf("Default -> %q, want 3", got)
	}
	if a.IsFrozen() || a.FrozenValue() != nil {
		t.Errorf("new attribute should not be frozen")
	}
}

func TestAttr_SetValue(t *testing.T) {
	a := New("pos", NewPoint(0, 0), Meta{})
	if !a.SetValue(elems.Of(1, 2)) {
		t.Errorf("SetValue should report a change")
	}
	if a.SetValue(elems.Of(1, 2)) {
		t.Errorf("SetValue with the same value should not report a change")
	}
	if a.SetValue(elems.Of("x")) {
		t.Errorf("SetValue with a symbol should not change a point")
	}
	if got := a.String(); got != "1 2" {
		t.Errorf("String -> %q", got)
	}

	changed, err := a.SetString("7 8")
	if err != nil || !changed || a.String() != "7 8" {
		t.Errorf("SetString -> %v, %v; value %q", changed, err, a.String())
	}
	if _, err := a.SetString(`"open`); err == nil {
		t.Errorf("SetString of malformed input should fail")
	}

	typed := a.Typed().(*Point)
	typed.X = 100
	if a.String() != "7 8" {
		t.Errorf("Typed should return a copy")
	}
}

func TestAttr_Defaults(t *testing.T) {
	a := New("n", NewInt(1), Meta{})
	a.SetValue(elems.Of(9))
	if !a.ResetToDefault() || a.String() != "1" {
		t.Errorf("ResetToDefault -> value %q", a.String())
	}
	if !a.SetDefault(elems.Of(4)) || a.String() != "4" || a.Default().String() != "4" {
		t.Errorf("SetDefault -> value %q default %q", a.String(), a.Default().String())
	}
	a.SetValue(elems.Of(0))
	a.ResetToDefault()
	if a.String() != "4" {
		t.Errorf("reset after SetDefault -> %q", a.String())
	}
}

func TestAttr_Freeze(t *testing.T) {
	a := New("n", NewInt(1), Meta{})
	a.SetValue(elems.Of(5))
	a.Freeze(true)
	a.SetValue(elems.Of(6))
	if !a.IsFrozen() || a.FrozenValue().String() != "5" {
		t.Errorf("frozen snapshot -> %v", a.FrozenValue())
	}
	a.Freeze(false)
	if a.IsFrozen() {
		t.Errorf("Freeze(false) should drop the snapshot")
	}
}

func TestAttr_Write(t *testing.T) {
	tests := []struct {
		name  string
		setup func(a *Attr)
		want  map[string]string
	}{
		{"default value is skipped", func(a *Attr) {}, map[string]string{}},
		{"changed value is written", func(a *Attr) { a.SetValue(elems.Of(7)) },
			map[string]string{"count": "7"}},
		{"unsaved is skipped", func(a *Attr) {
			a.SetValue(elems.Of(7))
			a.SetBehavior(Unsaved)
		}, map[string]string{}},
		{"frozen writes snapshot and marker", func(a *Attr) {
			a.SetValue(elems.Of(5))
			a.Freeze(true)
			a.SetValue(elems.Of(6))
		}, map[string]string{"count": "5", FrozenKey: "count"}},
		{"frozen default is written", func(a *Attr) { a.Freeze(true) },
			map[string]string{"count": "0", FrozenKey: "count"}},
		{"frozen unsaved is written", func(a *Attr) {
			a.SetBehavior(Unsaved)
			a.Freeze(true)
		}, map[string]string{"count": "0", FrozenKey: "count"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a := New("count", NewInt(0), Meta{})
			test.setup(a)
			d := dico.NewMap()
			a.Write(d)
			if diff := cmp.Diff(test.want, dump(d)); diff != "" {
				t.Errorf("written (-want +got):\n%s", diff)
			}
		})
	}
}

// Only the length and elements of the element form are compared against the
// default, never the typed value.
func TestAttr_Write_ComparesElementForm(t *testing.T) {
	a := New("c", NewColor(0, 0, 0, 1), Meta{})
	a.SetValue(elems.Of(0, 0, 0, 1))
	d := dico.NewMap()
	a.Write(d)
	if d.Len() != 0 {
		t.Errorf("value equal to default was written: %v", dump(d))
	}
	a.SetValue(elems.Of(0, 0, 0, 0.5))
	a.Write(d)
	if got := d.Get("c").String(); got != "0 0 0 0.5" {
		t.Errorf("written -> %q", got)
	}
}

func TestAttr_Read(t *testing.T) {
	d := dico.NewMap()
	d.Set("count", elems.Of(8))
	a := New("count", NewInt(0), Meta{})
	if !a.Read(d) || a.String() != "8" || a.IsFrozen() {
		t.Errorf("Read -> value %q frozen %v", a.String(), a.IsFrozen())
	}
	if a.Read(d) {
		t.Errorf("reading the same value should not report a change")
	}

	missing := New("other", NewInt(3), Meta{})
	if missing.Read(d) || missing.String() != "3" {
		t.Errorf("Read of absent entry changed the value to %q", missing.String())
	}

	d.Set("other", nil)
	if missing.Read(d) || missing.String() != "3" {
		t.Errorf("Read of empty entry changed the value to %q", missing.String())
	}
}

func TestAttr_RoundTrip(t *testing.T) {
	src := New("count", NewInt(0), Meta{})
	src.SetValue(elems.Of(42))
	d := dico.NewMap()
	src.Write(d)

	dst := New("count", NewInt(0), Meta{})
	dst.Read(d)
	if !dst.Value().Equal(src.Value()) {
		t.Errorf("round trip -> %v, want %v", dst.Value(), src.Value())
	}
}

func TestAttr_RoundTrip_Frozen(t *testing.T) {
	src := New("count", NewInt(0), Meta{})
	src.SetValue(elems.Of(5))
	src.Freeze(true)
	src.SetValue(elems.Of(6))
	d := dico.NewMap()
	src.Write(d)

	dst := New("count", NewInt(0), Meta{})
	dst.Read(d)
	if !dst.IsFrozen() || dst.String() != "5" || dst.FrozenValue().String() != "5" {
		t.Errorf("frozen round trip -> value %q frozen %v", dst.String(), dst.IsFrozen())
	}
}

func TestIsReservedName(t *testing.T) {
	if !IsReservedName(FrozenKey) || IsReservedName("count") {
		t.Errorf("IsReservedName misclassifies names")
	}
}

func TestBehaviorString(t *testing.T) {
	tests := map[Behavior]string{
		0:                   "default",
		Invisible:           "invisible",
		Disabled | Notifier: "disabled|notifier",
		Invisible | Unsaved: "invisible|unsaved",
	}
	for b, want := range tests {
		if got := b.String(); got != want {
			t.Errorf("Behavior(%d).String() -> %q, want %q", b, got, want)
		}
	}
	if b := Invisible.with(Unsaved, true).with(Invisible, false); b != Unsaved {
		t.Errorf("with -> %v, want unsaved", b)
	}
}

func TestNotificationString(t *testing.T) {
	if got := Anything.String(); got != "added|removed|value-changed|behavior-changed" {
		t.Errorf("Anything.String() -> %q", got)
	}
	if got := Notification(0).String(); got != "none" {
		t.Errorf("Notification(0).String() -> %q", got)
	}
}
