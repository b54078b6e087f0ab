package elems

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var elemCmpOpt = cmp.Comparer(func(a, b Elem) bool { return a == b })

func TestElem(t *testing.T) {
	if f, ok := Num(2.5).Float(); !ok || f != 2.5 {
		t.Errorf("Num(2.5).Float() -> %v, %v", f, ok)
	}
	if _, ok := Num(1).Symbol(); ok {
		t.Errorf("Num(1).Symbol() reported a symbol")
	}
	if s, ok := Sym("left").Symbol(); !ok || s != "left" {
		t.Errorf("Sym(left).Symbol() -> %q, %v", s, ok)
	}
	if _, ok := Sym("left").Float(); ok {
		t.Errorf("Sym(left).Float() reported a number")
	}
	if Sym("a") != Sym("a") {
		t.Errorf("interned symbols should compare equal")
	}
	if Sym("1") == Num(1) {
		t.Errorf("symbol 1 and number 1 should differ")
	}
	var zero Elem
	if zero != Num(0) {
		t.Errorf("zero Elem should be the number 0")
	}
}

func TestElemsEqual(t *testing.T) {
	tests := []struct {
		a, b Elems
		want bool
	}{
		{nil, nil, true},
		{nil, Elems{}, true},
		{Of(1, 2), Of(1, 2), true},
		{Of(1, 2), Of(1, 2, 3), false},
		{Of(1, "x"), Of(1, "x"), true},
		{Of(1, "x"), Of(1, "y"), false},
		{Of("1"), Of(1), false},
		{Of(math.NaN()), Of(math.NaN()), true},
		{Of(math.NaN()), Of(0), false},
		{Of("NaN"), Of(math.NaN()), false},
	}
	for _, test := range tests {
		if got := test.a.Equal(test.b); got != test.want {
			t.Errorf("%v.Equal(%v) -> %v, want %v", test.a, test.b, got, test.want)
		}
	}
}

func TestOf(t *testing.T) {
	got := Of(1, 2.5, "sym", true, false, struct{}{}, Sym("x"))
	want := Elems{Num(1), Num(2.5), Sym("sym"), Num(1), Num(0), Sym("x")}
	if diff := cmp.Diff(want, got, elemCmpOpt); diff != "" {
		t.Errorf("Of (-want +got):\n%s", diff)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		es   Elems
		want string
	}{
		{nil, ""},
		{Of(5), "5"},
		{Of(0.25, -3), "0.25 -3"},
		{Of("left", 1), "left 1"},
		{Of("12"), `"12"`},
		{Of("two words"), `"two words"`},
		{Of(""), `""`},
		{Of(`a"b`), `"a\"b"`},
	}
	for _, test := range tests {
		if got := test.es.String(); got != test.want {
			t.Errorf("%#v.String() -> %q, want %q", test.es, got, test.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Elems
	}{
		{"", nil},
		{"   ", nil},
		{"5", Of(5)},
		{" 1  2\t3 ", Of(1, 2, 3)},
		{"left 0.5", Of("left", 0.5)},
		{`"12" 12`, Of("12", 12)},
		{`"two words"`, Of("two words")},
		{`""`, Of("")},
		{"1e3", Of(1000)},
	}
	for _, test := range tests {
		got, err := Parse(test.in)
		if err != nil {
			t.Errorf("Parse(%q) -> error %v", test.in, err)
			continue
		}
		if diff := cmp.Diff(test.want, got, elemCmpOpt); diff != "" {
			t.Errorf("Parse(%q) (-want +got):\n%s", test.in, diff)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{`"open`, `"a"b`, `1 "x`} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) -> no error, want error", in)
		}
	}
}

func TestParse_RoundTrip(t *testing.T) {
	for _, es := range []Elems{
		Of(1, 2, 3, 4),
		Of("Inf", "NaN", "-1"),
		Of("with space", "tab\there", `back\slash`),
		Of(1e21, -0.0001),
	} {
		got, err := Parse(es.String())
		if err != nil {
			t.Errorf("Parse(%q) -> error %v", es.String(), err)
			continue
		}
		if !got.Equal(es) {
			t.Errorf("round trip of %q -> %v", es.String(), got)
		}
	}
}
