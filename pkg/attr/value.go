package attr

import (
	"math"

	"src.attrkit.dev/pkg/elems"
)

// Value is the typed value held by an attribute. The set of implementations is
// closed: Bool, Int, Real, Sym, Enum, Color, Point, Size and Rect.
//
// Elems returns the value as an element sequence. The unexported scan method
// updates the value from an element sequence, position by position: a missing
// position, or an element of the wrong kind at a position, leaves the
// corresponding field unchanged.
type Value interface {
	Kind() string
	Elems() elems.Elems
	scan(es elems.Elems)
	clone() Value
}

var (
	_ Value = (*Bool)(nil)
	_ Value = (*Int)(nil)
	_ Value = (*Real)(nil)
	_ Value = (*Sym)(nil)
	_ Value = (*Enum)(nil)
	_ Value = (*Color)(nil)
	_ Value = (*Point)(nil)
	_ Value = (*Size)(nil)
	_ Value = (*Rect)(nil)
)

// scanFloat stores the number at position i of es into dst, if there is one.
func scanFloat(es elems.Elems, i int, dst *float64) {
	if f, ok := es.Float(i); ok {
		*dst = f
	}
}

// Bool is a boolean value. Any nonzero number reads as true.
type Bool struct{ V bool }

// NewBool returns a new Bool.
func NewBool(v bool) *Bool { return &Bool{v} }

func (b *Bool) Kind() string       { return "bool" }
func (b *Bool) Elems() elems.Elems { return elems.Elems{elems.Bool(b.V)} }
func (b *Bool) clone() Value       { c := *b; return &c }

func (b *Bool) scan(es elems.Elems) {
	if f, ok := es.Float(0); ok {
		b.V = f != 0
	}
}

// Int is an integer value. Fractional numbers are truncated toward zero.
type Int struct{ V int }

// NewInt returns a new Int.
func NewInt(v int) *Int { return &Int{v} }

func (i *Int) Kind() string       { return "int" }
func (i *Int) Elems() elems.Elems { return elems.Elems{elems.Int(i.V)} }
func (i *Int) clone() Value       { c := *i; return &c }

func (i *Int) scan(es elems.Elems) {
	f, ok := es.Float(0)
	if !ok || math.IsNaN(f) {
		return
	}
	switch {
	case f >= math.MaxInt:
		i.V = math.MaxInt
	case f <= math.MinInt:
		i.V = math.MinInt
	default:
		i.V = int(f)
	}
}

// Real is a floating-point value.
type Real struct{ V float64 }

// NewReal returns a new Real.
func NewReal(v float64) *Real { return &Real{v} }

func (r *Real) Kind() string        { return "real" }
func (r *Real) Elems() elems.Elems  { return elems.Elems{elems.Num(r.V)} }
func (r *Real) clone() Value        { c := *r; return &c }
func (r *Real) scan(es elems.Elems) { scanFloat(es, 0, &r.V) }

// Sym is a free-form symbol value. Numbers are ignored when scanning.
type Sym struct{ V string }

// NewSym returns a new Sym.
func NewSym(v string) *Sym { return &Sym{v} }

func (s *Sym) Kind() string       { return "symbol" }
func (s *Sym) Elems() elems.Elems { return elems.Elems{elems.Sym(s.V)} }
func (s *Sym) clone() Value       { c := *s; return &c }

func (s *Sym) scan(es elems.Elems) {
	if v, ok := es.Symbol(0); ok {
		s.V = v
	}
}

// Enum is a choice among a fixed table of symbols. It is encoded as the
// selected symbol, and can be set either from a symbol or from a numeric index.
type Enum struct {
	names []string
	index int
}

// NewEnum returns an Enum over names with the given initial index. The index
// is clamped to the table. NewEnum panics if names is empty.
func NewEnum(names []string, index int) *Enum {
	if len(names) == 0 {
		panic("attr: NewEnum with no names")
	}
	e := &Enum{names: append([]string(nil), names...)}
	e.setIndex(index)
	return e
}

// Index returns the index of the selected symbol.
func (e *Enum) Index() int { return e.index }

// Name returns the selected symbol.
func (e *Enum) Name() string { return e.names[e.index] }

// Names returns a copy of the symbol table.
func (e *Enum) Names() []string { return append([]string(nil), e.names...) }

func (e *Enum) Kind() string       { return "enum" }
func (e *Enum) Elems() elems.Elems { return elems.Elems{elems.Sym(e.Name())} }

// The symbol table is immutable, so clones share it.
func (e *Enum) clone() Value { c := *e; return &c }

func (e *Enum) scan(es elems.Elems) {
	if len(es) == 0 {
		return
	}
	if f, ok := es[0].Float(); ok {
		if !math.IsNaN(f) {
			e.setIndex(clampIndex(f, len(e.names)))
		}
		return
	}
	s, _ := es[0].Symbol()
	for i, name := range e.names {
		if name == s {
			e.index = i
			return
		}
	}
}

func (e *Enum) setIndex(i int) {
	e.index = max(0, min(i, len(e.names)-1))
}

func clampIndex(f float64, n int) int {
	switch {
	case f <= 0:
		return 0
	case f >= float64(n-1):
		return n - 1
	default:
		return int(f)
	}
}
