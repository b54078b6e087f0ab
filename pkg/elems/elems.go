// Package elems implements scalar elements and element sequences, the generic
// exchange format attributes use outside of their typed accessors.
//
// An element is either a number or a symbol. Symbols are interned, so
// comparing two elements is a constant-time operation regardless of the
// length of the symbol.
package elems

import (
	"strconv"
	"strings"
	"unique"
)

// Elem is a scalar element. The zero value is the number 0.
type Elem struct {
	sym   unique.Handle[string]
	num   float64
	isSym bool
}

// Num returns a numeric element.
func Num(f float64) Elem { return Elem{num: f} }

// Int returns a numeric element holding an integer.
func Int(i int) Elem { return Elem{num: float64(i)} }

// Sym returns a symbolic element.
func Sym(s string) Elem { return Elem{sym: unique.Make(s), isSym: true} }

// Bool returns the numeric element 1 for true and 0 for false.
func Bool(b bool) Elem {
	if b {
		return Num(1)
	}
	return Num(0)
}

// IsSym reports whether e is a symbol.
func (e Elem) IsSym() bool { return e.isSym }

// IsNum reports whether e is a number.
func (e Elem) IsNum() bool { return !e.isSym }

// Float returns the number held by e. The second return value is false when e
// is a symbol.
func (e Elem) Float() (float64, bool) {
	if e.isSym {
		return 0, false
	}
	return e.num, true
}

// Symbol returns the symbol held by e. The second return value is false when
// e is a number.
func (e Elem) Symbol() (string, bool) {
	if !e.isSym {
		return "", false
	}
	return e.sym.Value(), true
}

// String returns the textual form of a single element. Symbols that could be
// read back as something else are quoted.
func (e Elem) String() string {
	if !e.isSym {
		return strconv.FormatFloat(e.num, 'g', -1, 64)
	}
	s := e.sym.Value()
	if needsQuote(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuote(s string) bool {
	if s == "" {
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	return strings.ContainsAny(s, " \t\n\r\"'\\")
}

// Elems is an ordered sequence of elements.
type Elems []Elem

// Of builds an element sequence from Go values. Integers and floats become
// numbers, strings become symbols, booleans become 0 or 1. Values of other
// types are skipped.
func Of(vs ...any) Elems {
	es := make(Elems, 0, len(vs))
	for _, v := range vs {
		switch v := v.(type) {
		case Elem:
			es = append(es, v)
		case int:
			es = append(es, Int(v))
		case int64:
			es = append(es, Num(float64(v)))
		case float64:
			es = append(es, Num(v))
		case float32:
			es = append(es, Num(float64(v)))
		case string:
			es = append(es, Sym(v))
		case bool:
			es = append(es, Bool(v))
		}
	}
	return es
}

// Equal reports whether es and other have the same length and are equal
// element by element. Two NaNs are considered equal.
func (es Elems) Equal(other Elems) bool {
	if len(es) != len(other) {
		return false
	}
	for i := range es {
		if !es[i].same(other[i]) {
			return false
		}
	}
	return true
}

func (e Elem) same(other Elem) bool {
	if e == other {
		return true
	}
	return !e.isSym && !other.isSym && e.num != e.num && other.num != other.num
}

// Clone returns a copy of es. Cloning a nil sequence returns nil.
func (es Elems) Clone() Elems {
	if es == nil {
		return nil
	}
	return append(Elems(nil), es...)
}

// Float returns the number at position i, if there is one.
func (es Elems) Float(i int) (float64, bool) {
	if i < 0 || i >= len(es) {
		return 0, false
	}
	return es[i].Float()
}

// Symbol returns the symbol at position i, if there is one.
func (es Elems) Symbol(i int) (string, bool) {
	if i < 0 || i >= len(es) {
		return "", false
	}
	return es[i].Symbol()
}

// String returns the textual form of es: the elements separated by single
// spaces. The result can be read back with Parse.
func (es Elems) String() string {
	var sb strings.Builder
	for i, e := range es {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(e.String())
	}
	return sb.String()
}
