package elems

import (
	"fmt"
	"strconv"
)

// ParseError is returned by Parse when the input contains a malformed quoted
// symbol.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse elements: %s at offset %d", e.Msg, e.Pos)
}

// Parse reads the textual form produced by Elems.String. Words that parse as
// floating-point numbers become numbers; all other bare words become symbols.
// Double-quoted words are always symbols and use Go string escapes.
func Parse(s string) (Elems, error) {
	var es Elems
	i := 0
	for {
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i == len(s) {
			return es, nil
		}
		if s[i] == '"' {
			q, err := strconv.QuotedPrefix(s[i:])
			if err != nil {
				return nil, &ParseError{i, "unterminated or malformed quoted symbol"}
			}
			unq, err := strconv.Unquote(q)
			if err != nil {
				return nil, &ParseError{i, err.Error()}
			}
			es = append(es, Sym(unq))
			i += len(q)
			if i < len(s) && !isSpace(s[i]) {
				return nil, &ParseError{i, "missing space after quoted symbol"}
			}
			continue
		}
		j := i
		for j < len(s) && !isSpace(s[j]) {
			j++
		}
		es = append(es, parseWord(s[i:j]))
		i = j
	}
}

func parseWord(w string) Elem {
	if f, err := strconv.ParseFloat(w, 64); err == nil {
		return Num(f)
	}
	return Sym(w)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
