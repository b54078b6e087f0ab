package dico

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"src.attrkit.dev/pkg/elems"
)

// The YAML form of a Map is a mapping from names to sequences of scalars, in
// name order. Numbers are YAML numbers and symbols are YAML strings. When
// decoding, a lone scalar is accepted in place of a one-element sequence, and
// booleans are read as 0 or 1.

// MarshalYAML implements yaml.Marshaler.
func (m *Map) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range m.Names() {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, e := range m.Get(name) {
			seq.Content = append(seq.Content, elemNode(e))
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}, seq)
	}
	return root, nil
}

func elemNode(e elems.Elem) *yaml.Node {
	if s, ok := e.Symbol(); ok {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	}
	f, _ := e.Float()
	switch {
	case math.IsNaN(f):
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: ".nan"}
	case math.IsInf(f, 1):
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: ".inf"}
	case math.IsInf(f, -1):
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: "-.inf"}
	case f == math.Trunc(f) && math.Abs(f) < 1e15:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(int64(f), 10)}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(f, 'g', -1, 64)}
	}
}

// UnmarshalYAML implements yaml.Unmarshaler. Decoded entries are added to m,
// replacing entries with the same names.
func (m *Map) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: dico must be a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: entry name must be a scalar", k.Line)
		}
		var es elems.Elems
		switch v.Kind {
		case yaml.SequenceNode:
			for _, c := range v.Content {
				e, ok, err := nodeElem(c)
				if err != nil {
					return err
				}
				if ok {
					es = append(es, e)
				}
			}
		case yaml.ScalarNode:
			e, ok, err := nodeElem(v)
			if err != nil {
				return err
			}
			if ok {
				es = elems.Elems{e}
			}
		default:
			return fmt.Errorf("line %d: value of %q must be a scalar or a sequence", v.Line, k.Value)
		}
		m.Set(k.Value, es)
	}
	return nil
}

// nodeElem converts a scalar node. Null scalars are skipped.
func nodeElem(n *yaml.Node) (elems.Elem, bool, error) {
	if n.Kind != yaml.ScalarNode {
		return elems.Elem{}, false, fmt.Errorf("line %d: element must be a scalar", n.Line)
	}
	switch n.ShortTag() {
	case "!!str":
		return elems.Sym(n.Value), true, nil
	case "!!null":
		return elems.Elem{}, false, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return elems.Elem{}, false, err
		}
		return elems.Bool(b), true, nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return elems.Elem{}, false, err
		}
		return elems.Num(f), true, nil
	default:
		return elems.Elem{}, false, fmt.Errorf("line %d: unsupported scalar tag %s", n.Line, n.ShortTag())
	}
}

// Encode writes the YAML form of m to w.
func Encode(w io.Writer, m *Map) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode dico: %w", err)
	}
	return enc.Close()
}

// Decode reads a Map in YAML form from r. An empty input yields an empty Map.
func Decode(r io.Reader) (*Map, error) {
	m := NewMap()
	err := yaml.NewDecoder(r).Decode(m)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode dico: %w", err)
	}
	return m, nil
}
