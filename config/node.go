package config

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// RawNode wraps one node of the decoded document together with the
// dotted path from the document root. Positions come straight from the
// underlying yaml node, so diagnostics can point at the exact source
// location even after the tree has been reshaped.
type RawNode struct {
	Path string
	yn   *yaml.Node
}

func wrap(yn *yaml.Node, path string) *RawNode {
	for yn.Kind == yaml.AliasNode && yn.Alias != nil {
		yn = yn.Alias
	}
	return &RawNode{Path: path, yn: yn}
}

func (n *RawNode) Line() int   { return n.yn.Line }
func (n *RawNode) Column() int { return n.yn.Column }

func (n *RawNode) IsMapping() bool  { return n.yn.Kind == yaml.MappingNode }
func (n *RawNode) IsSequence() bool { return n.yn.Kind == yaml.SequenceNode }
func (n *RawNode) IsScalar() bool   { return n.yn.Kind == yaml.ScalarNode }
func (n *RawNode) IsNull() bool     { return n.yn.Kind == yaml.ScalarNode && n.yn.Tag == "!!null" }

func (n *RawNode) child(seg string, yn *yaml.Node) *RawNode {
	if n.Path == "" {
		return wrap(yn, seg)
	}
	return wrap(yn, n.Path+"."+seg)
}

func (n *RawNode) index(i int, yn *yaml.Node) *RawNode {
	return wrap(yn, fmt.Sprintf("%s[%d]", n.Path, i))
}

// MapItem is one key/value pair of a mapping node, in document order.
type MapItem struct {
	Key     string
	KeyNode *RawNode
	Value   *RawNode
}

// Items returns the pairs of a mapping node in document order. Both the
// key and the value node carry the path extended with the key, so an
// error against either lands on the right source location.
func (n *RawNode) Items() []MapItem {
	if !n.IsMapping() {
		return nil
	}
	items := make([]MapItem, 0, len(n.yn.Content)/2)
	for i := 0; i+1 < len(n.yn.Content); i += 2 {
		k, v := n.yn.Content[i], n.yn.Content[i+1]
		items = append(items, MapItem{
			Key:     k.Value,
			KeyNode: n.child(k.Value, k),
			Value:   n.child(k.Value, v),
		})
	}
	return items
}

// Seq returns the elements of a sequence node with bracketed paths.
func (n *RawNode) Seq() []*RawNode {
	if !n.IsSequence() {
		return nil
	}
	out := make([]*RawNode, len(n.yn.Content))
	for i, c := range n.yn.Content {
		out[i] = n.index(i, c)
	}
	return out
}

// Str returns the scalar value as a string. Null scalars do not count.
func (n *RawNode) Str() (string, bool) {
	if !n.IsScalar() || n.IsNull() {
		return "", false
	}
	return n.yn.Value, true
}

// Int returns the scalar value as an integer.
func (n *RawNode) Int() (int64, bool) {
	if !n.IsScalar() || n.yn.Tag != "!!int" {
		return 0, false
	}
	v, err := strconv.ParseInt(n.yn.Value, 0, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Bool returns the scalar value as a boolean.
func (n *RawNode) Bool() (bool, bool) {
	if !n.IsScalar() || n.yn.Tag != "!!bool" {
		return false, false
	}
	v, err := strconv.ParseBool(n.yn.Value)
	if err != nil {
		return false, false
	}
	return v, true
}
