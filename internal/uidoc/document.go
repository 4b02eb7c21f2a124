// Package uidoc defines the generated UI document: a versioned envelope around
// a recursive tree of typed nodes, plus validation and identity assignment.
package uidoc

import "encoding/json"

// Version is the only document version accepted by Validate.
const Version = "1.0"

// Document is the top-level artifact produced by a generation.
type Document struct {
	Version string `json:"version"`
	Title   string `json:"title"`
	Tree    *Node  `json:"tree"`
}

// Position is a drag offset in CSS pixels.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one element of the UI tree. Props stay an open mapping so unknown
// kinds survive; consumers narrow them per kind.
type Node struct {
	Kind     Kind           `json:"kind"`
	Props    map[string]any `json:"props,omitempty"`
	Children []*Node        `json:"children,omitempty"`
	ID       string         `json:"id,omitempty"`
	Position *Position      `json:"position,omitempty"`
	ZIndex   *int           `json:"zIndex,omitempty"`
}

// UnmarshalJSON accepts the legacy "type" tag when "kind" is absent.
func (n *Node) UnmarshalJSON(data []byte) error {
	type plain Node
	var aux struct {
		plain
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*n = Node(aux.plain)
	if n.Kind == "" {
		n.Kind = aux.Type
	}
	return nil
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	return &Document{Version: d.Version, Title: d.Title, Tree: d.Tree.Clone()}
}

// Clone returns a deep copy of the subtree rooted at n, props included.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Kind: n.Kind, ID: n.ID}
	if n.Props != nil {
		c.Props = cloneValue(n.Props).(map[string]any)
	}
	if n.Position != nil {
		p := *n.Position
		c.Position = &p
	}
	if n.ZIndex != nil {
		z := *n.ZIndex
		c.ZIndex = &z
	}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, ch := range n.Children {
			c.Children[i] = ch.Clone()
		}
	}
	return c
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = cloneValue(val)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, val := range t {
			s[i] = cloneValue(val)
		}
		return s
	default:
		return v
	}
}
