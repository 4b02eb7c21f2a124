// Package interp is the node interpreter: it walks a UI tree once, narrows each
// node's props into a typed View with defaults applied, and hands the view to
// a Backend that builds the concrete markup. All semantic decisions live here
// so backends differ only in the primitives they emit.
package interp

import (
	"golang.org/x/net/html"

	"github.com/nlui/studio/internal/uidoc"
)

// Meta identifies the node a view came from.
type Meta struct {
	ID       string
	Kind     uidoc.Kind
	Path     string
	Position *uidoc.Position
	ZIndex   *int
}

// Backend turns a view into markup. trailing holds rendered children the view
// does not place itself; backends append them after the view's own content.
// Implementations must handle every View type, including Unknown.
type Backend interface {
	Name() string
	Emit(m Meta, v View, trailing []*html.Node) *html.Node
}

// Rendered is the interpretation of one node. Children mirrors the node's
// children one to one. Embedded holds nodes found inside props, such as table
// cells carrying a kind.
type Rendered struct {
	Meta     Meta
	View     View
	Markup   *html.Node
	Children []*Rendered
	Embedded []*Rendered
}

// Size counts this node and its structural descendants. Embedded nodes are
// not included.
func (r *Rendered) Size() int {
	if r == nil {
		return 0
	}
	n := 1
	for _, c := range r.Children {
		n += c.Size()
	}
	return n
}

// Interpret renders the subtree rooted at n. It reads n without modifying it
// and never fails on prop shapes. A nil node yields nil.
func Interpret(n *uidoc.Node, b Backend) *Rendered {
	if n == nil {
		return nil
	}
	in := &interpreter{b: b}
	return in.node(n, uidoc.RootPath, 1)
}

// InterpretDocument renders the document tree.
func InterpretDocument(doc *uidoc.Document, b Backend) *Rendered {
	if doc == nil {
		return nil
	}
	return Interpret(doc.Tree, b)
}

type interpreter struct {
	b Backend
}

// node interprets n at path. ordinal is n's 1-based position among the
// siblings that share its role, used for fallback labels such as "Tab 2".
func (in *interpreter) node(n *uidoc.Node, path string, ordinal int) *Rendered {
	r := &Rendered{Meta: Meta{
		ID:       n.ID,
		Kind:     n.Kind,
		Path:     path,
		Position: n.Position,
		ZIndex:   n.ZIndex,
	}}

	tabOrdinal := 0
	for i, ch := range n.Children {
		if ch == nil {
			continue
		}
		ord := i + 1
		if n.Kind == uidoc.KindTabs && ch.Kind == uidoc.KindTab {
			tabOrdinal++
			ord = tabOrdinal
		}
		r.Children = append(r.Children, in.node(ch, uidoc.ChildPath(path, i), ord))
	}

	v, trailing := in.narrow(n, r, ordinal)
	r.View = v
	r.Markup = in.b.Emit(r.Meta, v, trailing)
	if r.Markup == nil {
		r.Markup = &html.Node{Type: html.CommentNode, Data: string(n.Kind)}
	}
	return r
}

func markups(rs []*Rendered) []*html.Node {
	var out []*html.Node
	for _, r := range rs {
		out = append(out, r.Markup)
	}
	return out
}

// block places children in order. With smart set and more than one Button
// among them, buttons are split out into Block.Buttons.
func block(rs []*Rendered, smart bool) Block {
	if smart {
		buttons := 0
		for _, r := range rs {
			if r.Meta.Kind == uidoc.KindButton {
				buttons++
			}
		}
		if buttons > 1 {
			var b Block
			for _, r := range rs {
				if r.Meta.Kind == uidoc.KindButton {
					b.Buttons = append(b.Buttons, r.Markup)
				} else {
					b.Items = append(b.Items, r.Markup)
				}
			}
			return b
		}
	}
	return Block{Items: markups(rs)}
}
