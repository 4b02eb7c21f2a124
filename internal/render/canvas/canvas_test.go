package canvas

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/nlui/studio/internal/interp"
	"github.com/nlui/studio/internal/render/markup"
	"github.com/nlui/studio/internal/uidoc"
)

func render(t *testing.T, doc *uidoc.Document, b *Backend) *html.Node {
	t.Helper()
	r := interp.InterpretDocument(doc, b)
	root, err := html.Parse(strings.NewReader(markup.Render(r.Markup)))
	require.NoError(t, err)
	return root
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func withClass(cls string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		for _, c := range strings.Fields(markup.Attr(n, "class")) {
			if c == cls {
				return true
			}
		}
		return false
	}
}

func editableDoc() *uidoc.Document {
	z := 1000
	return uidoc.AssignIDs(&uidoc.Document{Version: uidoc.Version, Title: "T", Tree: &uidoc.Node{
		Kind: uidoc.KindPage, Children: []*uidoc.Node{
			{Kind: uidoc.KindButton, Props: map[string]any{"text": "Save", "variant": "primary"},
				Position: &uidoc.Position{X: 16, Y: 8}, ZIndex: &z},
			{Kind: uidoc.KindForm, Children: []*uidoc.Node{
				{Kind: uidoc.KindCheckbox, Props: map[string]any{"label": "Agree"}},
			}},
		},
	}})
}

func TestEmit_EditableWrapsDraggableNodes(t *testing.T) {
	doc := editableDoc()
	root := render(t, doc, New(Editable(true)))

	wrappers := findAll(root, withClass("wd-draggable"))
	require.Len(t, wrappers, 1, "page, form and checkbox are not draggable")
	w := wrappers[0]
	assert.Equal(t, doc.Tree.Children[0].ID, markup.Attr(w, "data-node-id"))
	assert.Contains(t, markup.Attr(w, "style"), "transform:translate(16px,8px)")
	assert.Contains(t, markup.Attr(w, "style"), "z-index:1000")
	assert.Len(t, findAll(w, withClass("drag-handle")), 1)
	assert.Len(t, findAll(w, withClass("wd-btn--primary")), 1)
}

func TestEmit_ReadOnlyHasNoHandles(t *testing.T) {
	root := render(t, editableDoc(), New())
	assert.Empty(t, findAll(root, withClass("drag-handle")))

	btn := findAll(root, withClass("wd-btn--primary"))
	require.Len(t, btn, 1)
	assert.Contains(t, markup.Attr(btn[0], "style"), "transform:translate(16px,8px)")
}

func TestEmit_TabsShowFirstPanel(t *testing.T) {
	doc := &uidoc.Document{Version: uidoc.Version, Tree: &uidoc.Node{Kind: uidoc.KindTabs, Children: []*uidoc.Node{
		{Kind: uidoc.KindTab, Props: map[string]any{"label": "One"}},
		{Kind: uidoc.KindTab},
	}}}
	root := render(t, doc, New(Editable(true)))

	items := findAll(root, withClass("wd-tabs__item"))
	require.Len(t, items, 2)
	assert.Equal(t, "true", markup.Attr(items[0], "aria-selected"))

	panels := findAll(root, withClass("wd-tabs__panel"))
	require.Len(t, panels, 2)
	assert.Equal(t, "One", markup.Attr(panels[0], "aria-label"))
	assert.Equal(t, "Tab 2", markup.Attr(panels[1], "aria-label"))
	_, hidden := attrPresent(panels[1], "hidden")
	assert.True(t, hidden)
}

func TestEmit_TabsDropNonTabChildren(t *testing.T) {
	doc := &uidoc.Document{Version: uidoc.Version, Tree: &uidoc.Node{Kind: uidoc.KindTabs, Children: []*uidoc.Node{
		{Kind: uidoc.KindTab, Props: map[string]any{"label": "One"}},
		{Kind: uidoc.KindText, Props: map[string]any{"content": "stray text"}},
	}}}
	root := render(t, doc, New())

	require.Len(t, findAll(root, withClass("wd-tabs__panel")), 1)
	for _, n := range findAll(root, func(*html.Node) bool { return true }) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				assert.NotContains(t, c.Data, "stray text")
			}
		}
	}
}

func TestEmit_UnknownPlaceholder(t *testing.T) {
	doc := &uidoc.Document{Version: uidoc.Version, Tree: &uidoc.Node{Kind: "Hologram"}}
	root := render(t, doc, New())
	labels := findAll(root, withClass("wd-unknown__label"))
	require.Len(t, labels, 1)
	assert.Equal(t, "Unknown component: Hologram", labels[0].FirstChild.Data)
}

func attrPresent(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
