package plain

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/nlui/studio/internal/interp"
	"github.com/nlui/studio/internal/render/markup"
	"github.com/nlui/studio/internal/uidoc"
)

func renderDoc(t *testing.T, raw string, b *Backend) *html.Node {
	t.Helper()
	doc, err := uidoc.Parse([]byte(raw))
	require.NoError(t, err)
	r := interp.InterpretDocument(uidoc.AssignIDs(doc), b)
	out := markup.Render(r.Markup)
	root, err := html.Parse(strings.NewReader(out))
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

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func hasAttr(key string) func(*html.Node) bool {
	return func(n *html.Node) bool { return markup.Attr(n, key) != "" }
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func TestRender_SaveButton(t *testing.T) {
	root := renderDoc(t, `{"version":"1.0","title":"T","tree":{"kind":"Page","children":[{"kind":"Button","props":{"variant":"primary","text":"Save"}}]}}`, New())

	buttons := findAll(root, byTag("button"))
	require.Len(t, buttons, 1)
	btn := buttons[0]
	assert.Equal(t, "Save", textOf(btn))
	assert.Contains(t, markup.Attr(btn, "class"), "btn-primary")
	assert.Equal(t, "submit", markup.Attr(btn, "data-action"))
	assert.Len(t, findAll(root, hasAttr("data-kind")), 2, "page and button only")
}

func TestRender_ImageCellWithFallback(t *testing.T) {
	root := renderDoc(t, `{"version":"1.0","title":"T","tree":{"kind":"Table","props":{"columns":["Name"],"rows":[{"Name":"https://cdn.example.com/x.png"}]}}}`, New())

	imgs := findAll(root, byTag("img"))
	require.Len(t, imgs, 1)
	img := imgs[0]
	assert.Equal(t, "https://cdn.example.com/x.png", markup.Attr(img, "src"))
	assert.Contains(t, markup.Attr(img, "onerror"), "this.style.display='none'")
	assert.Contains(t, markup.Attr(img, "onerror"), "nextElementSibling")

	fallback := img.NextSibling
	require.NotNil(t, fallback)
	assert.Equal(t, markup.ImageFallbackGlyph, textOf(fallback))
	assert.Contains(t, markup.Attr(fallback, "style"), "display:none")
	assert.NotContains(t, textOf(root), "https://", "the URL is not rendered as text")
}

func TestRender_UnknownAndBadge(t *testing.T) {
	root := renderDoc(t, `{"version":"1.0","title":"T","tree":{"kind":"Page","children":[
		{"kind":"Sparkle"},
		{"kind":"Badge","props":{"status":"Pending Review"}}
	]}}`, New())

	unknown := findAll(root, hasAttr("data-unknown"))
	require.Len(t, unknown, 1)
	assert.Equal(t, "Unknown component: Sparkle", textOf(unknown[0]))

	badges := findAll(root, func(n *html.Node) bool { return markup.Attr(n, "data-kind") == "Badge" })
	require.Len(t, badges, 1)
	assert.Equal(t, "Pending Review", textOf(badges[0]))
	assert.Equal(t, "caution", markup.Attr(badges[0], "data-severity"))
}

func TestRender_ButtonRow(t *testing.T) {
	root := renderDoc(t, `{"version":"1.0","title":"T","tree":{"kind":"Form","children":[
		{"kind":"Button","props":{"text":"Submit"}},
		{"kind":"Field","props":{"label":"Name","required":true}},
		{"kind":"Button","props":{"text":"Save Draft"}}
	]}}`, New())

	form := findAll(root, byTag("form"))[0]
	last := form.LastChild
	require.NotNil(t, last)
	assert.Len(t, findAll(last, byTag("button")), 2, "buttons grouped after the field")
	assert.Contains(t, textOf(form.FirstChild), "Name*")
}

func TestInferAction(t *testing.T) {
	tests := map[string]Action{
		"Submit Request":    ActionSubmit,
		"Approve All":       ActionApprove,
		"Reject Selected":   ActionDecline,
		"View Policies":     ActionOpen,
		"Cancel":            ActionClose,
		"Save Draft":        ActionSaveDraft,
		"Save":              ActionSubmit,
		"Submit for Review": ActionSubmit,
		"Send Feedback":     ActionSubmit,
		"Viewing options":   ActionOpen,
		"Go back":           ActionClose,
		"Frobnicate":        ActionGenericSubmit,
		"":                  ActionGenericSubmit,
	}
	for text, want := range tests {
		assert.Equal(t, want, InferAction(text), text)
	}
}

func TestRender_Modal(t *testing.T) {
	root := renderDoc(t, `{"version":"1.0","title":"T","tree":{"kind":"Modal","props":{"title":"Delete project?","confirmText":"Approve"},"children":[
		{"kind":"Text","props":{"content":"This cannot be undone."}}
	]}}`, New())

	dialogs := findAll(root, func(n *html.Node) bool { return markup.Attr(n, "role") == "dialog" })
	require.Len(t, dialogs, 1)
	dialog := dialogs[0]
	assert.Equal(t, "true", markup.Attr(dialog, "aria-modal"))
	assert.Equal(t, "Delete project?", markup.Attr(dialog, "aria-label"))
	require.Len(t, findAll(dialog, byTag("h3")), 1)
	assert.Equal(t, "Delete project?", textOf(findAll(dialog, byTag("h3"))[0]))
	assert.Contains(t, textOf(dialog), "This cannot be undone.")

	buttons := findAll(dialog, byTag("button"))
	require.Len(t, buttons, 2)
	assert.Equal(t, "Cancel", textOf(buttons[0]))
	assert.Equal(t, "close", markup.Attr(buttons[0], "data-action"))
	assert.Equal(t, "secondary", markup.Attr(buttons[0], "data-variant"))
	assert.Equal(t, "Approve", textOf(buttons[1]))
	assert.Equal(t, "approve", markup.Attr(buttons[1], "data-action"))
	assert.Equal(t, "primary", markup.Attr(buttons[1], "data-variant"))
}

func TestRender_TabsDropNonTabChildren(t *testing.T) {
	root := renderDoc(t, `{"version":"1.0","title":"T","tree":{"kind":"Tabs","children":[
		{"kind":"Tab","props":{"label":"One"},"children":[{"kind":"Text","props":{"content":"inside"}}]},
		{"kind":"Text","props":{"content":"stray text"}}
	]}}`, New())

	tabs := findAll(root, hasAttr("data-tabs"))
	require.Len(t, tabs, 1)
	assert.Contains(t, textOf(tabs[0]), "inside")
	assert.NotContains(t, textOf(root), "stray text")
}

func TestActionTable(t *testing.T) {
	table := NewActionTable()
	_, err := table.Dispatch(context.Background(), Click{Action: ActionApprove})
	assert.True(t, errors.Is(err, ErrNoHandler))

	var got []Click
	table.Handle(ActionApprove, func(_ context.Context, c Click) (string, error) {
		got = append(got, c)
		return "approved", nil
	})
	table.Handle(ActionGenericSubmit, func(context.Context, Click) (string, error) {
		return "generic", nil
	})

	msg, err := table.Dispatch(context.Background(), Click{Action: ActionApprove, Text: "Approve"})
	require.NoError(t, err)
	assert.Equal(t, "approved", msg)
	require.Len(t, got, 1)
	assert.Equal(t, "Approve", got[0].Text)

	msg, err = table.Dispatch(context.Background(), Click{Action: ActionOpen})
	require.NoError(t, err)
	assert.Equal(t, "generic", msg)
}

func TestWithActions_RestrictsDataAction(t *testing.T) {
	table := NewActionTable()
	table.Handle(ActionClose, func(context.Context, Click) (string, error) { return "", nil })

	root := renderDoc(t, `{"version":"1.0","title":"T","tree":{"kind":"Page","children":[
		{"kind":"Button","props":{"text":"Close"}},
		{"kind":"Button","props":{"text":"Approve"}}
	]}}`, New(WithActions(table)))

	buttons := findAll(root, byTag("button"))
	require.Len(t, buttons, 2)
	assert.Equal(t, "close", markup.Attr(buttons[0], "data-action"))
	assert.Empty(t, markup.Attr(buttons[1], "data-action"))
}
