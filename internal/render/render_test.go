package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlui/studio/internal/uidoc"
)

func TestNew(t *testing.T) {
	assert.Equal(t, []string{"canvas", "plain"}, Names())

	b, err := New("", Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultBackend, b.Name())

	b, err = New(" Plain ", Options{})
	require.NoError(t, err)
	assert.Equal(t, "plain", b.Name())

	_, err = New("svg", Options{})
	assert.True(t, errors.Is(err, ErrUnknownBackend))
}

func TestRender_EveryKindOnBothBackends(t *testing.T) {
	for _, name := range Names() {
		b, err := New(name, Options{Editable: true})
		require.NoError(t, err)
		for _, k := range append(uidoc.Kinds(), "Sparkle") {
			doc := uidoc.AssignIDs(&uidoc.Document{Version: uidoc.Version, Title: "K", Tree: &uidoc.Node{Kind: k}})
			res := Render(doc, b)
			assert.Contains(t, res.HTML, `data-kind="`+string(k)+`"`, "%s/%s", name, k)
			assert.Equal(t, 1, res.Nodes)
		}
	}
}

func TestRender_BackendsAgreeOnText(t *testing.T) {
	doc, err := uidoc.Parse([]byte(`{"version":"1.0","title":"T","tree":{"kind":"Page","children":[
		{"kind":"Header"},
		{"kind":"Button"},
		{"kind":"Badge","props":{"status":"Rejected"}}
	]}}`))
	require.NoError(t, err)

	for _, name := range Names() {
		b, _ := New(name, Options{})
		res := Render(doc, b)
		assert.Contains(t, res.HTML, "Page Title", name)
		assert.Contains(t, res.HTML, ">Button<", name)
		assert.Contains(t, res.HTML, "Rejected", name)
		assert.Contains(t, res.HTML, `data-severity="critical"`, name)
		assert.Equal(t, 4, res.Nodes)
	}
}

func TestRender_NilDocument(t *testing.T) {
	b, _ := New("plain", Options{})
	res := Render(nil, b)
	assert.Empty(t, res.HTML)
	assert.Zero(t, res.Nodes)
}

func TestPage(t *testing.T) {
	b, _ := New("canvas", Options{})
	doc := &uidoc.Document{Version: uidoc.Version, Title: "Hire <Ada>", Tree: &uidoc.Node{Kind: uidoc.KindText}}
	page := Page(doc.Title, Render(doc, b))

	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "<title>Hire &lt;Ada&gt;</title>")
	assert.Contains(t, page, "--wd-blueberry-400")
	assert.Contains(t, page, `<body data-backend="canvas">`)
	assert.Contains(t, page, ">Text</p>")
}
