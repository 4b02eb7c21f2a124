package interp

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nlui/studio/internal/uidoc"
)

// recorder is a minimal backend: one div per view, trailing children appended.
type recorder struct {
	views []View
}

func (r *recorder) Name() string { return "recorder" }

func (r *recorder) Emit(m Meta, v View, trailing []*html.Node) *html.Node {
	r.views = append(r.views, v)
	n := &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div",
		Attr: []html.Attribute{{Key: "data-kind", Val: string(m.Kind)}}}
	for _, t := range trailing {
		n.AppendChild(t)
	}
	return n
}

func nodeOf(kind uidoc.Kind, p map[string]any, kids ...*uidoc.Node) *uidoc.Node {
	return &uidoc.Node{Kind: kind, Props: p, Children: kids}
}

func interpret(t *testing.T, n *uidoc.Node) *Rendered {
	t.Helper()
	r := Interpret(n, &recorder{})
	require.NotNil(t, r)
	return r
}

func TestInterpret_SaveButtonScenario(t *testing.T) {
	doc, err := uidoc.Parse([]byte(`{"version":"1.0","title":"T","tree":{"kind":"Page","children":[{"kind":"Button","props":{"variant":"primary","text":"Save"}}]}}`))
	require.NoError(t, err)

	r := InterpretDocument(doc, &recorder{})
	require.Len(t, r.Children, 1)
	assert.Equal(t, Page{Body: Block{Items: []*html.Node{r.Children[0].Markup}}}, r.View)
	assert.Equal(t, Button{Variant: Primary, Text: "Save"}, r.Children[0].View)
	assert.Equal(t, 2, r.Size())
}

func TestInterpret_ButtonDefaults(t *testing.T) {
	tests := []struct {
		name  string
		props map[string]any
		want  Button
	}{
		{"no props", nil, Button{Variant: Tertiary, Text: "Button"}},
		{"unrecognized variant", map[string]any{"variant": "shiny", "text": "Go"}, Button{Variant: Tertiary, Text: "Go"}},
		{"secondary", map[string]any{"variant": "Secondary", "text": "Back"}, Button{Variant: Secondary, Text: "Back"}},
		{"children text", map[string]any{"children": "Next"}, Button{Variant: Tertiary, Text: "Next"}},
		{"text beats children", map[string]any{"text": "A", "children": "B"}, Button{Variant: Tertiary, Text: "A"}},
		{"disabled", map[string]any{"disabled": true}, Button{Variant: Tertiary, Text: "Button", Disabled: true}},
		{"non-string text", map[string]any{"text": map[string]any{"x": 1}}, Button{Variant: Tertiary, Text: "Button"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := interpret(t, nodeOf(uidoc.KindButton, tt.props))
			assert.Equal(t, tt.want, r.View)
		})
	}
}

func TestInterpret_BadgeSeverity(t *testing.T) {
	tests := []struct {
		status string
		want   Severity
	}{
		{"Active", Positive},
		{"Pending Review", Caution},
		{"Rejected", Critical},
		{"Bob", Neutral},
	}
	for _, tt := range tests {
		r := interpret(t, nodeOf(uidoc.KindBadge, map[string]any{"status": tt.status}))
		assert.Equal(t, Badge{Label: tt.status, Severity: tt.want}, r.View, tt.status)
	}
}

func TestClassifyStatus(t *testing.T) {
	assert.Equal(t, Critical, ClassifyStatus("Inactive"))
	assert.Equal(t, Caution, ClassifyStatus("  on   LEAVE "))
	assert.Equal(t, Caution, ClassifyStatus("In-Progress"))
	assert.Equal(t, Positive, ClassifyStatus("Completed!"))
	assert.Equal(t, Neutral, ClassifyStatus(""))
	assert.Equal(t, Neutral, ClassifyStatus("Reactivated"))
	assert.Equal(t, Caution, ClassifyStatus("Reviewed"))
	assert.Equal(t, Caution, ClassifyStatus("Drafts"))
	assert.Equal(t, Positive, ClassifyStatus("Activated"))
}

func TestInterpret_UnknownKind(t *testing.T) {
	r := interpret(t, nodeOf("Sparkle", map[string]any{"anything": []any{1, 2}}, nodeOf(uidoc.KindText, nil)))
	assert.Equal(t, Unknown{Kind: "Sparkle"}, r.View)
	require.Len(t, r.Children, 1)
	assert.Same(t, r.Children[0].Markup, r.Markup.FirstChild, "children of unknown kinds still render")

	empty := interpret(t, nodeOf("", nil))
	assert.Equal(t, Unknown{Kind: ""}, empty.View)
}

func TestInterpret_TableCellPrecedence(t *testing.T) {
	table := nodeOf(uidoc.KindTable, map[string]any{
		"columns": []any{"List", "Node", "Pill", "Photo", "Name", "Missing"},
		"rows": []any{map[string]any{
			"List":  []any{map[string]any{"kind": "Badge", "props": map[string]any{"status": "Active"}}, map[string]any{"label": "VIP", "variant": "success"}, nil},
			"Node":  map[string]any{"type": "Button", "props": map[string]any{"text": "Open"}},
			"Pill":  map[string]any{"label": "Remote"},
			"Photo": "https://cdn.example.com/x.png",
			"Name":  "Ada",
		}},
	})
	r := interpret(t, table)
	v, ok := r.View.(Table)
	require.True(t, ok)
	require.Len(t, v.Rows, 1)
	row := v.Rows[0]

	require.Equal(t, CellList, row[0].Kind)
	require.Len(t, row[0].Items, 2)
	assert.Equal(t, CellNode, row[0].Items[0].Kind)
	assert.Equal(t, CellPill, row[0].Items[1].Kind)
	assert.Equal(t, Positive, row[0].Items[1].Pill.Severity)

	assert.Equal(t, CellNode, row[1].Kind)
	assert.Equal(t, CellPill, row[2].Kind)
	assert.Equal(t, "Remote", row[2].Pill.Label)
	assert.Equal(t, Cell{Kind: CellImage, Src: "https://cdn.example.com/x.png"}, row[3])
	assert.Equal(t, Cell{Kind: CellText, Text: "Ada"}, row[4])
	assert.Equal(t, CellEmpty, row[5].Kind)

	require.Len(t, r.Embedded, 2)
	assert.Equal(t, Button{Variant: Tertiary, Text: "Open"}, r.Embedded[1].View)
	assert.Same(t, r.Embedded[1].Markup, row[1].Markup)
	assert.Equal(t, 1, r.Size(), "embedded nodes are not structural children")
}

func TestInterpret_TableColumnsFromRows(t *testing.T) {
	r := interpret(t, nodeOf(uidoc.KindTable, map[string]any{
		"rows": []any{map[string]any{"b": "2", "a": 1.5}, "junk", []any{"x", "y"}},
	}))
	v := r.View.(Table)
	assert.Equal(t, []string{"a", "b"}, v.Columns)
	require.Len(t, v.Rows, 3)
	assert.Equal(t, Cell{Kind: CellText, Text: "1.5"}, v.Rows[0][0])
	assert.Equal(t, Cell{Kind: CellText, Text: "junk"}, v.Rows[1][0])
	assert.Equal(t, CellEmpty, v.Rows[1][1].Kind)
	assert.Equal(t, Cell{Kind: CellText, Text: "y"}, v.Rows[2][1])
}

func TestIsImageURL(t *testing.T) {
	yes := []string{
		"https://cdn.example.com/x.png",
		"http://example.com/photo.JPEG?size=2",
		"https://i.imgur.com/abc",
		"https://example.com/images/42",
		"https://img.shields.io/badge/build-passing-green",
		"data:image/png;base64,AAAA",
	}
	no := []string{
		"x.png",
		"https://example.com/docs/readme",
		"ftp://example.com/x.png",
		"Ada Lovelace",
		"",
	}
	for _, s := range yes {
		assert.True(t, IsImageURL(s), s)
	}
	for _, s := range no {
		assert.False(t, IsImageURL(s), s)
	}
}

func TestInterpret_Tabs(t *testing.T) {
	r := interpret(t, nodeOf(uidoc.KindTabs, nil,
		nodeOf(uidoc.KindTab, map[string]any{"label": "Overview"}, nodeOf(uidoc.KindText, nil)),
		nodeOf(uidoc.KindText, map[string]any{"content": "stray"}),
		nodeOf(uidoc.KindTab, nil),
	))
	v := r.View.(Tabs)
	require.Len(t, v.Panes, 2)
	assert.Equal(t, "Overview", v.Panes[0].Label)
	assert.Equal(t, "Tab 2", v.Panes[1].Label)
	assert.Same(t, r.Children[2].Markup, v.Panes[1].Panel)
	assert.Equal(t, 5, r.Size())
}

func TestInterpret_SmartButtonGrouping(t *testing.T) {
	section := interpret(t, nodeOf(uidoc.KindSection, nil,
		nodeOf(uidoc.KindButton, nil), nodeOf(uidoc.KindText, nil), nodeOf(uidoc.KindButton, nil)))
	b := section.View.(Section).Body
	assert.Len(t, b.Items, 1)
	assert.Len(t, b.Buttons, 2)

	single := interpret(t, nodeOf(uidoc.KindCard, nil, nodeOf(uidoc.KindButton, nil), nodeOf(uidoc.KindText, nil)))
	assert.Len(t, single.View.(Card).Body.Items, 2)
	assert.Empty(t, single.View.(Card).Body.Buttons)

	page := interpret(t, nodeOf(uidoc.KindPage, nil, nodeOf(uidoc.KindButton, nil), nodeOf(uidoc.KindButton, nil)))
	assert.Empty(t, page.View.(Page).Body.Buttons, "pages keep document order")
}

func TestInterpret_Layout(t *testing.T) {
	tests := []struct {
		props map[string]any
		want  Layout
	}{
		{nil, Layout{Columns: 2, Gap: "16px"}},
		{map[string]any{"direction": "column"}, Layout{Stack: true, Columns: 2, Gap: "16px"}},
		{map[string]any{"type": "stack", "gap": 8.0}, Layout{Stack: true, Columns: 2, Gap: "8px"}},
		{map[string]any{"columns": 3.0, "gap": "2rem"}, Layout{Columns: 3, Gap: "2rem"}},
		{map[string]any{"columns": -4.0, "gap": "24"}, Layout{Columns: 1, Gap: "24px"}},
	}
	for _, tt := range tests {
		r := interpret(t, nodeOf(uidoc.KindLayout, tt.props))
		v := r.View.(Layout)
		v.Body = Block{}
		assert.Equal(t, tt.want, v, tt.props)
	}
}

func TestInterpret_Field(t *testing.T) {
	sel := interpret(t, nodeOf(uidoc.KindField, map[string]any{
		"kind": "select", "label": "Country", "options": []any{"NZ", "AU"},
		"required": true, "readOnly": true, "error": "Pick one", "hint": "Where you live",
	})).View.(Field)
	assert.Equal(t, FieldSelect, sel.Kind)
	assert.Equal(t, []string{"NZ", "AU"}, sel.Options)
	assert.True(t, sel.Required)
	assert.True(t, sel.ReadOnly)
	assert.Equal(t, "Pick one", sel.Error)
	assert.Equal(t, "Where you live", sel.Hint)

	text := interpret(t, nodeOf(uidoc.KindField, map[string]any{"type": "text", "options": []any{"ignored"}})).View.(Field)
	assert.Equal(t, FieldText, text.Kind)
	assert.Nil(t, text.Options)

	date := interpret(t, nodeOf(uidoc.KindDatePicker, map[string]any{"label": "Start"})).View.(Field)
	assert.Equal(t, FieldDate, date.Kind)
	assert.Equal(t, "date", date.InputType)

	combo := interpret(t, nodeOf(uidoc.KindField, map[string]any{"kind": "combobox"})).View.(Field)
	assert.Equal(t, FieldCombobox, combo.Kind)
	assert.NotEmpty(t, combo.Placeholder)
}

func TestInterpret_Defaults(t *testing.T) {
	assert.Equal(t, Header{Title: "Page Title"}, interpret(t, nodeOf(uidoc.KindHeader, nil)).View)
	assert.Equal(t, Text{Content: "Text"}, interpret(t, nodeOf(uidoc.KindText, nil)).View)
	assert.Equal(t, Text{Content: ""}, interpret(t, nodeOf(uidoc.KindText, nil, nodeOf(uidoc.KindBadge, nil))).View)
	assert.Equal(t, Banner{Message: "Banner message", Severity: Neutral}, interpret(t, nodeOf(uidoc.KindBanner, nil)).View)
	assert.Equal(t, Toast{Message: "Toast message", Severity: Critical},
		interpret(t, nodeOf(uidoc.KindToast, map[string]any{"type": "error"})).View)
	assert.Equal(t, Breadcrumbs{Items: []string{"Home", "Page"}, Current: "Current Page"},
		interpret(t, nodeOf(uidoc.KindBreadcrumbs, nil)).View)
	assert.Equal(t, Avatar{Name: "ada", Initial: "A", Size: "medium", Variant: "light"},
		interpret(t, nodeOf(uidoc.KindAvatar, map[string]any{"name": "ada"})).View)
	assert.Equal(t, "U", interpret(t, nodeOf(uidoc.KindAvatar, nil)).View.(Avatar).Initial)
	assert.Equal(t, Pagination{Page: 4, Total: 4},
		interpret(t, nodeOf(uidoc.KindPagination, map[string]any{"currentPage": 9.0, "totalPages": 4.0})).View)
	assert.Equal(t, 3, interpret(t, nodeOf(uidoc.KindTextArea, nil)).View.(TextArea).Rows)

	m := interpret(t, nodeOf(uidoc.KindModal, map[string]any{"confirmText": "Delete"})).View.(Modal)
	assert.Equal(t, "Modal", m.Title)
	assert.Equal(t, "Delete", m.Confirm)
	assert.Equal(t, "Cancel", m.Cancel)
}

func TestInterpret_Icon(t *testing.T) {
	assert.Equal(t, Icon{Set: "accent", Name: "calendarIcon", Glyph: "📅"},
		interpret(t, nodeOf(uidoc.KindIcon, map[string]any{"icon": "accent.calendarIcon"})).View)
	assert.Equal(t, Icon{Set: "system", Name: "User", Glyph: "👤"},
		interpret(t, nodeOf(uidoc.KindIcon, map[string]any{"name": "User"})).View)
	assert.Equal(t, fallbackGlyph, interpret(t, nodeOf(uidoc.KindIcon, nil)).View.(Icon).Glyph)
}

func TestInterpret_EveryKnownKindHasAView(t *testing.T) {
	for _, k := range uidoc.Kinds() {
		r := interpret(t, nodeOf(k, nil))
		_, unknown := r.View.(Unknown)
		assert.False(t, unknown, k)
		assert.NotNil(t, r.Markup, k)
	}
}

func TestInterpret_DoesNotMutateInput(t *testing.T) {
	doc := sampleTree()
	before := doc.Clone()
	Interpret(doc, &recorder{})
	assert.Equal(t, before, doc)
}

func sampleTree() *uidoc.Node {
	return nodeOf(uidoc.KindPage, nil,
		nodeOf(uidoc.KindTable, map[string]any{"columns": []any{"A"}, "rows": []any{map[string]any{"A": map[string]any{"kind": "Badge"}}}}),
		nodeOf(uidoc.KindForm, nil, nodeOf(uidoc.KindField, map[string]any{"kind": "select"})),
	)
}

// junkProps exercises shape mismatches the interpreter must absorb.
var junkProps = []map[string]any{
	nil,
	{"text": 42.0, "variant": []any{"primary"}},
	{"rows": "not a list", "columns": 7.0},
	{"rows": []any{map[string]any{"A": []any{[]any{"deep"}}}}, "columns": []any{map[string]any{"label": "A"}}},
	{"options": map[string]any{"a": 1.0}, "items": []any{nil, true}},
	{"columns": "three", "gap": map[string]any{}, "direction": 1.0},
	{"status": nil, "label": false, "currentPage": "x", "totalPages": -3.0},
	{"data": []any{map[string]any{"label": "Q1", "value": "12"}}, "steps": []any{"a"}, "current": 99.0},
}

func TestInterpret_Properties(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	kinds := append(uidoc.Kinds(), "Sparkle", "")

	build := func(picks []int) *uidoc.Node {
		root := nodeOf(uidoc.KindPage, nil)
		nodes := []*uidoc.Node{root}
		for i, p := range picks {
			n := nodeOf(kinds[p%len(kinds)], junkProps[p%len(junkProps)])
			parent := nodes[i/2]
			parent.Children = append(parent.Children, n)
			nodes = append(nodes, n)
		}
		return root
	}

	properties.Property("one rendered node per input node", prop.ForAll(
		func(picks []int) bool {
			root := build(picks)
			r := Interpret(root, &recorder{})
			return r.Size() == uidoc.Count(root)
		},
		gen.SliceOf(gen.IntRange(0, 1000)),
	))

	properties.Property("every node gets markup", prop.ForAll(
		func(picks []int) bool {
			ok := true
			var check func(r *Rendered)
			check = func(r *Rendered) {
				if r.Markup == nil || r.View == nil {
					ok = false
				}
				for _, c := range r.Children {
					check(c)
				}
				for _, e := range r.Embedded {
					check(e)
				}
			}
			check(Interpret(build(picks), &recorder{}))
			return ok
		},
		gen.SliceOf(gen.IntRange(0, 1000)),
	))

	properties.TestingRun(t)
}
