package layout

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlui/studio/internal/uidoc"
)

func pos(x, y float64) *uidoc.Position { return &uidoc.Position{X: x, Y: y} }

func canvasDoc() *uidoc.Document {
	return &uidoc.Document{Version: uidoc.Version, Title: "Canvas", Tree: &uidoc.Node{
		ID: "page", Kind: uidoc.KindPage, Children: []*uidoc.Node{
			{ID: "save", Kind: uidoc.KindButton},
			{ID: "status", Kind: uidoc.KindBadge, Position: pos(100, 100)},
			{ID: "far", Kind: uidoc.KindBadge, Position: pos(1000, 1000)},
			{ID: "loose", Kind: uidoc.KindText},
			{ID: "form", Kind: uidoc.KindForm, Children: []*uidoc.Node{
				{ID: "nested", Kind: uidoc.KindButton, Position: pos(0, 0)},
			}},
		},
	}}
}

func TestDraggable(t *testing.T) {
	for _, k := range []uidoc.Kind{uidoc.KindPage, uidoc.KindTab, uidoc.KindForm, uidoc.KindSection, uidoc.KindRadio, uidoc.KindCheckbox} {
		assert.False(t, Draggable(k), k)
	}
	for _, k := range []uidoc.Kind{uidoc.KindButton, uidoc.KindCard, uidoc.KindTable, uidoc.KindBadge, "Sparkle"} {
		assert.True(t, Draggable(k), k)
	}
}

func TestSnap(t *testing.T) {
	assert.Equal(t, uidoc.Position{X: 8, Y: 16}, Snap(uidoc.Position{X: 9, Y: 13}))
	assert.Equal(t, uidoc.Position{X: 0, Y: -8}, Snap(uidoc.Position{X: 3.9, Y: -6}))
}

func TestMove_LastWriteWins(t *testing.T) {
	in := canvasDoc()
	d1, ok := Move(in, "save", uidoc.Position{X: 10, Y: 20})
	require.True(t, ok)
	d2, ok := Move(d1, "save", uidoc.Position{X: 30, Y: 40})
	require.True(t, ok)

	n, _ := uidoc.Find(d2.Tree, "save")
	assert.Equal(t, &uidoc.Position{X: 30, Y: 40}, n.Position)

	orig, _ := uidoc.Find(in.Tree, "save")
	assert.Nil(t, orig.Position, "input must not change")
}

func TestMove_NestedNode(t *testing.T) {
	out, ok := Move(canvasDoc(), "nested", uidoc.Position{X: 5, Y: 5})
	require.True(t, ok)
	n, _ := uidoc.Find(out.Tree, "nested")
	assert.Equal(t, 5.0, n.Position.X)
}

func TestLookupMissIsNoop(t *testing.T) {
	in := canvasDoc()

	out, ok := Move(in, "ghost", uidoc.Position{X: 1, Y: 1})
	assert.False(t, ok)
	assert.Same(t, in, out)

	out, ok = SetZIndex(in, "ghost", 3)
	assert.False(t, ok)
	assert.Same(t, in, out)

	out, moved := ResolveCollisions(in, "ghost", uidoc.Position{}, Size{})
	assert.Same(t, in, out)
	assert.Empty(t, moved)

	out, ok = Move(nil, "save", uidoc.Position{})
	assert.False(t, ok)
	assert.Nil(t, out)
}

func TestStacking(t *testing.T) {
	d, ok := SetZIndex(canvasDoc(), "status", 7)
	require.True(t, ok)
	n, _ := uidoc.Find(d.Tree, "status")
	assert.Equal(t, 7, *n.ZIndex)

	d, _ = BringToFront(d, "save")
	n, _ = uidoc.Find(d.Tree, "save")
	assert.Equal(t, FrontZ, *n.ZIndex)

	d, _ = BringToFront(d, "far")
	n, _ = uidoc.Find(d.Tree, "far")
	assert.Equal(t, FrontZ+1, *n.ZIndex)

	d, _ = SendToBack(d, "far")
	n, _ = uidoc.Find(d.Tree, "far")
	assert.Equal(t, BackZ, *n.ZIndex)
}

func TestResolveCollisions_NudgesDown(t *testing.T) {
	in := canvasDoc()
	// Button footprint 120x40 at (90,80) covers the badge at (100,100);
	// clearing needs 20px down, rounded up to the grid.
	out, moved := ResolveCollisions(in, "save", uidoc.Position{X: 90, Y: 80}, Size{})
	require.Len(t, moved, 1)
	assert.Equal(t, "status", moved[0].ID)
	assert.Equal(t, uidoc.Position{X: 100, Y: 100}, moved[0].From)
	assert.Equal(t, uidoc.Position{X: 100, Y: 124}, moved[0].To)

	n, _ := uidoc.Find(out.Tree, "status")
	assert.Equal(t, &uidoc.Position{X: 100, Y: 124}, n.Position)

	dragged, _ := uidoc.Find(out.Tree, "save")
	assert.Nil(t, dragged.Position)
	far, _ := uidoc.Find(out.Tree, "far")
	assert.Equal(t, &uidoc.Position{X: 1000, Y: 1000}, far.Position)
	nested, _ := uidoc.Find(out.Tree, "nested")
	assert.Equal(t, &uidoc.Position{X: 0, Y: 0}, nested.Position, "only siblings are considered")
}

func TestResolveCollisions_PrefersShorterRightward(t *testing.T) {
	// Tall narrow box overlapping the badge's left edge: clearing right is cheaper.
	_, moved := ResolveCollisions(canvasDoc(), "save", uidoc.Position{X: 60, Y: 0}, Size{W: 48, H: 400})
	require.Len(t, moved, 1)
	assert.Equal(t, uidoc.Position{X: 108, Y: 100}, moved[0].To)
}

func TestResolveCollisions_NoOverlap(t *testing.T) {
	in := canvasDoc()
	out, moved := ResolveCollisions(in, "save", uidoc.Position{X: 400, Y: 400}, Size{})
	assert.Empty(t, moved)
	assert.Equal(t, in, out)
}

func TestResolveCollisions_Properties(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	properties.Property("dragged node is never modified and nudged nodes clear the box", prop.ForAll(
		func(px, py float64, xs, ys []float64) bool {
			page := &uidoc.Node{ID: "page", Kind: uidoc.KindPage}
			dragged := &uidoc.Node{ID: "drag", Kind: uidoc.KindCard, Position: pos(5, 5)}
			page.Children = append(page.Children, dragged)
			for i := 0; i < len(xs) && i < len(ys); i++ {
				page.Children = append(page.Children, &uidoc.Node{
					ID: uidoc.ChildPath("n", i), Kind: uidoc.KindButton, Position: pos(xs[i], ys[i]),
				})
			}
			doc := &uidoc.Document{Version: uidoc.Version, Tree: page}

			out, moved := ResolveCollisions(doc, "drag", uidoc.Position{X: px, Y: py}, Size{})
			d, _ := uidoc.Find(out.Tree, "drag")
			if d.Position == nil || *d.Position != (uidoc.Position{X: 5, Y: 5}) {
				return false
			}
			box := Rect{X: px, Y: py, W: 320, H: 200}
			for _, m := range moved {
				fp := Footprint(uidoc.KindButton)
				if box.Overlaps(Rect{X: m.To.X, Y: m.To.Y, W: fp.W, H: fp.H}) {
					return false
				}
			}
			return true
		},
		gen.Float64Range(0, 800),
		gen.Float64Range(0, 800),
		gen.SliceOfN(6, gen.Float64Range(0, 800)),
		gen.SliceOfN(6, gen.Float64Range(0, 800)),
	))

	properties.TestingRun(t)
}
