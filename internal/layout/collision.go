package layout

import (
	"math"

	"github.com/nlui/studio/internal/uidoc"
)

// Size is a width and height in CSS pixels.
type Size struct {
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Rect is an axis-aligned box.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Overlaps reports whether r and o share any area. Touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

var footprints = map[uidoc.Kind]Size{
	uidoc.KindButton:      {120, 40},
	uidoc.KindBadge:       {96, 24},
	uidoc.KindPill:        {96, 24},
	uidoc.KindIcon:        {32, 32},
	uidoc.KindAvatar:      {48, 48},
	uidoc.KindText:        {320, 24},
	uidoc.KindHeader:      {640, 64},
	uidoc.KindCard:        {320, 200},
	uidoc.KindTable:       {640, 240},
	uidoc.KindImage:       {240, 160},
	uidoc.KindBanner:      {640, 56},
	uidoc.KindToast:       {320, 56},
	uidoc.KindTabs:        {640, 240},
	uidoc.KindModal:       {480, 240},
	uidoc.KindChart:       {480, 280},
	uidoc.KindProgressBar: {320, 24},
	uidoc.KindTooltip:     {160, 32},
}

var defaultFootprint = Size{240, 80}

// Footprint is the assumed rendered size of a node of kind k. Collision
// checks use it instead of measured bounds.
func Footprint(k uidoc.Kind) Size {
	if s, ok := footprints[k]; ok {
		return s
	}
	return defaultFootprint
}

// Displacement records one sibling nudged out of the way.
type Displacement struct {
	ID   string         `json:"id"`
	From uidoc.Position `json:"from"`
	To   uidoc.Position `json:"to"`
}

// ResolveCollisions nudges positioned siblings of the dragged node that overlap
// its proposed box. bounds is the dragged node's measured size; a zero value
// falls back to Footprint. Each overlapping sibling moves down just far enough
// to clear the box, or right when that distance is shorter. Nudged nodes are
// not re-checked against each other, and the dragged node itself is never
// modified.
func ResolveCollisions(doc *uidoc.Document, draggedID string, proposed uidoc.Position, bounds Size) (*uidoc.Document, []Displacement) {
	if doc == nil || doc.Tree == nil {
		return doc, nil
	}
	if n, _ := uidoc.Find(doc.Tree, draggedID); n == nil {
		return doc, nil
	}

	out := doc.Clone()
	dragged, parent := uidoc.Find(out.Tree, draggedID)
	if parent == nil {
		return out, nil
	}
	if bounds.W <= 0 || bounds.H <= 0 {
		bounds = Footprint(dragged.Kind)
	}
	box := Rect{X: proposed.X, Y: proposed.Y, W: bounds.W, H: bounds.H}

	var moved []Displacement
	for _, sib := range parent.Children {
		if sib == dragged || sib.Position == nil {
			continue
		}
		fp := Footprint(sib.Kind)
		other := Rect{X: sib.Position.X, Y: sib.Position.Y, W: fp.W, H: fp.H}
		if !box.Overlaps(other) {
			continue
		}
		from := *sib.Position
		to := from
		down := ceilGrid(box.Bottom() - other.Y)
		right := ceilGrid(box.Right() - other.X)
		if right < down {
			to.X += right
		} else {
			to.Y += down
		}
		sib.Position = &to
		moved = append(moved, Displacement{ID: sib.ID, From: from, To: to})
	}
	return out, moved
}

// ceilGrid rounds a positive distance up to the grid so nudged nodes stay
// aligned and still clear the box.
func ceilGrid(v float64) float64 {
	return math.Ceil(v/GridSize) * GridSize
}
