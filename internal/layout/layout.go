// Package layout implements the interactive overlay on a UI document: drag
// positions, stacking order and the greedy collision nudge. Every operation is
// pure. It returns a new document and leaves its input untouched.
package layout

import (
	"math"

	"github.com/nlui/studio/internal/uidoc"
)

// GridSize is the drag grid, in CSS pixels.
const GridSize = 8

// Stacking values used by BringToFront and SendToBack.
const (
	FrontZ = 1000
	BackZ  = 0
)

// fixed kinds move with their container; form controls keep native input.
var fixed = map[uidoc.Kind]bool{
	uidoc.KindPage:       true,
	uidoc.KindTab:        true,
	uidoc.KindForm:       true,
	uidoc.KindSection:    true,
	uidoc.KindRadio:      true,
	uidoc.KindCheckbox:   true,
	uidoc.KindSwitch:     true,
	uidoc.KindTextArea:   true,
	uidoc.KindField:      true,
	uidoc.KindSelect:     true,
	uidoc.KindDatePicker: true,
}

// Draggable reports whether nodes of kind k get a drag handle.
func Draggable(k uidoc.Kind) bool {
	return !fixed[k]
}

// Snap rounds p to the nearest grid point.
func Snap(p uidoc.Position) uidoc.Position {
	return uidoc.Position{X: snap(p.X), Y: snap(p.Y)}
}

func snap(v float64) float64 {
	return math.Round(v/GridSize) * GridSize
}

// Move sets the position of the node carrying id. It reports false, and
// returns doc itself, when no node matches.
func Move(doc *uidoc.Document, id string, pos uidoc.Position) (*uidoc.Document, bool) {
	return update(doc, id, func(n *uidoc.Node) {
		p := pos
		n.Position = &p
	})
}

// SetZIndex sets the stacking order of the node carrying id.
func SetZIndex(doc *uidoc.Document, id string, z int) (*uidoc.Document, bool) {
	return update(doc, id, func(n *uidoc.Node) {
		v := z
		n.ZIndex = &v
	})
}

// BringToFront stacks the node above everything else in the document, using
// at least FrontZ.
func BringToFront(doc *uidoc.Document, id string) (*uidoc.Document, bool) {
	z := FrontZ
	if doc != nil {
		uidoc.Walk(doc.Tree, func(n, _ *uidoc.Node, _ string) bool {
			if n.ID != id && n.ZIndex != nil && *n.ZIndex >= z {
				z = *n.ZIndex + 1
			}
			return true
		})
	}
	return SetZIndex(doc, id, z)
}

// SendToBack resets the node to the baseline stacking order.
func SendToBack(doc *uidoc.Document, id string) (*uidoc.Document, bool) {
	return SetZIndex(doc, id, BackZ)
}

func update(doc *uidoc.Document, id string, fn func(*uidoc.Node)) (*uidoc.Document, bool) {
	if doc == nil || doc.Tree == nil {
		return doc, false
	}
	if n, _ := uidoc.Find(doc.Tree, id); n == nil {
		return doc, false
	}
	out := doc.Clone()
	n, _ := uidoc.Find(out.Tree, id)
	fn(n)
	return out, true
}
