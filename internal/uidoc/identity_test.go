package uidoc

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() *Document {
	return &Document{
		Version: Version,
		Title:   "Profile",
		Tree: &Node{Kind: KindPage, Children: []*Node{
			{Kind: KindHeader, Props: map[string]any{"title": "Worker"}},
			{Kind: KindButton, Props: map[string]any{"text": "Save, now!"}},
			{Kind: KindText, Props: map[string]any{"content": "Hello"}},
			{Kind: KindCard, Props: map[string]any{"label": "Details"}, Children: []*Node{
				{Kind: KindBadge, Props: map[string]any{"status": "Active"}},
			}},
		}},
	}
}

func TestAssignIDs_DerivesFromPathKindAndLabel(t *testing.T) {
	doc := AssignIDs(sampleDoc())

	assert.Equal(t, "root-Page-Page", doc.Tree.ID)
	assert.Equal(t, "root-0-Header-Header", doc.Tree.Children[0].ID)
	assert.Equal(t, "root-1-Button-Savenow", doc.Tree.Children[1].ID)
	assert.Equal(t, "root-2-Text-Hello", doc.Tree.Children[2].ID)
	assert.Equal(t, "root-3-Card-Details", doc.Tree.Children[3].ID)
	assert.Equal(t, "root-3-0-Badge-Badge", doc.Tree.Children[3].Children[0].ID)
}

func TestAssignIDs_DoesNotMutateInput(t *testing.T) {
	in := sampleDoc()
	_ = AssignIDs(in)
	Walk(in.Tree, func(n, _ *Node, _ string) bool {
		assert.Empty(t, n.ID)
		return true
	})
}

func TestAssignIDs_TruncatesLongLabels(t *testing.T) {
	doc := &Document{Version: Version, Tree: &Node{Kind: KindText, Props: map[string]any{
		"text": strings.Repeat("abcdefghij", 10),
	}}}
	out := AssignIDs(doc)
	assert.Len(t, out.Tree.ID, MaxIDLength)
	assert.True(t, strings.HasPrefix(out.Tree.ID, "root-Text-abc"))
}

func TestAssignIDs_KeepsExistingAndFillsGaps(t *testing.T) {
	doc := sampleDoc()
	doc.Tree.Children[0].ID = "hero"
	// Claim the id the second button would otherwise receive.
	doc.Tree.Children[2].ID = "root-1-Button-Savenow"

	out := AssignIDs(doc)
	assert.Equal(t, "hero", out.Tree.Children[0].ID)
	assert.Equal(t, "root-1-Button-Savenow", out.Tree.Children[2].ID)
	assert.Equal(t, "root-1-Button-Savenow-2", out.Tree.Children[1].ID)
}

func TestAssignIDs_Idempotent(t *testing.T) {
	once := AssignIDs(sampleDoc())
	twice := AssignIDs(once)
	assert.Equal(t, once, twice)
}

func TestAssignIDs_NilSafe(t *testing.T) {
	assert.Nil(t, AssignIDs(nil))
	out := AssignIDs(&Document{Version: Version})
	require.NotNil(t, out)
	assert.Nil(t, out.Tree)
}

func TestSanitizeID(t *testing.T) {
	assert.Equal(t, "root-0-Text-HelloWorld", SanitizeID("root-0-Text-Hello, World!"))
	assert.Equal(t, "abc-123", SanitizeID("a b c-1_2.3"))
}

// treeFromLabels builds a deterministic tree: label i hangs under node (i-1)/3.
func treeFromLabels(labels []string) *Document {
	root := &Node{Kind: KindPage}
	nodes := []*Node{root}
	kinds := []Kind{KindText, KindButton, KindCard, KindBadge}
	for i, l := range labels {
		n := &Node{Kind: kinds[i%len(kinds)], Props: map[string]any{"text": l}}
		parent := nodes[i/3]
		parent.Children = append(parent.Children, n)
		nodes = append(nodes, n)
	}
	return &Document{Version: Version, Title: "gen", Tree: root}
}

func TestAssignIDs_Properties(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 100
	properties := gopter.NewProperties(params)

	properties.Property("ids are unique and bounded", prop.ForAll(
		func(labels []string) bool {
			out := AssignIDs(treeFromLabels(labels))
			seen := map[string]bool{}
			ok := true
			Walk(out.Tree, func(n, _ *Node, _ string) bool {
				if n.ID == "" || len(n.ID) > MaxIDLength || seen[n.ID] {
					ok = false
				}
				seen[n.ID] = true
				return true
			})
			return ok
		},
		gen.SliceOf(gen.AnyString()),
	))

	properties.Property("second pass changes nothing", prop.ForAll(
		func(labels []string) bool {
			once := AssignIDs(treeFromLabels(labels))
			twice := AssignIDs(once)
			same := true
			var a, b []string
			Walk(once.Tree, func(n, _ *Node, _ string) bool { a = append(a, n.ID); return true })
			Walk(twice.Tree, func(n, _ *Node, _ string) bool { b = append(b, n.ID); return true })
			if len(a) != len(b) {
				return false
			}
			for i := range a {
				same = same && a[i] == b[i]
			}
			return same
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
