package uidoc

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxIDLength bounds generated identifiers so they stay usable as DOM tokens.
const MaxIDLength = 50

var idUnsafe = regexp.MustCompile(`[^A-Za-z0-9-]+`)

// SanitizeID strips characters outside [A-Za-z0-9-] and truncates to MaxIDLength.
func SanitizeID(s string) string {
	s = idUnsafe.ReplaceAllString(s, "")
	if len(s) > MaxIDLength {
		s = s[:MaxIDLength]
	}
	return s
}

// AssignIDs returns a copy of doc in which every node lacking an id gets one
// derived from its slot path, kind and best available label. Existing ids are
// never touched, so position and stacking overlays keyed by them stay attached.
// Running it again on its own output changes nothing.
func AssignIDs(doc *Document) *Document {
	out := doc.Clone()
	if out == nil || out.Tree == nil {
		return out
	}

	used := make(map[string]struct{})
	Walk(out.Tree, func(n, _ *Node, _ string) bool {
		if n.ID != "" {
			used[n.ID] = struct{}{}
		}
		return true
	})

	Walk(out.Tree, func(n, _ *Node, path string) bool {
		if n.ID != "" {
			return true
		}
		kind := string(n.Kind)
		if kind == "" {
			kind = "node"
		}
		id := uniqueID(SanitizeID(path+"-"+kind+"-"+bestLabel(n)), used)
		used[id] = struct{}{}
		n.ID = id
		return true
	})
	return out
}

// bestLabel picks the first present of text, content and label, else the kind.
func bestLabel(n *Node) string {
	for _, key := range []string{"text", "content", "label"} {
		if s, ok := n.Props[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return string(n.Kind)
}

// uniqueID appends -2, -3, ... to base until it no longer collides, trimming
// base so the result still fits MaxIDLength.
func uniqueID(base string, used map[string]struct{}) string {
	if base == "" {
		base = "node"
	}
	if _, taken := used[base]; !taken {
		return base
	}
	for i := 2; ; i++ {
		suffix := "-" + strconv.Itoa(i)
		stem := base
		if len(stem)+len(suffix) > MaxIDLength {
			stem = stem[:MaxIDLength-len(suffix)]
		}
		if _, taken := used[stem+suffix]; !taken {
			return stem + suffix
		}
	}
}
