package interp

import (
	"encoding/json"
	"net/url"
	"path"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/nlui/studio/internal/uidoc"
)

// CellKind tells backends how a table cell resolved.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellImage
	CellNode
	CellPill
	CellList
)

// Cell is one resolved table cell. Only the fields matching Kind are set.
type Cell struct {
	Kind   CellKind
	Text   string
	Src    string
	Markup *html.Node
	Pill   Pill
	Items  []Cell
}

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
	".svg": true, ".bmp": true, ".avif": true, ".ico": true,
}

var imageHosts = []string{
	"imgur.com", "unsplash.com", "cloudinary.com", "githubusercontent.com", "gravatar.com",
	"pexels.com", "pixabay.com", "wikimedia.org", "picsum.photos", "placehold.co",
	"via.placeholder.com", "shields.io",
}

// IsImageURL guesses whether s points at an image: an http(s) or data:image URL
// whose path has an image extension, whose host is a known image service, or
// whose path has a segment mentioning "image" or "badge".
func IsImageURL(s string) bool {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(strings.ToLower(s), "data:image/") {
		return true
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return false
	}
	p := strings.ToLower(u.Path)
	if imageExts[path.Ext(p)] {
		return true
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range imageHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	for _, seg := range strings.Split(p, "/") {
		if strings.Contains(seg, "image") || strings.Contains(seg, "badge") {
			return true
		}
	}
	return false
}

// table narrows a Table node. Cells holding embedded nodes are interpreted in
// place and appended to r.Embedded.
func (in *interpreter) table(p props, r *Rendered) Table {
	rows := p.list("rows")
	cols := p.labels("columns")
	if len(cols) == 0 {
		cols = columnsFromRows(rows)
	}

	t := Table{Caption: p.str("caption", "title"), Columns: cols}
	for i, raw := range rows {
		row := make([]Cell, len(cols))
		for j, col := range cols {
			var v any
			switch rv := raw.(type) {
			case map[string]any:
				v = rv[col]
			case []any:
				if j < len(rv) {
					v = rv[j]
				}
			default:
				if j == 0 {
					v = rv
				}
			}
			cellPath := r.Meta.Path + "-r" + strconv.Itoa(i) + "c" + strconv.Itoa(j)
			row[j] = in.cell(v, cellPath, r, true)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// cell resolves one value: list, embedded node, label object, image URL, text,
// then the empty placeholder. Lists do not nest further than one level.
func (in *interpreter) cell(v any, cellPath string, r *Rendered, allowList bool) Cell {
	switch t := v.(type) {
	case nil:
		return Cell{Kind: CellEmpty}
	case []any:
		if !allowList {
			break
		}
		c := Cell{Kind: CellList}
		for k, item := range t {
			sub := in.cell(item, cellPath+"-"+strconv.Itoa(k), r, false)
			if sub.Kind != CellEmpty {
				c.Items = append(c.Items, sub)
			}
		}
		if len(c.Items) == 0 {
			return Cell{Kind: CellEmpty}
		}
		return c
	case map[string]any:
		if n, ok := embeddedNode(t); ok {
			er := in.node(n, cellPath, 1)
			r.Embedded = append(r.Embedded, er)
			return Cell{Kind: CellNode, Markup: er.Markup}
		}
		if label := labelOf(t); label != "" {
			return Cell{Kind: CellPill, Pill: pillOf(props(t))}
		}
		data, err := json.Marshal(t)
		if err != nil || len(t) == 0 {
			return Cell{Kind: CellEmpty}
		}
		return Cell{Kind: CellText, Text: string(data)}
	case string:
		s := strings.TrimSpace(t)
		switch {
		case s == "":
			return Cell{Kind: CellEmpty}
		case IsImageURL(s):
			return Cell{Kind: CellImage, Src: s}
		}
		return Cell{Kind: CellText, Text: t}
	}
	if s, ok := scalar(v); ok {
		return Cell{Kind: CellText, Text: s}
	}
	return Cell{Kind: CellEmpty}
}

// embeddedNode converts an object carrying a kind (or legacy type) tag into a node.
func embeddedNode(m map[string]any) (*uidoc.Node, bool) {
	tag := props(m).str("kind", "type")
	if tag == "" {
		return nil, false
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, false
	}
	var n uidoc.Node
	if err := json.Unmarshal(data, &n); err != nil || n.Kind == "" {
		return nil, false
	}
	return &n, true
}

// columnsFromRows derives headers from the union of row keys, sorted.
func columnsFromRows(rows []any) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, raw := range rows {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		for k := range m {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	sort.Strings(cols)
	return cols
}
