// Package export writes a document and its rendered previews as a zip bundle.
package export

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nlui/studio/internal/render"
	"github.com/nlui/studio/internal/uidoc"
)

// Bundle entry names.
const (
	ManifestFile = "manifest.json"
	DocumentFile = "document.json"
)

// DefaultAppName labels bundles whose caller names no app.
const DefaultAppName = "NLUI App"

// ErrNoDocument is returned when there is nothing to export.
var ErrNoDocument = errors.New("export: no document")

// Manifest describes a bundle. PreviewState is the exported document itself.
type Manifest struct {
	BundleID       string          `json:"bundleId"`
	Version        string          `json:"version"`
	AppName        string          `json:"appName"`
	GeneratedAt    time.Time       `json:"generatedAt"`
	Title          string          `json:"title"`
	ComponentCount int             `json:"componentCount"`
	ComponentsUsed []string        `json:"componentsUsed"`
	Depth          int             `json:"depth"`
	Files          []string        `json:"files"`
	PreviewState   *uidoc.Document `json:"previewState"`
}

// Options configures a bundle.
type Options struct {
	AppName string
	// Version is the exporting tool's version.
	Version string
	// Now stamps the manifest; zero means the current time.
	Now time.Time
}

// Write renders doc with every registered backend and writes the bundle to w.
func Write(w io.Writer, doc *uidoc.Document, opts Options) (Manifest, error) {
	if doc == nil || doc.Tree == nil {
		return Manifest{}, ErrNoDocument
	}
	if opts.AppName == "" {
		opts.AppName = DefaultAppName
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	m := Manifest{
		BundleID:       uuid.NewString(),
		Version:        opts.Version,
		AppName:        opts.AppName,
		GeneratedAt:    now.UTC(),
		Title:          doc.Title,
		ComponentCount: uidoc.Count(doc.Tree),
		ComponentsUsed: componentsUsed(doc.Tree),
		Depth:          depth(doc.Tree),
		PreviewState:   doc,
	}

	type entry struct {
		name string
		body []byte
	}
	docJSON, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Manifest{}, fmt.Errorf("export: encode document: %w", err)
	}
	entries := []entry{{DocumentFile, docJSON}}
	for _, name := range render.Names() {
		b, err := render.New(name, render.Options{})
		if err != nil {
			return Manifest{}, fmt.Errorf("export: %w", err)
		}
		page := render.Page(doc.Title, render.Render(doc, b))
		entries = append(entries, entry{PreviewFile(name), []byte(page)})
	}

	m.Files = []string{ManifestFile}
	for _, e := range entries {
		m.Files = append(m.Files, e.name)
	}
	manifest, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return Manifest{}, fmt.Errorf("export: encode manifest: %w", err)
	}

	zw := zip.NewWriter(w)
	all := append([]entry{{ManifestFile, manifest}}, entries...)
	for _, e := range all {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.name,
			Method:   zip.Deflate,
			Modified: m.GeneratedAt,
		})
		if err != nil {
			return Manifest{}, fmt.Errorf("export: add %s: %w", e.name, err)
		}
		if _, err := fw.Write(e.body); err != nil {
			return Manifest{}, fmt.Errorf("export: write %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return Manifest{}, fmt.Errorf("export: close: %w", err)
	}
	return m, nil
}

// PreviewFile names the rendered page for a backend.
func PreviewFile(backend string) string {
	return "preview-" + backend + ".html"
}

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// Filename suggests a download name such as "expense-report-20260301.zip".
func Filename(doc *uidoc.Document, at time.Time) string {
	title := "nlui-export"
	if doc != nil {
		if s := strings.Trim(slugUnsafe.ReplaceAllString(strings.ToLower(doc.Title), "-"), "-"); s != "" {
			title = s
		}
	}
	return fmt.Sprintf("%s-%s.zip", title, at.UTC().Format("20060102"))
}

func componentsUsed(root *uidoc.Node) []string {
	seen := map[string]struct{}{}
	uidoc.Walk(root, func(n, _ *uidoc.Node, _ string) bool {
		seen[string(n.Kind)] = struct{}{}
		return true
	})
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func depth(n *uidoc.Node) int {
	if n == nil {
		return 0
	}
	d := 0
	for _, c := range n.Children {
		d = max(d, depth(c))
	}
	return d + 1
}
