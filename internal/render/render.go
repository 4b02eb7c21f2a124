// Package render ties the interpreter to a named backend and serializes the
// result, either as a fragment or as a standalone HTML page.
package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nlui/studio/internal/interp"
	"github.com/nlui/studio/internal/render/canvas"
	"github.com/nlui/studio/internal/render/markup"
	"github.com/nlui/studio/internal/render/plain"
	"github.com/nlui/studio/internal/uidoc"
)

// ErrUnknownBackend is returned by New for an unregistered name.
var ErrUnknownBackend = errors.New("render: unknown backend")

// Options configures backend construction.
type Options struct {
	// Editable adds drag wrappers (canvas only).
	Editable bool
	// Actions limits inferred button actions to those it can dispatch (plain only).
	Actions *plain.ActionTable
}

type factory func(Options) interp.Backend

var backends = map[string]factory{
	plain.Name: func(o Options) interp.Backend {
		if o.Actions != nil {
			return plain.New(plain.WithActions(o.Actions))
		}
		return plain.New()
	},
	canvas.Name: func(o Options) interp.Backend {
		return canvas.New(canvas.Editable(o.Editable))
	},
}

var stylesheets = map[string]string{
	plain.Name:  plain.Stylesheet,
	canvas.Name: canvas.Stylesheet,
}

// DefaultBackend is used when no name is given.
const DefaultBackend = canvas.Name

// Names lists registered backends, sorted.
func Names() []string {
	out := make([]string, 0, len(backends))
	for n := range backends {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// New builds the backend registered under name. An empty name selects
// DefaultBackend.
func New(name string, opts Options) (interp.Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultBackend
	}
	f, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %s)", ErrUnknownBackend, name, strings.Join(Names(), ", "))
	}
	return f(opts), nil
}

// Stylesheet returns the CSS a page needs for the named backend's markup.
func Stylesheet(name string) string {
	return stylesheets[name]
}

// Result is one rendered document.
type Result struct {
	Backend string
	HTML    string
	Nodes   int
	Tree    *interp.Rendered
}

// Render interprets doc with b and serializes the markup. A nil document or
// tree renders as an empty fragment.
func Render(doc *uidoc.Document, b interp.Backend) Result {
	r := interp.InterpretDocument(doc, b)
	res := Result{Backend: b.Name(), Tree: r}
	if r != nil {
		res.HTML = markup.Render(r.Markup)
		res.Nodes = r.Size()
	}
	return res
}

// Page wraps a rendered result in a standalone HTML document carrying the
// backend's stylesheet.
func Page(title string, res Result) string {
	if title == "" {
		title = "Untitled"
	}
	head := markup.Append(markup.El(atom.Head),
		markup.El(atom.Meta, "charset", "utf-8"),
		markup.El(atom.Meta, "name", "viewport", "content", "width=device-width, initial-scale=1"),
		markup.Append(markup.El(atom.Title), markup.Text(title)),
		markup.Append(markup.El(atom.Style), markup.Text(Stylesheet(res.Backend))))
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">")
	b.WriteString(markup.Render(head))
	b.WriteString(`<body data-backend="` + html.EscapeString(res.Backend) + `">`)
	b.WriteString(res.HTML)
	b.WriteString("</body></html>\n")
	return b.String()
}
