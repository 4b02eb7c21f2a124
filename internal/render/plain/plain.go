// Package plain renders interpreted UI trees as bare semantic HTML styled
// with utility classes. Buttons carry an inferred data-action that the
// preview posts back through an ActionTable.
package plain

import (
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nlui/studio/internal/interp"
	"github.com/nlui/studio/internal/render/markup"
)

// Name identifies the backend in the registry and on the HTTP API.
const Name = "plain"

// Backend implements interp.Backend.
type Backend struct {
	actions *ActionTable
}

// Option configures a Backend.
type Option func(*Backend)

// WithActions restricts data-action attributes to actions the table can
// dispatch. Without a table every button gets its inferred action.
func WithActions(t *ActionTable) Option {
	return func(b *Backend) { b.actions = t }
}

// New creates a plain backend.
func New(opts ...Option) *Backend {
	b := &Backend{}
	for _, o := range opts {
		o(b)
	}
	return b
}

func (b *Backend) Name() string { return Name }

var severityClass = map[interp.Severity]string{
	interp.Positive: "bg-green-100 text-green-800",
	interp.Caution:  "bg-yellow-100 text-yellow-800",
	interp.Critical: "bg-red-100 text-red-800",
	interp.Neutral:  "bg-gray-100 text-gray-800",
}

var buttonClass = map[interp.Variant]string{
	interp.Primary:   "btn-primary",
	interp.Secondary: "btn-secondary",
	interp.Tertiary:  "btn-tertiary",
}

const inputClass = "mt-1 block w-full rounded-md border-gray-300 shadow-sm focus:border-blue-500 focus:ring-blue-500 sm:text-sm"

// Emit builds the element for one view and tags it with the node's identity.
func (b *Backend) Emit(m interp.Meta, v interp.View, trailing []*html.Node) *html.Node {
	n := b.element(m, v)
	markup.SetAttr(n, "data-kind", string(m.Kind))
	if m.ID != "" {
		markup.SetAttr(n, "data-node-id", m.ID)
	}
	var x, y float64
	if m.Position != nil {
		x, y = m.Position.X, m.Position.Y
	}
	if style := markup.OverlayStyle(x, y, m.Position != nil, m.ZIndex); style != "" {
		markup.SetAttr(n, "style", markup.Styles(markup.Attr(n, "style"), style))
	}
	return markup.Append(n, trailing...)
}

func (b *Backend) element(m interp.Meta, v interp.View) *html.Node {
	switch v := v.(type) {
	case interp.Page:
		return markup.Wrap(atom.Div, "mx-auto max-w-6xl p-4", body(v.Body)...)
	case interp.Header:
		n := markup.Wrap(atom.Header, "bg-white border-b border-gray-200 p-4 mb-6",
			markup.Label(atom.H1, "text-2xl font-bold text-gray-900", v.Title))
		if v.Subtitle != "" {
			markup.Append(n, markup.Label(atom.P, "text-sm text-gray-500", v.Subtitle))
		}
		return markup.Append(n, body(v.Body)...)
	case interp.Section:
		n := markup.El(atom.Section, "class", "mb-6")
		if v.Title != "" {
			markup.Append(n, markup.Label(atom.H2, "text-lg font-semibold text-gray-900 mb-4", v.Title))
		}
		return markup.Append(n, body(v.Body)...)
	case interp.Card:
		n := markup.El(atom.Div, "class", "bg-white rounded-lg shadow-sm border border-gray-200 p-4 mb-4")
		if src := markup.SafeURL(v.Image); src != "" {
			markup.Append(n, markup.El(atom.Img, "src", src, "alt", v.Title, "class", "w-full rounded mb-3"))
		}
		if v.Title != "" {
			markup.Append(n, markup.Label(atom.H3, "text-md font-medium text-gray-900 mb-3", v.Title))
		}
		if v.Subtitle != "" {
			markup.Append(n, markup.Label(atom.P, "text-sm text-gray-500 mb-3", v.Subtitle))
		}
		return markup.Append(n, body(v.Body)...)
	case interp.Tabs:
		return b.tabs(m, v)
	case interp.TabPanel:
		return markup.Append(markup.El(atom.Div, "class", "tab-content", "role", "tabpanel", "aria-label", v.Label),
			body(v.Body)...)
	case interp.Table:
		return b.table(v)
	case interp.Form:
		n := markup.El(atom.Form, "class", "space-y-4", "onsubmit", "return false")
		if v.Title != "" {
			markup.Append(n, markup.Label(atom.H2, "text-lg font-semibold text-gray-900", v.Title))
		}
		return markup.Append(n, body(v.Body)...)
	case interp.Field:
		return field(m, v)
	case interp.Text:
		return markup.Label(atom.P, "text-gray-700", v.Content)
	case interp.Badge:
		return markup.Append(markup.El(atom.Span,
			"class", "inline-flex items-center px-2.5 py-0.5 rounded-full text-xs font-medium "+severityClass[v.Severity],
			"data-severity", string(v.Severity)), markup.Text(v.Label))
	case interp.Button:
		return b.button(m, v)
	case interp.Icon:
		return markup.Append(markup.El(atom.Span, "class", "inline-block", "data-icon", v.Set+"."+v.Name,
			"role", "img", "aria-label", v.Name), markup.Text(v.Glyph))
	case interp.Banner:
		msg := markup.El(atom.Div, "class", "text-sm")
		if v.Title != "" {
			markup.Append(msg, markup.Label(atom.Strong, "block", v.Title))
		}
		markup.Append(msg, markup.Text(v.Message))
		return markup.Append(markup.El(atom.Div, "class", "border rounded-lg p-4 mb-4 flex gap-3 "+severityClass[v.Severity],
			"role", "status", "data-severity", string(v.Severity)),
			markup.Label(atom.Span, "", "📢"), msg)
	case interp.Toast:
		return markup.Append(markup.El(atom.Div, "class", "rounded-lg shadow-lg px-4 py-2 flex items-center gap-2 "+severityClass[v.Severity],
			"role", "status", "data-severity", string(v.Severity)),
			markup.Label(atom.Span, "", "✅"), markup.Text(v.Message))
	case interp.Modal:
		return b.modal(m, v)
	case interp.Avatar:
		if src := markup.SafeURL(v.Src); src != "" {
			return markup.El(atom.Img, "src", src, "alt", v.Name, "class", "rounded-full h-10 w-10 object-cover")
		}
		return markup.Append(markup.El(atom.Span,
			"class", "inline-flex h-10 w-10 items-center justify-center rounded-full bg-gray-200 font-medium",
			"title", v.Name, "data-size", v.Size), markup.Text(v.Initial))
	case interp.Breadcrumbs:
		ol := markup.El(atom.Ol, "class", "flex space-x-2 text-sm text-gray-500")
		for _, it := range v.Items {
			markup.Append(ol, markup.Append(markup.El(atom.Li),
				markup.Append(markup.El(atom.A, "href", "#", "class", "hover:underline"), markup.Text(it)),
				markup.Label(atom.Span, "mx-2", "/")))
		}
		markup.Append(ol, markup.Append(markup.El(atom.Li, "aria-current", "page", "class", "text-gray-900"), markup.Text(v.Current)))
		return markup.Append(markup.El(atom.Nav, "aria-label", "Breadcrumb", "class", "mb-4"), ol)
	case interp.Footer:
		n := markup.El(atom.Footer, "class", "border-t border-gray-200 mt-8 pt-4 text-sm text-gray-500")
		if v.Text != "" {
			markup.Append(n, markup.Label(atom.P, "", v.Text))
		}
		for _, l := range v.Links {
			markup.Append(n, markup.Append(markup.El(atom.A, "href", "#", "class", "mr-4 hover:underline"), markup.Text(l)))
		}
		return markup.Append(n, body(v.Body)...)
	case interp.Checkbox:
		return markup.Append(markup.El(atom.Label, "class", "inline-flex items-center gap-2"),
			markup.El(atom.Input, "type", "checkbox", "name", v.Name,
				"checked", markup.Bool(v.Checked), "disabled", markup.Bool(v.Disabled)),
			markup.Label(atom.Span, "text-sm text-gray-700", v.Label))
	case interp.Radio:
		return radio(v)
	case interp.Switch:
		state := "false"
		if v.On {
			state = "true"
		}
		return markup.Append(markup.El(atom.Label, "class", "inline-flex items-center gap-2"),
			markup.El(atom.Button, "type", "button", "role", "switch", "aria-checked", state,
				"class", "switch switch-"+state, "disabled", markup.Bool(v.Disabled)),
			markup.Label(atom.Span, "text-sm text-gray-700", v.Label))
	case interp.TextArea:
		n := markup.Wrap(atom.Div, "mb-4", fieldLabel(v.Label, v.Required))
		ta := markup.El(atom.Textarea, "class", inputClass, "name", v.Name, "rows", strconv.Itoa(v.Rows),
			"placeholder", v.Placeholder, "readonly", markup.Bool(v.ReadOnly), "required", markup.Bool(v.Required))
		return markup.Append(n, markup.Append(ta, markup.Text(v.Value)))
	case interp.Tooltip:
		n := markup.El(atom.Span, "class", "relative inline-block group", "title", v.Text)
		markup.Append(n, body(v.Body)...)
		return markup.Append(n, markup.Append(markup.El(atom.Span, "class", "tooltip text-xs bg-gray-900 text-white rounded px-2 py-1", "role", "tooltip"),
			markup.Text(v.Text)))
	case interp.Layout:
		if v.Stack {
			return markup.Append(markup.El(atom.Div, "class", "flex flex-col", "style", "gap:"+v.Gap), body(v.Body)...)
		}
		return markup.Append(markup.El(atom.Div, "class", "grid",
			"style", markup.Styles("grid-template-columns:repeat("+strconv.Itoa(v.Columns)+",minmax(0,1fr))", "gap:"+v.Gap)),
			body(v.Body)...)
	case interp.Menu:
		n := markup.El(atom.Nav, "class", "menu", "aria-label", v.Title)
		if v.Title != "" {
			markup.Append(n, markup.Label(atom.H4, "text-sm font-semibold text-gray-900 mb-2", v.Title))
		}
		ul := markup.El(atom.Ul, "class", "space-y-1", "role", "menu")
		for _, it := range v.Items {
			markup.Append(ul, markup.Append(markup.El(atom.Li, "role", "menuitem", "class", "px-2 py-1 rounded hover:bg-gray-100"), markup.Text(it)))
		}
		return markup.Append(n, ul)
	case interp.Pagination:
		return markup.Append(markup.El(atom.Nav, "aria-label", "Pagination", "class", "flex items-center gap-2 text-sm"),
			markup.Append(markup.El(atom.Button, "type", "button", "class", "btn-tertiary", "disabled", markup.Bool(v.Page <= 1)), markup.Text("Previous")),
			markup.Label(atom.Span, "", "Page "+strconv.Itoa(v.Page)+" of "+strconv.Itoa(v.Total)),
			markup.Append(markup.El(atom.Button, "type", "button", "class", "btn-tertiary", "disabled", markup.Bool(v.Page >= v.Total)), markup.Text("Next")))
	case interp.ColorPicker:
		n := markup.Wrap(atom.Div, "mb-4", fieldLabel(v.Label, false))
		markup.Append(n, markup.El(atom.Input, "type", "color", "value", hexOr(v.Value, "#0875e1")))
		row := markup.El(atom.Div, "class", "flex gap-1 mt-2")
		for _, s := range v.Swatches {
			if c := markup.SafeColor(s); c != "" {
				markup.Append(row, markup.El(atom.Span, "class", "inline-block h-5 w-5 rounded", "title", c, "style", "background:"+c))
			}
		}
		return markup.Append(n, row)
	case interp.SegmentedControl:
		n := markup.El(atom.Div, "role", "radiogroup", "class", "inline-flex rounded-md border border-gray-300")
		for i, o := range v.Options {
			checked, cls := "false", "px-3 py-1 text-sm"
			if i == v.Selected {
				checked, cls = "true", cls+" bg-blue-600 text-white"
			}
			markup.Append(n, markup.Append(markup.El(atom.Button, "type", "button", "role", "radio", "aria-checked", checked, "class", cls), markup.Text(o)))
		}
		return n
	case interp.Pill:
		return pill(v)
	case interp.Image:
		return markup.Thumbnail(v.Src, v.Alt, "inline-block", imageSize(v.Width, v.Height))
	case interp.Timeline:
		ol := markup.El(atom.Ol, "class", "border-l border-gray-200 pl-4 space-y-4")
		for _, it := range v.Items {
			li := markup.El(atom.Li)
			if it.When != "" {
				markup.Append(li, markup.Label(atom.Time, "text-xs text-gray-500", it.When))
			}
			markup.Append(li, markup.Label(atom.H4, "text-sm font-medium text-gray-900", it.Title))
			if it.Detail != "" {
				markup.Append(li, markup.Label(atom.P, "text-sm text-gray-600", it.Detail))
			}
			markup.Append(ol, li)
		}
		return ol
	case interp.Chart:
		return chart(v, "bg-blue-500 h-3 rounded")
	case interp.Stepper:
		ol := markup.El(atom.Ol, "class", "flex gap-4 text-sm")
		for i, s := range v.Steps {
			li := markup.El(atom.Li, "class", stepClass(i, v.Current))
			if i == v.Current {
				markup.SetAttr(li, "aria-current", "step")
			}
			markup.Append(ol, markup.Append(li, markup.Text(strconv.Itoa(i+1)+". "+s)))
		}
		return ol
	case interp.ProgressBar:
		pct := strconv.FormatFloat(v.Percent, 'f', -1, 64)
		n := markup.El(atom.Div, "class", "mb-4")
		if v.Label != "" {
			markup.Append(n, markup.Label(atom.Span, "text-sm text-gray-700", v.Label))
		}
		bar := markup.El(atom.Div, "role", "progressbar", "aria-valuemin", "0", "aria-valuemax", "100", "aria-valuenow", pct,
			"class", "w-full bg-gray-200 rounded h-2")
		return markup.Append(n, markup.Append(bar, markup.El(atom.Div, "class", "bg-blue-600 h-2 rounded", "style", "width:"+pct+"%")))
	case interp.Code:
		c := markup.El(atom.Code)
		if v.Language != "" {
			markup.SetAttr(c, "class", "language-"+v.Language)
		}
		return markup.Append(markup.El(atom.Pre, "class", "bg-gray-900 text-gray-100 rounded p-4 overflow-x-auto text-sm"),
			markup.Append(c, markup.Text(v.Source)))
	case interp.Tile:
		n := markup.El(atom.Div, "class", "border border-dashed border-gray-300 rounded-lg p-4 text-center")
		markup.Append(n, markup.Label(atom.Div, "text-2xl", v.Glyph), markup.Label(atom.Div, "font-medium text-gray-900", v.Title))
		if v.Detail != "" {
			markup.Append(n, markup.Label(atom.P, "text-sm text-gray-500", v.Detail))
		}
		return n
	case interp.Unknown:
		return unknown(v)
	}
	return unknown(interp.Unknown{Kind: m.Kind})
}

func unknown(v interp.Unknown) *html.Node {
	return markup.Wrap(atom.Div, "p-2 border border-dashed border-gray-300 rounded",
		markup.Append(markup.El(atom.Span, "class", "text-xs text-gray-500", "data-unknown", "true"),
			markup.Text("Unknown component: "+string(v.Kind))))
}

// body lays out a block: items, then a wrapping button row when present.
func body(b interp.Block) []*html.Node {
	out := append([]*html.Node(nil), b.Items...)
	if len(b.Buttons) > 0 {
		out = append(out, markup.Wrap(atom.Div, "flex gap-3 items-center flex-wrap", b.Buttons...))
	}
	return out
}

// actionFor infers the action for a button label. With an action table, an
// action nobody can dispatch renders as an empty data-action.
func (b *Backend) actionFor(text string) Action {
	action := InferAction(text)
	if b.actions != nil {
		a, ok := b.actions.Resolve(action)
		if !ok {
			a = ""
		}
		action = a
	}
	return action
}

func (b *Backend) button(m interp.Meta, v interp.Button) *html.Node {
	return markup.Append(markup.El(atom.Button, "type", "button", "class", buttonClass[v.Variant],
		"data-variant", string(v.Variant), "data-action", string(b.actionFor(v.Text)), "disabled", markup.Bool(v.Disabled)),
		markup.Text(v.Text))
}

func (b *Backend) modal(m interp.Meta, v interp.Modal) *html.Node {
	actions := markup.El(atom.Div, "class", "flex justify-end gap-3 mt-6")
	for _, btn := range []struct {
		text    string
		variant interp.Variant
	}{{v.Cancel, interp.Secondary}, {v.Confirm, interp.Primary}} {
		markup.Append(actions, markup.Append(markup.El(atom.Button, "type", "button", "class", buttonClass[btn.variant],
			"data-variant", string(btn.variant), "data-action", string(b.actionFor(btn.text))),
			markup.Text(btn.text)))
	}
	panel := markup.Wrap(atom.Div, "bg-white rounded-lg shadow-xl p-6 max-w-lg w-full",
		markup.Label(atom.H3, "text-lg font-semibold text-gray-900 mb-4", v.Title))
	markup.Append(panel, markup.Wrap(atom.Div, "space-y-4", body(v.Body)...), actions)
	return markup.Append(markup.El(atom.Div, "class", "fixed inset-0 flex items-center justify-center bg-black/40",
		"role", "dialog", "aria-modal", "true", "aria-label", v.Title), panel)
}

func (b *Backend) tabs(m interp.Meta, v interp.Tabs) *html.Node {
	nav := markup.El(atom.Nav, "class", "-mb-px flex space-x-8", "role", "tablist")
	panels := markup.El(atom.Div, "class", "mt-4")
	for i, p := range v.Panes {
		cls, selected := "py-2 px-1 border-b-2 font-medium text-sm border-transparent text-gray-500", "false"
		if i == 0 {
			cls, selected = "py-2 px-1 border-b-2 font-medium text-sm border-blue-500 text-blue-600", "true"
		} else {
			markup.SetAttr(p.Panel, "hidden", "")
		}
		markup.Append(nav, markup.Append(markup.El(atom.Button, "type", "button", "role", "tab",
			"aria-selected", selected, "data-tab", strconv.Itoa(i), "class", cls), markup.Text(p.Label)))
		markup.SetAttr(p.Panel, "data-tab-panel", strconv.Itoa(i))
		markup.Append(panels, p.Panel)
	}
	n := markup.Wrap(atom.Div, "mb-4", markup.Wrap(atom.Div, "border-b border-gray-200", nav), panels)
	markup.SetAttr(n, "data-tabs", "true")
	return n
}

func (b *Backend) table(v interp.Table) *html.Node {
	t := markup.El(atom.Table, "class", "min-w-full divide-y divide-gray-300")
	if v.Caption != "" {
		markup.Append(t, markup.Label(atom.Caption, "text-left text-sm font-medium text-gray-900 p-2", v.Caption))
	}
	hr := markup.El(atom.Tr)
	for _, c := range v.Columns {
		markup.Append(hr, markup.Label(atom.Th, "px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider", c))
	}
	tbody := markup.El(atom.Tbody, "class", "bg-white divide-y divide-gray-200")
	for _, row := range v.Rows {
		tr := markup.El(atom.Tr)
		for _, c := range row {
			markup.Append(tr, markup.Append(markup.El(atom.Td, "class", "px-6 py-4 whitespace-nowrap text-sm text-gray-900"), cell(c)))
		}
		markup.Append(tbody, tr)
	}
	markup.Append(t, markup.Wrap(atom.Thead, "bg-gray-50", hr), tbody)
	return markup.Wrap(atom.Div, "overflow-hidden shadow ring-1 ring-black ring-opacity-5 md:rounded-lg", t)
}

func cell(c interp.Cell) *html.Node {
	switch c.Kind {
	case interp.CellText:
		return markup.Text(c.Text)
	case interp.CellImage:
		return markup.Thumbnail(c.Src, "", "inline-block", "max-width:48px;max-height:48px;object-fit:cover")
	case interp.CellNode:
		return c.Markup
	case interp.CellPill:
		return pill(c.Pill)
	case interp.CellList:
		n := markup.El(atom.Span, "class", "inline-flex flex-wrap gap-1")
		for _, it := range c.Items {
			markup.Append(n, cell(it))
		}
		return n
	}
	return markup.Label(atom.Span, "text-gray-400", "—")
}

func pill(v interp.Pill) *html.Node {
	return markup.Append(markup.El(atom.Span, "class", "inline-flex rounded-full px-2 py-0.5 text-xs "+severityClass[v.Severity],
		"data-severity", string(v.Severity)), markup.Text(v.Label))
}

func fieldLabel(text string, required bool) *html.Node {
	l := markup.Label(atom.Label, "block text-sm font-medium text-gray-700", text)
	if required {
		markup.Append(l, markup.Label(atom.Span, "text-red-500 ml-1", "*"))
	}
	return l
}

func field(m interp.Meta, v interp.Field) *html.Node {
	n := markup.Wrap(atom.Div, "mb-4", fieldLabel(v.Label, v.Required))
	var input *html.Node
	switch v.Kind {
	case interp.FieldSelect:
		input = markup.El(atom.Select, "class", inputClass, "name", v.Name,
			"disabled", markup.Bool(v.ReadOnly), "required", markup.Bool(v.Required))
		markup.Append(input, markup.Append(markup.El(atom.Option, "value", ""), markup.Text("Select...")))
		for _, o := range v.Options {
			markup.Append(input, markup.Append(markup.El(atom.Option, "value", o, "selected", markup.Bool(o == v.Value)), markup.Text(o)))
		}
	default:
		input = markup.El(atom.Input, "type", v.InputType, "class", inputClass, "name", v.Name,
			"placeholder", v.Placeholder, "value", v.Value,
			"readonly", markup.Bool(v.ReadOnly), "required", markup.Bool(v.Required))
		if v.Kind == interp.FieldCombobox {
			markup.SetAttr(input, "role", "combobox")
		}
	}
	if v.Error != "" {
		markup.SetAttr(input, "aria-invalid", "true")
	}
	markup.Append(n, input)
	if v.Error != "" {
		markup.Append(n, markup.Label(atom.P, "mt-1 text-sm text-red-600", v.Error))
	}
	if v.Hint != "" {
		markup.Append(n, markup.Label(atom.P, "mt-1 text-xs text-gray-500", v.Hint))
	}
	return n
}

func radio(v interp.Radio) *html.Node {
	n := markup.El(atom.Fieldset, "class", "mb-4")
	if v.Label != "" {
		markup.Append(n, markup.Label(atom.Legend, "text-sm font-medium text-gray-700", v.Label))
	}
	dir := "flex flex-col gap-1"
	if v.Horizontal {
		dir = "flex flex-row gap-4"
	}
	opts := markup.El(atom.Div, "class", dir)
	for _, o := range v.Options {
		markup.Append(opts, markup.Append(markup.El(atom.Label, "class", "inline-flex items-center gap-2"),
			markup.El(atom.Input, "type", "radio", "name", v.Name, "value", o,
				"checked", markup.Bool(o == v.Value), "disabled", markup.Bool(v.Disabled)),
			markup.Label(atom.Span, "text-sm", o)))
	}
	return markup.Append(n, opts)
}

func chart(v interp.Chart, barClass string) *html.Node {
	fig := markup.El(atom.Figure, "data-chart-type", v.Type, "class", "space-y-1")
	if v.Title != "" {
		markup.Append(fig, markup.Label(atom.Figcaption, "text-sm font-medium", v.Title))
	}
	peak := 0.0
	for _, p := range v.Points {
		if p.Value > peak {
			peak = p.Value
		}
	}
	for _, p := range v.Points {
		pct := 0.0
		if peak > 0 && p.Value > 0 {
			pct = p.Value / peak * 100
		}
		w := strconv.FormatFloat(pct, 'f', 1, 64)
		row := markup.Wrap(atom.Div, "flex items-center gap-2 text-xs",
			markup.Label(atom.Span, "w-24 truncate", p.Label),
			markup.El(atom.Div, "class", barClass, "style", "width:"+w+"%"),
			markup.Label(atom.Span, "", strconv.FormatFloat(p.Value, 'f', -1, 64)))
		markup.Append(fig, row)
	}
	return fig
}

func stepClass(i, current int) string {
	switch {
	case i < current:
		return "text-green-700"
	case i == current:
		return "font-semibold text-blue-700"
	}
	return "text-gray-400"
}

func imageSize(w, h int) string {
	var decls []string
	if w > 0 {
		decls = append(decls, "width:"+strconv.Itoa(w)+"px")
	}
	if h > 0 {
		decls = append(decls, "height:"+strconv.Itoa(h)+"px")
	}
	decls = append(decls, "max-width:100%")
	return markup.Styles(decls...)
}

func hexOr(c, def string) string {
	c = markup.SafeColor(c)
	if len(c) == 7 && c[0] == '#' {
		return c
	}
	return def
}
