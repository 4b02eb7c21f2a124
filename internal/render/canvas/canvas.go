// Package canvas renders interpreted UI trees with Canvas Kit style
// components. In editable mode every draggable node is wrapped with a drag
// handle and its overlay position.
package canvas

import (
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nlui/studio/internal/interp"
	"github.com/nlui/studio/internal/layout"
	"github.com/nlui/studio/internal/render/markup"
)

// Name identifies the backend in the registry and on the HTTP API.
const Name = "canvas"

// Backend implements interp.Backend.
type Backend struct {
	editable bool
}

// Option configures a Backend.
type Option func(*Backend)

// Editable turns on drag wrappers.
func Editable(on bool) Option {
	return func(b *Backend) { b.editable = on }
}

// New creates a canvas backend.
func New(opts ...Option) *Backend {
	b := &Backend{}
	for _, o := range opts {
		o(b)
	}
	return b
}

func (b *Backend) Name() string { return Name }

var severityModifier = map[interp.Severity]string{
	interp.Positive: "wd-status--positive",
	interp.Caution:  "wd-status--caution",
	interp.Critical: "wd-status--critical",
	interp.Neutral:  "wd-status--neutral",
}

// Emit builds the component for one view. Draggable nodes in editable mode
// are wrapped; the wrapper carries the position and stacking order.
func (b *Backend) Emit(m interp.Meta, v interp.View, trailing []*html.Node) *html.Node {
	n := markup.Append(element(m, v), trailing...)
	markup.SetAttr(n, "data-kind", string(m.Kind))

	var x, y float64
	if m.Position != nil {
		x, y = m.Position.X, m.Position.Y
	}
	overlay := markup.OverlayStyle(x, y, m.Position != nil, m.ZIndex)

	if !b.editable || m.ID == "" || !layout.Draggable(m.Kind) {
		if m.ID != "" {
			markup.SetAttr(n, "data-node-id", m.ID)
		}
		if overlay != "" {
			markup.SetAttr(n, "style", markup.Styles(markup.Attr(n, "style"), overlay))
		}
		return n
	}

	wrap := markup.El(atom.Div, "class", "wd-draggable", "data-node-id", m.ID,
		"style", markup.Styles("position:relative", "display:inline-block", overlay))
	handle := markup.Append(markup.El(atom.Div, "class", "drag-handle", "title", "Drag to move",
		"data-grid", strconv.Itoa(layout.GridSize), "aria-hidden", "true"), markup.Text("⋮⋮"))
	return markup.Append(wrap, handle, markup.Wrap(atom.Div, "wd-draggable__content", n))
}

func element(m interp.Meta, v interp.View) *html.Node {
	switch v := v.(type) {
	case interp.Page:
		return markup.Wrap(atom.Main, "wd-page", stack(v.Body, "24px")...)
	case interp.Header:
		n := markup.Wrap(atom.Header, "wd-header", markup.Label(atom.H1, "wd-heading wd-heading--large", v.Title))
		if v.Subtitle != "" {
			markup.Append(n, markup.Label(atom.P, "wd-subtext", v.Subtitle))
		}
		return markup.Append(n, stack(v.Body, "12px")...)
	case interp.Section:
		cb := markup.El(atom.Div, "class", "wd-card__body")
		if v.Title != "" {
			markup.Append(cb, markup.Label(atom.H3, "wd-heading wd-heading--small", v.Title))
		}
		return markup.Wrap(atom.Section, "wd-card wd-section", markup.Append(cb, stack(v.Body, "16px")...))
	case interp.Card:
		n := markup.El(atom.Div, "class", "wd-card")
		if src := markup.SafeURL(v.Image); src != "" {
			markup.Append(n, markup.El(atom.Img, "class", "wd-card__image", "src", src, "alt", v.Title))
		}
		if v.Title != "" || v.Subtitle != "" {
			h := markup.El(atom.Div, "class", "wd-card__heading")
			if v.Title != "" {
				markup.Append(h, markup.Label(atom.H3, "wd-heading wd-heading--small", v.Title))
			}
			if v.Subtitle != "" {
				markup.Append(h, markup.Label(atom.P, "wd-subtext", v.Subtitle))
			}
			markup.Append(n, h)
		}
		return markup.Append(n, markup.Wrap(atom.Div, "wd-card__body", stack(v.Body, "16px")...))
	case interp.Tabs:
		return tabs(v)
	case interp.TabPanel:
		return markup.Append(markup.El(atom.Div, "class", "wd-tabs__panel", "role", "tabpanel", "aria-label", v.Label),
			stack(v.Body, "16px")...)
	case interp.Table:
		return table(v)
	case interp.Form:
		n := markup.El(atom.Form, "class", "wd-form", "onsubmit", "return false")
		if v.Title != "" {
			markup.Append(n, markup.Label(atom.H3, "wd-heading wd-heading--small", v.Title))
		}
		return markup.Append(n, stack(v.Body, "16px")...)
	case interp.Field:
		return field(v)
	case interp.Text:
		cls := "wd-text"
		if v.Size != "" {
			cls += " wd-text--" + classToken(v.Size)
		}
		return markup.Label(atom.P, cls, v.Content)
	case interp.Badge:
		return statusIndicator(v.Label, v.Severity)
	case interp.Button:
		return markup.Append(markup.El(atom.Button, "type", "button", "class", "wd-btn wd-btn--"+string(v.Variant),
			"data-variant", string(v.Variant), "disabled", markup.Bool(v.Disabled)), markup.Text(v.Text))
	case interp.Icon:
		return markup.Append(markup.El(atom.Span, "class", "wd-icon wd-icon--"+v.Set, "data-icon", v.Set+"."+v.Name,
			"role", "img", "aria-label", v.Name), markup.Text(v.Glyph))
	case interp.Banner:
		lbl := markup.El(atom.Div, "class", "wd-banner__label")
		if v.Title != "" {
			markup.Append(lbl, markup.Label(atom.Strong, "", v.Title))
		}
		markup.Append(lbl, markup.Text(v.Message))
		return markup.Append(markup.El(atom.Div, "class", "wd-banner "+severityModifier[v.Severity], "role", "status",
			"data-severity", string(v.Severity)), markup.Label(atom.Span, "wd-banner__icon", "ℹ️"), lbl)
	case interp.Toast:
		return markup.Append(markup.El(atom.Div, "class", "wd-toast "+severityModifier[v.Severity], "role", "status",
			"data-severity", string(v.Severity)),
			markup.Label(atom.Span, "wd-toast__icon", "✅"), markup.Label(atom.Span, "wd-toast__message", v.Message))
	case interp.Modal:
		card := markup.Wrap(atom.Div, "wd-card wd-modal__card",
			markup.Wrap(atom.Div, "wd-card__heading", markup.Label(atom.H3, "wd-heading wd-heading--small", v.Title)),
			markup.Wrap(atom.Div, "wd-card__body", stack(v.Body, "16px")...),
			markup.Wrap(atom.Div, "wd-modal__actions",
				markup.Label(atom.Button, "wd-btn wd-btn--secondary", v.Cancel),
				markup.Label(atom.Button, "wd-btn wd-btn--primary", v.Confirm)))
		return markup.Append(markup.El(atom.Div, "class", "wd-modal", "role", "dialog", "aria-modal", "true", "aria-label", v.Title), card)
	case interp.Avatar:
		cls := "wd-avatar wd-avatar--" + classToken(v.Size) + " wd-avatar--" + classToken(v.Variant)
		if src := markup.SafeURL(v.Src); src != "" {
			return markup.El(atom.Img, "class", cls, "src", src, "alt", v.Name)
		}
		return markup.Append(markup.El(atom.Span, "class", cls, "title", v.Name, "role", "img", "aria-label", v.Name),
			markup.Text(v.Initial))
	case interp.Breadcrumbs:
		ol := markup.El(atom.Ol, "class", "wd-breadcrumbs__list")
		for _, it := range v.Items {
			markup.Append(ol, markup.Wrap(atom.Li, "wd-breadcrumbs__item",
				markup.Append(markup.El(atom.A, "href", "#", "class", "wd-link"), markup.Text(it))))
		}
		markup.Append(ol, markup.Append(markup.El(atom.Li, "class", "wd-breadcrumbs__current", "aria-current", "page"), markup.Text(v.Current)))
		return markup.Append(markup.El(atom.Nav, "class", "wd-breadcrumbs", "aria-label", "Breadcrumb"), ol)
	case interp.Footer:
		n := markup.El(atom.Footer, "class", "wd-footer")
		if v.Text != "" {
			markup.Append(n, markup.Label(atom.P, "wd-subtext", v.Text))
		}
		for _, l := range v.Links {
			markup.Append(n, markup.Append(markup.El(atom.A, "href", "#", "class", "wd-link"), markup.Text(l)))
		}
		return markup.Append(n, stack(v.Body, "8px")...)
	case interp.Checkbox:
		return markup.Wrap(atom.Label, "wd-checkbox",
			markup.El(atom.Input, "type", "checkbox", "name", v.Name, "checked", markup.Bool(v.Checked), "disabled", markup.Bool(v.Disabled)),
			markup.Label(atom.Span, "wd-checkbox__label", v.Label))
	case interp.Radio:
		return radioGroup(v)
	case interp.Switch:
		state := strconv.FormatBool(v.On)
		return markup.Wrap(atom.Label, "wd-switch",
			markup.El(atom.Button, "type", "button", "role", "switch", "aria-checked", state,
				"class", "wd-switch__track wd-switch__track--"+state, "disabled", markup.Bool(v.Disabled)),
			markup.Label(atom.Span, "wd-switch__label", v.Label))
	case interp.TextArea:
		ta := markup.El(atom.Textarea, "class", "wd-textarea", "name", v.Name, "rows", strconv.Itoa(v.Rows),
			"placeholder", v.Placeholder, "readonly", markup.Bool(v.ReadOnly), "required", markup.Bool(v.Required))
		return formField(v.Label, v.Required, "", "", markup.Append(ta, markup.Text(v.Value)))
	case interp.Tooltip:
		n := markup.El(atom.Span, "class", "wd-tooltip", "title", v.Text)
		markup.Append(n, v.Body.Items...)
		markup.Append(n, v.Body.Buttons...)
		return markup.Append(n, markup.Append(markup.El(atom.Span, "class", "wd-tooltip__bubble", "role", "tooltip"), markup.Text(v.Text)))
	case interp.Layout:
		if v.Stack {
			return markup.Append(markup.El(atom.Div, "class", "wd-layout wd-layout--stack",
				"style", markup.Styles("display:flex", "flex-direction:column", "gap:"+v.Gap)), v.Body.Items...)
		}
		return markup.Append(markup.El(atom.Div, "class", "wd-layout wd-layout--grid",
			"style", markup.Styles("display:grid", "grid-template-columns:repeat("+strconv.Itoa(v.Columns)+",minmax(0,1fr))", "gap:"+v.Gap)),
			v.Body.Items...)
	case interp.Menu:
		n := markup.El(atom.Nav, "class", "wd-menu", "aria-label", v.Title)
		if v.Title != "" {
			markup.Append(n, markup.Label(atom.H4, "wd-menu__title", v.Title))
		}
		ul := markup.El(atom.Ul, "class", "wd-menu__list", "role", "menu")
		for _, it := range v.Items {
			markup.Append(ul, markup.Append(markup.El(atom.Li, "class", "wd-menu__item", "role", "menuitem"), markup.Text(it)))
		}
		return markup.Append(n, ul)
	case interp.Pagination:
		return markup.Append(markup.El(atom.Nav, "class", "wd-pagination", "aria-label", "Pagination"),
			markup.Append(markup.El(atom.Button, "type", "button", "class", "wd-btn wd-btn--tertiary", "aria-label", "Previous page",
				"disabled", markup.Bool(v.Page <= 1)), markup.Text("‹")),
			markup.Label(atom.Span, "wd-pagination__status", strconv.Itoa(v.Page)+" / "+strconv.Itoa(v.Total)),
			markup.Append(markup.El(atom.Button, "type", "button", "class", "wd-btn wd-btn--tertiary", "aria-label", "Next page",
				"disabled", markup.Bool(v.Page >= v.Total)), markup.Text("›")))
	case interp.ColorPicker:
		sw := markup.El(atom.Div, "class", "wd-colorpicker__swatches")
		for _, s := range v.Swatches {
			if c := markup.SafeColor(s); c != "" {
				markup.Append(sw, markup.El(atom.Span, "class", "wd-swatch", "title", c, "style", "background:"+c))
			}
		}
		input := markup.El(atom.Input, "type", "color", "class", "wd-colorpicker__input", "value", hexOr(v.Value, "#0875e1"))
		return formField(v.Label, false, "", "", markup.Wrap(atom.Div, "wd-colorpicker", input, sw))
	case interp.SegmentedControl:
		n := markup.El(atom.Div, "class", "wd-segmented", "role", "radiogroup")
		for i, o := range v.Options {
			markup.Append(n, markup.Append(markup.El(atom.Button, "type", "button", "role", "radio",
				"aria-checked", strconv.FormatBool(i == v.Selected), "class", "wd-segmented__item"), markup.Text(o)))
		}
		return n
	case interp.Pill:
		return pill(v)
	case interp.Image:
		return markup.Thumbnail(v.Src, v.Alt, "wd-image", imageSize(v.Width, v.Height))
	case interp.Timeline:
		ol := markup.El(atom.Ol, "class", "wd-timeline")
		for _, it := range v.Items {
			li := markup.El(atom.Li, "class", "wd-timeline__item")
			if it.When != "" {
				markup.Append(li, markup.Label(atom.Time, "wd-subtext", it.When))
			}
			markup.Append(li, markup.Label(atom.Strong, "wd-timeline__title", it.Title))
			if it.Detail != "" {
				markup.Append(li, markup.Label(atom.P, "wd-text", it.Detail))
			}
			markup.Append(ol, li)
		}
		return ol
	case interp.Chart:
		return chart(v)
	case interp.Stepper:
		ol := markup.El(atom.Ol, "class", "wd-stepper")
		for i, s := range v.Steps {
			state := "upcoming"
			switch {
			case i < v.Current:
				state = "done"
			case i == v.Current:
				state = "current"
			}
			li := markup.El(atom.Li, "class", "wd-stepper__step wd-stepper__step--"+state)
			if i == v.Current {
				markup.SetAttr(li, "aria-current", "step")
			}
			markup.Append(ol, markup.Append(li, markup.Label(atom.Span, "wd-stepper__index", strconv.Itoa(i+1)), markup.Text(s)))
		}
		return ol
	case interp.ProgressBar:
		pct := strconv.FormatFloat(v.Percent, 'f', -1, 64)
		bar := markup.Append(markup.El(atom.Div, "class", "wd-progress", "role", "progressbar",
			"aria-valuemin", "0", "aria-valuemax", "100", "aria-valuenow", pct),
			markup.El(atom.Div, "class", "wd-progress__fill", "style", "width:"+pct+"%"))
		return formField(v.Label, false, "", "", bar)
	case interp.Code:
		c := markup.El(atom.Code)
		if v.Language != "" {
			markup.SetAttr(c, "class", "language-"+v.Language)
		}
		return markup.Wrap(atom.Pre, "wd-code", markup.Append(c, markup.Text(v.Source)))
	case interp.Tile:
		n := markup.Wrap(atom.Div, "wd-card wd-tile",
			markup.Label(atom.Div, "wd-tile__glyph", v.Glyph),
			markup.Label(atom.Div, "wd-heading wd-heading--small", v.Title))
		if v.Detail != "" {
			markup.Append(n, markup.Label(atom.P, "wd-subtext", v.Detail))
		}
		return n
	case interp.Unknown:
		return unknown(v)
	}
	return unknown(interp.Unknown{Kind: m.Kind})
}

func unknown(v interp.Unknown) *html.Node {
	return markup.Wrap(atom.Div, "wd-unknown",
		markup.Append(markup.El(atom.Em, "class", "wd-unknown__label", "data-unknown", "true"),
			markup.Text("Unknown component: "+string(v.Kind))))
}

// stack lays out a block vertically, with grouped buttons in a trailing row.
func stack(b interp.Block, gap string) []*html.Node {
	if b.Empty() {
		return nil
	}
	col := markup.El(atom.Div, "class", "wd-stack", "style", "gap:"+gap)
	markup.Append(col, b.Items...)
	if len(b.Buttons) > 0 {
		markup.Append(col, markup.Wrap(atom.Div, "wd-button-row", b.Buttons...))
	}
	return []*html.Node{col}
}

func tabs(v interp.Tabs) *html.Node {
	list := markup.El(atom.Div, "class", "wd-tabs__list", "role", "tablist")
	n := markup.El(atom.Div, "class", "wd-tabs", "data-tabs", "true")
	markup.Append(n, list)
	for i, p := range v.Panes {
		markup.Append(list, markup.Append(markup.El(atom.Button, "type", "button", "role", "tab",
			"class", "wd-tabs__item", "aria-selected", strconv.FormatBool(i == 0), "data-tab", strconv.Itoa(i)),
			markup.Text(p.Label)))
		markup.SetAttr(p.Panel, "data-tab-panel", strconv.Itoa(i))
		if i > 0 {
			markup.SetAttr(p.Panel, "hidden", "")
		}
		markup.Append(n, p.Panel)
	}
	return n
}

func table(v interp.Table) *html.Node {
	t := markup.El(atom.Table, "class", "wd-table")
	if v.Caption != "" {
		markup.Append(t, markup.Label(atom.Caption, "wd-table__caption", v.Caption))
	}
	hr := markup.El(atom.Tr, "class", "wd-table__row")
	for _, c := range v.Columns {
		markup.Append(hr, markup.Label(atom.Th, "wd-table__header", c))
	}
	tbody := markup.El(atom.Tbody)
	for _, row := range v.Rows {
		tr := markup.El(atom.Tr, "class", "wd-table__row")
		for _, c := range row {
			markup.Append(tr, markup.Wrap(atom.Td, "wd-table__cell", cell(c)))
		}
		markup.Append(tbody, tr)
	}
	return markup.Append(t, markup.Wrap(atom.Thead, "", hr), tbody)
}

func cell(c interp.Cell) *html.Node {
	switch c.Kind {
	case interp.CellText:
		return markup.Text(c.Text)
	case interp.CellImage:
		return markup.Thumbnail(c.Src, "", "wd-thumbnail", "max-width:48px;max-height:48px;object-fit:cover;border-radius:4px")
	case interp.CellNode:
		return c.Markup
	case interp.CellPill:
		return pill(c.Pill)
	case interp.CellList:
		n := markup.El(atom.Span, "class", "wd-cell-list")
		for _, it := range c.Items {
			markup.Append(n, cell(it))
		}
		return n
	}
	return markup.Label(atom.Span, "wd-placeholder", "—")
}

func statusIndicator(label string, s interp.Severity) *html.Node {
	return markup.Append(markup.El(atom.Span, "class", "wd-status "+severityModifier[s], "data-severity", string(s)),
		markup.Label(atom.Span, "wd-status__label", label))
}

func pill(v interp.Pill) *html.Node {
	return markup.Append(markup.El(atom.Span, "class", "wd-pill "+severityModifier[v.Severity], "data-severity", string(v.Severity)),
		markup.Text(v.Label))
}

// formField is the label, control, error and hint frame shared by inputs.
func formField(label string, required bool, errText, hint string, control *html.Node) *html.Node {
	n := markup.El(atom.Div, "class", "wd-formfield")
	if label != "" {
		l := markup.Label(atom.Label, "wd-formfield__label", label)
		if required {
			markup.Append(l, markup.Label(atom.Span, "wd-formfield__required", "*"))
		}
		markup.Append(n, l)
	}
	markup.Append(n, control)
	if errText != "" {
		markup.SetAttr(n, "class", "wd-formfield wd-formfield--error")
		markup.Append(n, markup.Label(atom.P, "wd-formfield__error", errText))
	}
	if hint != "" {
		markup.Append(n, markup.Label(atom.P, "wd-formfield__hint", hint))
	}
	return n
}

func field(v interp.Field) *html.Node {
	var control *html.Node
	switch v.Kind {
	case interp.FieldSelect:
		control = markup.El(atom.Select, "class", "wd-select", "name", v.Name,
			"disabled", markup.Bool(v.ReadOnly), "required", markup.Bool(v.Required))
		markup.Append(control, markup.Append(markup.El(atom.Option, "value", ""), markup.Text("Choose an option")))
		for _, o := range v.Options {
			markup.Append(control, markup.Append(markup.El(atom.Option, "value", o, "selected", markup.Bool(o == v.Value)), markup.Text(o)))
		}
	default:
		control = markup.El(atom.Input, "type", v.InputType, "class", "wd-textinput", "name", v.Name,
			"placeholder", v.Placeholder, "value", v.Value,
			"readonly", markup.Bool(v.ReadOnly), "required", markup.Bool(v.Required))
		if v.Kind == interp.FieldCombobox {
			markup.SetAttr(control, "role", "combobox")
		}
	}
	if v.Error != "" {
		markup.SetAttr(control, "aria-invalid", "true")
	}
	return formField(v.Label, v.Required, v.Error, v.Hint, control)
}

func radioGroup(v interp.Radio) *html.Node {
	cls := "wd-radiogroup"
	if v.Horizontal {
		cls += " wd-radiogroup--horizontal"
	}
	n := markup.El(atom.Fieldset, "class", cls)
	if v.Label != "" {
		markup.Append(n, markup.Label(atom.Legend, "wd-formfield__label", v.Label))
	}
	for _, o := range v.Options {
		markup.Append(n, markup.Wrap(atom.Label, "wd-radio",
			markup.El(atom.Input, "type", "radio", "name", v.Name, "value", o,
				"checked", markup.Bool(o == v.Value), "disabled", markup.Bool(v.Disabled)),
			markup.Label(atom.Span, "", o)))
	}
	return n
}

func chart(v interp.Chart) *html.Node {
	fig := markup.El(atom.Figure, "class", "wd-chart", "data-chart-type", v.Type)
	if v.Title != "" {
		markup.Append(fig, markup.Label(atom.Figcaption, "wd-heading wd-heading--small", v.Title))
	}
	peak := 0.0
	for _, p := range v.Points {
		peak = max(peak, p.Value)
	}
	for _, p := range v.Points {
		pct := 0.0
		if peak > 0 && p.Value > 0 {
			pct = p.Value / peak * 100
		}
		markup.Append(fig, markup.Wrap(atom.Div, "wd-chart__row",
			markup.Label(atom.Span, "wd-chart__label", p.Label),
			markup.El(atom.Div, "class", "wd-chart__bar", "style", "width:"+strconv.FormatFloat(pct, 'f', 1, 64)+"%"),
			markup.Label(atom.Span, "wd-chart__value", strconv.FormatFloat(p.Value, 'f', -1, 64))))
	}
	return fig
}

func imageSize(w, h int) string {
	var decls []string
	if w > 0 {
		decls = append(decls, "width:"+strconv.Itoa(w)+"px")
	}
	if h > 0 {
		decls = append(decls, "height:"+strconv.Itoa(h)+"px")
	}
	return markup.Styles(append(decls, "max-width:100%")...)
}

func hexOr(c, def string) string {
	c = markup.SafeColor(c)
	if len(c) == 7 && c[0] == '#' {
		return c
	}
	return def
}

// classToken keeps a user-provided modifier safe inside a class attribute.
func classToken(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		}
	}
	if len(out) == 0 {
		return "default"
	}
	return string(out)
}
