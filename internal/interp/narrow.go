package interp

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/nlui/studio/internal/uidoc"
)

// narrow resolves n's props into its View. The second result is the rendered
// children the view leaves for the backend to append.
func (in *interpreter) narrow(n *uidoc.Node, r *Rendered, ordinal int) (View, []*html.Node) {
	p := props(n.Props)
	kids := r.Children

	switch n.Kind {
	case uidoc.KindPage:
		return Page{Body: block(kids, false)}, nil
	case uidoc.KindHeader:
		return Header{
			Title:    p.or("Page Title", "title", "text"),
			Subtitle: p.str("subtitle", "description"),
			Body:     block(kids, false),
		}, nil
	case uidoc.KindSection:
		return Section{Title: p.str("title"), Body: block(kids, true)}, nil
	case uidoc.KindCard:
		return Card{
			Title:    p.str("title"),
			Subtitle: p.str("subtitle", "description"),
			Image:    p.str("image", "imageUrl", "src"),
			Body:     block(kids, true),
		}, nil
	case uidoc.KindTabs:
		var t Tabs
		for _, k := range kids {
			if pane, ok := k.View.(TabPanel); ok && k.Meta.Kind == uidoc.KindTab {
				t.Panes = append(t.Panes, TabPane{Label: pane.Label, Panel: k.Markup})
			}
		}
		return t, nil
	case uidoc.KindTab:
		return TabPanel{
			Label: p.or("Tab "+strconv.Itoa(ordinal), "label", "title"),
			Body:  block(kids, false),
		}, nil
	case uidoc.KindTable:
		return in.table(p, r), markups(kids)
	case uidoc.KindForm:
		return Form{Title: p.str("title"), Body: block(kids, true)}, nil
	case uidoc.KindField:
		return fieldOf(p, p.str("kind", "type")), markups(kids)
	case uidoc.KindSelect:
		return fieldOf(p, string(FieldSelect)), markups(kids)
	case uidoc.KindDatePicker:
		return fieldOf(p, string(FieldDate)), markups(kids)
	case uidoc.KindText:
		content := p.str("content", "text", "children")
		if content == "" && len(kids) == 0 {
			content = "Text"
		}
		return Text{Content: content, Size: p.str("size", "variant")}, markups(kids)
	case uidoc.KindBadge:
		label := p.or("Badge", "status", "text", "label", "children")
		return Badge{Label: label, Severity: ClassifyStatus(label)}, markups(kids)
	case uidoc.KindButton:
		return Button{
			Variant:  variantOf(p.str("variant")),
			Text:     p.or("Button", "text", "children"),
			Disabled: p.boolean("disabled"),
		}, markups(kids)
	case uidoc.KindIcon:
		return iconOf(p), markups(kids)
	case uidoc.KindBanner:
		return Banner{
			Title:    p.str("title"),
			Message:  p.or("Banner message", "message", "text"),
			Severity: explicitSeverity(p),
		}, markups(kids)
	case uidoc.KindToast:
		return Toast{
			Message:  p.or("Toast message", "message", "text"),
			Severity: explicitSeverity(p),
		}, markups(kids)
	case uidoc.KindModal:
		return Modal{
			Title:   p.or("Modal", "title"),
			Confirm: p.or("Confirm", "confirmText"),
			Cancel:  p.or("Cancel", "cancelText"),
			Body:    block(kids, false),
		}, nil
	case uidoc.KindAvatar:
		name := p.str("name", "label")
		return Avatar{
			Name:    name,
			Initial: initialOf(name),
			Src:     p.str("src", "image", "url"),
			Size:    p.or("medium", "size"),
			Variant: p.or("light", "variant"),
		}, markups(kids)
	case uidoc.KindBreadcrumbs:
		items := p.labels("items")
		if len(items) == 0 {
			items = []string{"Home", "Page"}
		}
		return Breadcrumbs{Items: items, Current: p.or("Current Page", "current")}, markups(kids)
	case uidoc.KindFooter:
		return Footer{
			Text:  p.str("text", "content", "copyright"),
			Links: p.labels("links"),
			Body:  block(kids, false),
		}, nil
	case uidoc.KindCheckbox:
		return Checkbox{
			Label:    p.str("label", "text"),
			Name:     p.str("name"),
			Checked:  p.boolean("checked") || p.boolean("value"),
			Disabled: p.boolean("disabled"),
		}, markups(kids)
	case uidoc.KindRadio:
		return Radio{
			Label:      p.str("label"),
			Name:       p.or(groupName(n, r.Meta.Path), "name"),
			Options:    p.labels("options"),
			Value:      p.str("value", "selected"),
			Horizontal: isOneOf(p.str("orientation", "direction"), "horizontal", "row"),
			Disabled:   p.boolean("disabled"),
		}, markups(kids)
	case uidoc.KindSwitch:
		return Switch{
			Label:    p.str("label", "text"),
			On:       p.boolean("checked") || p.boolean("on") || p.boolean("value"),
			Disabled: p.boolean("disabled"),
		}, markups(kids)
	case uidoc.KindTextArea:
		return TextArea{
			Label:       p.str("label"),
			Name:        p.str("name"),
			Placeholder: p.str("placeholder"),
			Value:       p.str("value"),
			Rows:        clamp(p.integer(3, "rows"), 1, 50),
			Required:    p.boolean("required"),
			ReadOnly:    p.boolean("readOnly"),
		}, markups(kids)
	case uidoc.KindTooltip:
		return Tooltip{Text: p.or("Tooltip", "text", "content", "label"), Body: block(kids, false)}, nil
	case uidoc.KindLayout:
		return Layout{
			Stack:   isOneOf(p.str("direction"), "column") || isOneOf(p.str("type"), "stack"),
			Columns: clamp(p.integer(2, "columns"), 1, 12),
			Gap:     cssLength(p["gap"], "16px"),
			Body:    block(kids, false),
		}, nil
	case uidoc.KindMenu:
		return Menu{Title: p.str("title", "label"), Items: p.labels("items")}, markups(kids)
	case uidoc.KindPagination:
		total := p.integer(1, "totalPages", "total", "pages")
		if total < 1 {
			total = 1
		}
		return Pagination{
			Page:  clamp(p.integer(1, "currentPage", "page", "current"), 1, total),
			Total: total,
		}, markups(kids)
	case uidoc.KindColorPicker:
		swatches := p.labels("colors")
		if len(swatches) == 0 {
			swatches = p.labels("swatches")
		}
		return ColorPicker{
			Label:    p.str("label"),
			Value:    p.or("#0875e1", "value", "color"),
			Swatches: swatches,
		}, markups(kids)
	case uidoc.KindSegmentedControl:
		return segmentedOf(p), markups(kids)
	case uidoc.KindPill:
		return pillOf(p), markups(kids)
	case uidoc.KindImage:
		return Image{
			Src:    p.str("src", "url", "image"),
			Alt:    p.or("Image", "alt", "title"),
			Width:  p.integer(0, "width"),
			Height: p.integer(0, "height"),
		}, markups(kids)
	case uidoc.KindTimeline:
		return timelineOf(p), markups(kids)
	case uidoc.KindChart:
		return chartOf(p), markups(kids)
	case uidoc.KindStepper:
		steps := p.labels("steps")
		return Stepper{
			Steps:   steps,
			Current: clamp(p.integer(0, "current", "activeStep"), 0, max(len(steps)-1, 0)),
		}, markups(kids)
	case uidoc.KindProgressBar:
		return progressOf(p), markups(kids)
	case uidoc.KindCode:
		return Code{
			Language: p.str("language", "lang"),
			Source:   p.str("code", "content", "text"),
		}, markups(kids)
	case uidoc.KindCalendar, uidoc.KindMap, uidoc.KindUpload, uidoc.KindDownload,
		uidoc.KindScanner, uidoc.KindPreview, uidoc.KindPoints:
		return Tile{
			Kind:   n.Kind,
			Title:  p.or(string(n.Kind), "title", "label"),
			Detail: p.str("description", "text", "value", "points", "address", "fileName"),
			Glyph:  tileGlyphs[n.Kind],
		}, markups(kids)
	}
	return Unknown{Kind: n.Kind}, markups(kids)
}

func variantOf(s string) Variant {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "primary":
		return Primary
	case "secondary":
		return Secondary
	}
	return Tertiary
}

func fieldOf(p props, kind string) Field {
	f := Field{
		Kind:        FieldText,
		InputType:   "text",
		Label:       p.str("label"),
		Name:        p.str("name"),
		Placeholder: p.str("placeholder"),
		Value:       p.str("value", "defaultValue"),
		Required:    p.boolean("required"),
		ReadOnly:    p.boolean("readOnly") || p.boolean("readonly"),
		Error:       p.str("error"),
		Hint:        p.str("hint", "helperText"),
	}
	switch k := strings.ToLower(strings.TrimSpace(kind)); k {
	case "select", "dropdown":
		f.Kind = FieldSelect
		f.Options = p.labels("options")
	case "date", "datepicker":
		f.Kind, f.InputType = FieldDate, "date"
	case "combobox", "autocomplete", "search":
		f.Kind = FieldCombobox
		if f.Placeholder == "" {
			f.Placeholder = "Start typing to search..."
		}
	case "email", "number", "tel", "password", "url", "time":
		f.InputType = k
	}
	return f
}

func explicitSeverity(p props) Severity {
	s, _ := severityOfVariant(p.str("variant", "type", "severity"))
	return s
}

func pillOf(p props) Pill {
	pl := Pill{Label: p.or("Pill", "label", "text"), Variant: p.str("variant", "color")}
	if s, ok := severityOfVariant(pl.Variant); ok {
		pl.Severity = s
	} else {
		pl.Severity = ClassifyStatus(pl.Label)
	}
	return pl
}

func initialOf(name string) string {
	name = strings.TrimSpace(name)
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || !unicode.IsPrint(r) {
		return "U"
	}
	return string(unicode.ToUpper(r))
}

var iconGlyphs = map[string]string{
	"user":     "👤",
	"building": "🏢",
	"calendar": "📅",
	"search":   "🔍",
	"alert":    "⚠️",
	"check":    "✅",
	"home":     "🏠",
	"mail":     "✉️",
	"settings": "⚙️",
	"star":     "⭐",
}

const fallbackGlyph = "📷"

var tileGlyphs = map[uidoc.Kind]string{
	uidoc.KindCalendar: "📅",
	uidoc.KindMap:      "🗺️",
	uidoc.KindUpload:   "⬆️",
	uidoc.KindDownload: "⬇️",
	uidoc.KindScanner:  "📷",
	uidoc.KindPreview:  "👁️",
	uidoc.KindPoints:   "⭐",
}

// iconOf reads "set.name" from props.icon (set is system, accent or applet)
// and falls back to props.name for the glyph.
func iconOf(p props) Icon {
	ic := Icon{Set: "system"}
	ref := p.str("icon")
	if set, name, ok := strings.Cut(ref, "."); ok && isOneOf(set, "system", "accent", "applet") {
		ic.Set, ic.Name = strings.ToLower(set), name
	} else {
		ic.Name = ref
	}
	if ic.Name == "" {
		ic.Name = p.str("name")
	}
	ic.Glyph = glyphFor(ic.Name)
	return ic
}

func glyphFor(name string) string {
	key := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), "icon")
	if g, ok := iconGlyphs[key]; ok {
		return g
	}
	for k, g := range iconGlyphs {
		if key != "" && strings.HasPrefix(key, k) {
			return g
		}
	}
	return fallbackGlyph
}

func segmentedOf(p props) SegmentedControl {
	opts := p.labels("options")
	if len(opts) == 0 {
		opts = p.labels("items")
	}
	sel := -1
	if v := p.str("value"); v != "" {
		for i, o := range opts {
			if o == v {
				sel = i
				break
			}
		}
	}
	if sel < 0 {
		sel = p.integer(0, "selected", "selectedIndex")
	}
	return SegmentedControl{Options: opts, Selected: clamp(sel, 0, max(len(opts)-1, 0))}
}

func timelineOf(p props) Timeline {
	raw := p.list("items")
	if len(raw) == 0 {
		raw = p.list("events")
	}
	var t Timeline
	for _, v := range raw {
		if m, ok := v.(map[string]any); ok {
			pp := props(m)
			t.Items = append(t.Items, TimelineItem{
				Title:  pp.str("title", "label", "name"),
				When:   pp.str("date", "time", "when"),
				Detail: pp.str("description", "text", "detail"),
			})
			continue
		}
		if s := labelOf(v); s != "" {
			t.Items = append(t.Items, TimelineItem{Title: s})
		}
	}
	return t
}

func chartOf(p props) Chart {
	c := Chart{
		Type:  strings.ToLower(p.or("bar", "chartType", "type", "variant")),
		Title: p.str("title", "label"),
	}
	for _, v := range p.list("data") {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		pp := props(m)
		val, _ := pp.number("value", "y", "count")
		c.Points = append(c.Points, DataPoint{Label: pp.str("label", "name", "x"), Value: val})
	}
	if len(c.Points) == 0 {
		labels, values := p.labels("labels"), p.list("values")
		for i, l := range labels {
			var val float64
			if i < len(values) {
				val, _ = props{"v": values[i]}.number("v")
			}
			c.Points = append(c.Points, DataPoint{Label: l, Value: val})
		}
	}
	return c
}

func progressOf(p props) ProgressBar {
	v, _ := p.number("value", "progress", "percent")
	if m, ok := p.number("max"); ok && m > 0 {
		v = v / m * 100
	}
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return ProgressBar{Label: p.str("label"), Percent: v}
}

// groupName keeps radio inputs of one node in one group.
func groupName(n *uidoc.Node, path string) string {
	if n.ID != "" {
		return n.ID
	}
	return path
}

func isOneOf(s string, options ...string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}
