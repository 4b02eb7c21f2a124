// Package markup holds the small element-building vocabulary both render
// backends share, on top of golang.org/x/net/html.
package markup

import (
	"bytes"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// El builds an element. kv lists attribute keys and values in pairs; pairs
// with an empty value are dropped. Boolean attributes such as disabled are
// set by any non-empty value (see Bool) and rendered bare.
func El(a atom.Atom, kv ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(kv); i += 2 {
		key, val := kv[i], kv[i+1]
		if val == "" {
			continue
		}
		if booleanAttr[key] {
			val = ""
		}
		n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
	}
	return n
}

var booleanAttr = map[string]bool{
	"disabled": true, "checked": true, "readonly": true, "required": true,
	"selected": true, "hidden": true,
}

// Bool is the El value for a boolean attribute.
func Bool(on bool) string {
	if on {
		return "true"
	}
	return ""
}

// Text is a text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Append adds kids to parent in order, skipping nils. A kid that already has
// a parent is moved.
func Append(parent *html.Node, kids ...*html.Node) *html.Node {
	for _, k := range kids {
		if k == nil {
			continue
		}
		if k.Parent != nil {
			k.Parent.RemoveChild(k)
		}
		parent.AppendChild(k)
	}
	return parent
}

// Wrap builds an element with a class and children.
func Wrap(a atom.Atom, class string, kids ...*html.Node) *html.Node {
	return Append(El(a, "class", class), kids...)
}

// Label builds an element holding a single text node.
func Label(a atom.Atom, class, text string) *html.Node {
	return Append(El(a, "class", class), Text(text))
}

// SetAttr sets or replaces one attribute.
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// Attr returns the value of key, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// Styles joins CSS declarations, skipping empty ones.
func Styles(decls ...string) string {
	var parts []string
	for _, d := range decls {
		if d = strings.TrimSpace(d); d != "" {
			parts = append(parts, strings.TrimSuffix(d, ";"))
		}
	}
	return strings.Join(parts, "; ")
}

// Render serializes n. Errors from html.Render can only come from the writer,
// and bytes.Buffer does not fail.
func Render(n *html.Node) string {
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	_ = html.Render(&buf, n)
	return buf.String()
}

// ImageFallbackGlyph is shown when a thumbnail fails to load.
const ImageFallbackGlyph = "🖼️"

// imageOnError hides the image and reveals the sibling fallback glyph.
const imageOnError = "this.style.display='none';this.nextElementSibling.style.display='inline-block'"

// Thumbnail is a bounded image followed by a hidden fallback glyph revealed
// by the image's onerror handler. Unsafe URLs render the glyph directly.
func Thumbnail(src, alt, class, style string) *html.Node {
	wrap := El(atom.Span, "class", class, "data-thumbnail", "true")
	fallback := Append(El(atom.Span, "class", "thumbnail-fallback", "role", "img", "aria-label", alt,
		"style", "display:none"), Text(ImageFallbackGlyph))
	safe := SafeURL(src)
	if safe == "" {
		SetAttr(fallback, "style", "display:inline-block")
		return Append(wrap, fallback)
	}
	img := El(atom.Img, "src", safe, "alt", alt, "loading", "lazy", "style", style, "onerror", imageOnError)
	return Append(wrap, img, fallback)
}

// OverlayStyle turns a drag position and stacking order into CSS.
func OverlayStyle(x, y float64, positioned bool, z *int) string {
	var decls []string
	if positioned {
		decls = append(decls, "transform:translate("+px(x)+","+px(y)+")")
	}
	if z != nil {
		decls = append(decls, "position:relative", "z-index:"+strconv.Itoa(*z))
	}
	return Styles(decls...)
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
