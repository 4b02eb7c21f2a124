package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html/atom"
)

func TestSafeURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://cdn.example.com/x.png", "https://cdn.example.com/x.png"},
		{"/static/logo.svg", "/static/logo.svg"},
		{"mailto:hr@example.com", "mailto:hr@example.com"},
		{"data:image/png;base64,AAAA", "data:image/png;base64,AAAA"},
		{"data:text/html,<script>", ""},
		{"javascript:alert(1)", ""},
		{" JaVa script:alert(1)", ""},
		{"ftp://example.com/x", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeURL(tt.in), tt.in)
	}
}

func TestSafeColor(t *testing.T) {
	assert.Equal(t, "#0875e1", SafeColor("#0875e1"))
	assert.Equal(t, "teal", SafeColor("teal"))
	assert.Empty(t, SafeColor("red;background:url(x)"))
}

func TestElDropsEmptyAttributes(t *testing.T) {
	n := El(atom.Button, "class", "btn", "title", "", "disabled", Bool(true), "readonly", Bool(false))
	assert.Equal(t, `<button class="btn" disabled=""></button>`, Render(n))
}

func TestAppendMovesParentedNode(t *testing.T) {
	a, b := El(atom.Div), El(atom.Div)
	kid := Text("x")
	Append(a, kid)
	Append(b, kid, nil)
	assert.Nil(t, a.FirstChild)
	assert.Same(t, kid, b.FirstChild)
}

func TestThumbnail(t *testing.T) {
	out := Render(Thumbnail("https://cdn.example.com/x.png", "x", "thumb", "max-width:48px"))
	assert.Contains(t, out, `src="https://cdn.example.com/x.png"`)
	assert.Contains(t, out, "onerror=")
	assert.Contains(t, out, ImageFallbackGlyph)

	blocked := Render(Thumbnail("javascript:alert(1)", "x", "thumb", ""))
	assert.NotContains(t, blocked, "<img")
	assert.Contains(t, blocked, "display:inline-block")
}
