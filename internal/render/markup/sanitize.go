package markup

import (
	"net/url"
	"strings"
)

// blockedSchemes never reach an href or src.
var blockedSchemes = []string{"javascript:", "vbscript:", "file:"}

// SafeURL returns raw when it is an http(s), mailto, data:image or relative
// URL, and "" otherwise.
func SafeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	lower := strings.ToLower(strings.Join(strings.Fields(s), ""))
	for _, b := range blockedSchemes {
		if strings.HasPrefix(lower, b) {
			return ""
		}
	}
	if strings.HasPrefix(lower, "data:") {
		if strings.HasPrefix(lower, "data:image/") {
			return s
		}
		return ""
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto":
		return s
	}
	return ""
}

// SafeColor accepts #rgb/#rrggbb hex colors and plain color names.
func SafeColor(c string) string {
	c = strings.TrimSpace(c)
	if c == "" || len(c) > 32 {
		return ""
	}
	for i, r := range c {
		switch {
		case r == '#' && i == 0:
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		default:
			return ""
		}
	}
	return c
}
