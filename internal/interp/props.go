package interp

import (
	"encoding/json"
	"strconv"
	"strings"
)

// props is the open mapping of a node, read through lenient accessors. None of
// them fail: a value of the wrong shape reads as absent.
type props map[string]any

// str returns the first key holding a non-blank scalar, as text.
func (p props) str(keys ...string) string {
	for _, k := range keys {
		if s, ok := scalar(p[k]); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// or returns the first non-blank of str(keys...) and def.
func (p props) or(def string, keys ...string) string {
	if s := p.str(keys...); s != "" {
		return s
	}
	return def
}

func (p props) boolean(key string) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	case float64:
		return v != 0
	case json.Number:
		f, _ := v.Float64()
		return f != 0
	}
	return false
}

func (p props) number(keys ...string) (float64, bool) {
	for _, k := range keys {
		switch v := p[k].(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return f, true
			}
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func (p props) integer(def int, keys ...string) int {
	if f, ok := p.number(keys...); ok {
		return int(f)
	}
	return def
}

func (p props) list(key string) []any {
	switch v := p[key].(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	}
	return nil
}

// labels reads a list whose entries are strings or label-bearing objects.
func (p props) labels(key string) []string {
	var out []string
	for _, v := range p.list(key) {
		if s := labelOf(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// scalar formats strings, numbers and booleans as text.
func scalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

// labelOf reads a display label from a scalar or a {label|text|title|name} object.
func labelOf(v any) string {
	if s, ok := scalar(v); ok {
		return strings.TrimSpace(s)
	}
	if m, ok := v.(map[string]any); ok {
		return props(m).str("label", "text", "title", "name", "value")
	}
	return ""
}

// cssLength turns 16 into "16px" and passes strings through.
func cssLength(v any, def string) string {
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			if _, err := strconv.ParseFloat(s, 64); err == nil {
				return s + "px"
			}
			return s
		}
	case float64, int, json.Number:
		s, _ := scalar(t)
		return s + "px"
	}
	return def
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
