package uidoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "https://nlui.local/schema/ui-document.schema.json"

// documentSchema is the grammar of a UiDocument. props is any mapping and kind
// any non-empty string: unknown kinds are legal and reported by Diagnose.
const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "` + schemaURL + `",
  "type": "object",
  "required": ["version", "title", "tree"],
  "properties": {
    "version": {"const": "` + Version + `"},
    "title": {"type": "string"},
    "tree": {"$ref": "#/$defs/node"}
  },
  "$defs": {
    "node": {
      "type": "object",
      "anyOf": [{"required": ["kind"]}, {"required": ["type"]}],
      "properties": {
        "kind": {"type": "string", "minLength": 1},
        "type": {"type": "string", "minLength": 1},
        "props": {"type": ["object", "null"]},
        "children": {
          "type": ["array", "null"],
          "items": {"$ref": "#/$defs/node"}
        },
        "id": {"type": "string"},
        "position": {
          "type": ["object", "null"],
          "required": ["x", "y"],
          "properties": {"x": {"type": "number"}, "y": {"type": "number"}}
        },
        "zIndex": {"type": ["integer", "null"]}
      }
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func documentValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(schemaURL, strings.NewReader(documentSchema)); err != nil {
			compileErr = fmt.Errorf("uidoc: load schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Issue is one structural violation, located by a dotted path such as
// "tree.children[0].kind". The document root is "$".
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// SchemaError reports a document that does not match the grammar.
type SchemaError struct {
	Issues []Issue
}

func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		parts[i] = is.Path + ": " + is.Message
	}
	return "invalid UI document: " + strings.Join(parts, "; ")
}

// Parse decodes data and validates it. Malformed JSON is a SchemaError too:
// the producer did not honor the contract either way.
func Parse(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &SchemaError{Issues: []Issue{{Path: "$", Message: "invalid JSON: " + err.Error()}}}
	}
	return Validate(raw)
}

// Validate checks an already-decoded JSON value against the document grammar
// and converts it into a Document. It has no side effects.
func Validate(raw any) (*Document, error) {
	sch, err := documentValidator()
	if err != nil {
		return nil, err
	}
	// Round-trip through JSON so Go-native values (typed slices, ints) reach
	// the validator in their decoded form.
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, &SchemaError{Issues: []Issue{{Path: "$", Message: "not JSON-encodable: " + err.Error()}}}
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var normalized any
	if err := dec.Decode(&normalized); err != nil {
		return nil, &SchemaError{Issues: []Issue{{Path: "$", Message: err.Error()}}}
	}
	if err := sch.Validate(normalized); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return nil, &SchemaError{Issues: flattenIssues(ve)}
		}
		return nil, &SchemaError{Issues: []Issue{{Path: "$", Message: err.Error()}}}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &SchemaError{Issues: []Issue{{Path: "$", Message: err.Error()}}}
	}
	return &doc, nil
}

// flattenIssues collects the leaf causes of a validation error, deduplicated
// and sorted by path.
func flattenIssues(ve *jsonschema.ValidationError) []Issue {
	seen := make(map[Issue]struct{})
	var out []Issue
	var visit func(e *jsonschema.ValidationError)
	visit = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, c := range e.Causes {
				visit(c)
			}
			return
		}
		is := Issue{Path: pointerToPath(e.InstanceLocation), Message: e.Message}
		if _, dup := seen[is]; dup {
			return
		}
		seen[is] = struct{}{}
		out = append(out, is)
	}
	visit(ve)
	if len(out) == 0 {
		out = append(out, Issue{Path: pointerToPath(ve.InstanceLocation), Message: ve.Message})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// pointerToPath turns "/tree/children/0/kind" into "tree.children[0].kind".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return "$"
	}
	var b strings.Builder
	for _, seg := range strings.Split(ptr, "/") {
		seg = strings.ReplaceAll(strings.ReplaceAll(seg, "~1", "/"), "~0", "~")
		if _, err := strconv.Atoi(seg); err == nil {
			b.WriteString("[" + seg + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

// Diagnostic is a non-fatal observation about a valid document.
type Diagnostic struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Diagnose lists nodes whose kind is outside the closed enumeration. Such
// nodes still render, as a visible placeholder.
func Diagnose(doc *Document) []Diagnostic {
	if doc == nil {
		return nil
	}
	var out []Diagnostic
	Walk(doc.Tree, func(n, _ *Node, path string) bool {
		if !n.Kind.Known() {
			out = append(out, Diagnostic{Path: path, Message: fmt.Sprintf("unknown component kind %q", n.Kind)})
		}
		return true
	})
	return out
}
