// Package templates is the Template Store: named prompt snippets that seed
// the prompt composer.
package templates

import (
	"errors"
	"strings"
	"time"
)

// Errors returned by the store.
var (
	ErrNotFound = errors.New("templates: not found")
	ErrInvalid  = errors.New("templates: invalid template")
)

// Template is one catalog entry. Prompt is the insertable text; the rest
// is display and search metadata.
type Template struct {
	ID         string    `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	Summary    string    `json:"summary,omitempty" yaml:"summary,omitempty"`
	Tags       []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Components []string  `json:"components,omitempty" yaml:"components,omitempty"`
	Prompt     string    `json:"prompt" yaml:"prompt"`
	Version    string    `json:"version,omitempty" yaml:"version,omitempty"`
	BuiltIn    bool      `json:"builtIn,omitempty" yaml:"-"`
	CreatedAt  time.Time `json:"createdAt" yaml:"-"`
	UpdatedAt  time.Time `json:"updatedAt" yaml:"-"`
}

// Validate reports a template missing its title or prompt.
func (t Template) Validate() error {
	var missing []string
	if strings.TrimSpace(t.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(t.Prompt) == "" {
		missing = append(missing, "prompt")
	}
	if len(missing) > 0 {
		return errors.Join(ErrInvalid, errors.New("missing "+strings.Join(missing, ", ")))
	}
	return nil
}

// HasTag reports whether t carries tag, case-insensitively.
func (t Template) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if strings.EqualFold(have, tag) {
			return true
		}
	}
	return false
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Title      *string   `json:"title,omitempty"`
	Summary    *string   `json:"summary,omitempty"`
	Tags       *[]string `json:"tags,omitempty"`
	Components *[]string `json:"components,omitempty"`
	Prompt     *string   `json:"prompt,omitempty"`
	Version    *string   `json:"version,omitempty"`
}

// Apply returns t with the patch merged in.
func (p Patch) Apply(t Template) Template {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Summary != nil {
		t.Summary = *p.Summary
	}
	if p.Tags != nil {
		t.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.Components != nil {
		t.Components = append([]string(nil), (*p.Components)...)
	}
	if p.Prompt != nil {
		t.Prompt = *p.Prompt
	}
	if p.Version != nil {
		t.Version = *p.Version
	}
	return t
}

// Op names a store mutation.
type Op string

const (
	OpAdded   Op = "added"
	OpUpdated Op = "updated"
	OpRemoved Op = "removed"
)

// Event is delivered to subscribers after every mutation.
type Event struct {
	Op Op     `json:"op"`
	ID string `json:"id"`
}
