// Package session persists what survives a reload: the last prompt and the
// last good document.
package session

import (
	"context"
	"time"

	"github.com/nlui/studio/internal/uidoc"
)

// State is the persisted session.
type State struct {
	Prompt    string          `json:"prompt"`
	Document  *uidoc.Document `json:"document,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Store loads and saves the single session state.
type Store interface {
	// Load returns the saved state, or nil when nothing was saved.
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, st State) error
	Clear(ctx context.Context) error
}
