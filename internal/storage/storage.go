// Package storage provides the namespaced record store behind templates and
// session state.
//
// The Store interface is the primary abstraction. SQLiteStore is the default
// implementation using pure-Go SQLite (modernc.org/sqlite).
package storage

import (
	"context"
	"time"
)

// Namespaces used by this module.
const (
	NSTemplates = "templates"
	NSSession   = "session"
)

// Record is a stored value with metadata. Value is usually JSON.
type Record struct {
	Namespace string            `json:"namespace"`
	Key       string            `json:"key"`
	Value     []byte            `json:"value"`
	Labels    map[string]string `json:"labels,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Store is the persistent storage interface. Keys are unique per namespace.
type Store interface {
	// Get retrieves a record. Returns nil, nil if not found.
	Get(ctx context.Context, ns, key string) (*Record, error)

	// Put stores a record (upsert). CreatedAt survives updates.
	Put(ctx context.Context, rec Record) error

	// Delete removes a record and reports whether it existed.
	Delete(ctx context.Context, ns, key string) (bool, error)

	// List returns records of a namespace whose key has prefix, ordered by key.
	List(ctx context.Context, ns, prefix string, limit int) ([]Record, error)

	// Search runs a full-text query over keys, values and labels of a namespace.
	Search(ctx context.Context, ns, query string, limit int) ([]Record, error)

	// Count returns the number of records in a namespace; "" counts all.
	Count(ctx context.Context, ns string) (int, error)

	// Close shuts down the store.
	Close() error
}
