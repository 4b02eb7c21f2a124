package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nlui/studio/internal/storage"
)

const currentKey = "current"

// SQLiteStore keeps the session as one JSON record in the shared store.
type SQLiteStore struct {
	db storage.Store
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore returns a session store over db.
func NewSQLiteStore(db storage.Store) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load(ctx context.Context) (*State, error) {
	rec, err := s.db.Get(ctx, storage.NSSession, currentKey)
	if err != nil {
		return nil, fmt.Errorf("session: load: %w", err)
	}
	if rec == nil {
		return nil, nil
	}
	var st State
	if err := json.Unmarshal(rec.Value, &st); err != nil {
		return nil, fmt.Errorf("session: decode: %w", err)
	}
	return &st, nil
}

func (s *SQLiteStore) Save(ctx context.Context, st State) error {
	if st.UpdatedAt.IsZero() {
		st.UpdatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := s.db.Put(ctx, storage.Record{Namespace: storage.NSSession, Key: currentKey, Value: data}); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.Delete(ctx, storage.NSSession, currentKey); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}
