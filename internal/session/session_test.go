package session

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlui/studio/internal/storage"
	"github.com/nlui/studio/internal/uidoc"
)

func sampleState() State {
	return State{
		Prompt: "expense report",
		Document: &uidoc.Document{
			Version: uidoc.Version,
			Title:   "Expenses",
			Tree: &uidoc.Node{
				Kind: uidoc.KindPage,
				ID:   "root-Page-Page",
				Children: []*uidoc.Node{{
					Kind:     uidoc.KindButton,
					ID:       "root-0-Button-Save",
					Props:    map[string]any{"text": "Save"},
					Position: &uidoc.Position{X: 16, Y: 24},
				}},
			},
		},
		UpdatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// exerciseStore runs the shared contract against any Store.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.Clear(ctx))
	st, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, st)

	want := sampleState()
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.Prompt, got.Prompt)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt))
	require.NotNil(t, got.Document)
	assert.Equal(t, "Expenses", got.Document.Title)
	btn := got.Document.Tree.Children[0]
	assert.Equal(t, "root-0-Button-Save", btn.ID)
	assert.Equal(t, &uidoc.Position{X: 16, Y: 24}, btn.Position)

	// Prompt-only save replaces the document too.
	require.NoError(t, s.Save(ctx, State{Prompt: "draft"}))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "draft", got.Prompt)
	assert.Nil(t, got.Document)
	assert.False(t, got.UpdatedAt.IsZero())

	require.NoError(t, s.Clear(ctx))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStore(t *testing.T) {
	db, err := storage.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer db.Close()
	exerciseStore(t, NewSQLiteStore(db))
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("NLUI_REDIS_ADDR")
	if addr == "" {
		t.Skip("NLUI_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	s := NewRedisStoreWithClient(client, fmt.Sprintf("nlui:test:%d", time.Now().UnixNano()))
	defer s.Close()
	require.NoError(t, s.Ping(context.Background()))
	exerciseStore(t, s)
}
