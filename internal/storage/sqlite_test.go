package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_PutGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, Record{
		Namespace: NSTemplates,
		Key:       "spot-bonus",
		Value:     []byte(`{"title":"Spot Bonus"}`),
		Labels:    map[string]string{"tags": "compensation"},
	}))

	rec, err := s.Get(ctx, NSTemplates, "spot-bonus")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, `{"title":"Spot Bonus"}`, string(rec.Value))
	assert.Equal(t, "compensation", rec.Labels["tags"])
	assert.False(t, rec.CreatedAt.IsZero())

	missing, err := s.Get(ctx, NSSession, "spot-bonus")
	require.NoError(t, err)
	assert.Nil(t, missing, "namespaces are disjoint")
}

func TestSQLiteStore_PutRequiresKey(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.Put(context.Background(), Record{Namespace: NSSession}))
	assert.Error(t, s.Put(context.Background(), Record{Key: "k"}))
}

func TestSQLiteStore_UpsertKeepsCreatedAt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, s.Put(ctx, Record{Namespace: "n", Key: "k", Value: []byte("v1"), CreatedAt: created}))
	require.NoError(t, s.Put(ctx, Record{Namespace: "n", Key: "k", Value: []byte("v2")}))

	rec, err := s.Get(ctx, "n", "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(rec.Value))
	assert.True(t, rec.CreatedAt.Equal(created))
	assert.True(t, rec.UpdatedAt.After(created))
}

func TestSQLiteStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, Record{Namespace: "n", Key: "k", Value: []byte("v")}))

	ok, err := s.Delete(ctx, "n", "k")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Delete(ctx, "n", "k")
	require.NoError(t, err)
	assert.False(t, ok)

	rec, _ := s.Get(ctx, "n", "k")
	assert.Nil(t, rec)
}

func TestSQLiteStore_ListPrefix(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, k := range []string{"b-2", "a_1", "b-1", "ab"} {
		require.NoError(t, s.Put(ctx, Record{Namespace: "n", Key: k, Value: []byte(k)}))
	}
	require.NoError(t, s.Put(ctx, Record{Namespace: "other", Key: "b-3", Value: []byte("x")}))

	recs, err := s.List(ctx, "n", "b-", 0)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "b-1", recs[0].Key)
	assert.Equal(t, "b-2", recs[1].Key)

	recs, err = s.List(ctx, "n", "a_", 0)
	require.NoError(t, err)
	require.Len(t, recs, 1, "underscore is literal")
	assert.Equal(t, "a_1", recs[0].Key)

	recs, err = s.List(ctx, "n", "", 2)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestSQLiteStore_Search(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, Record{Namespace: NSTemplates, Key: "billing", Value: []byte(`{"title":"Project Billing Review"}`)}))
	require.NoError(t, s.Put(ctx, Record{Namespace: NSTemplates, Key: "card", Value: []byte(`{"title":"Credit Card Request"}`), Labels: map[string]string{"tags": "finance"}}))
	require.NoError(t, s.Put(ctx, Record{Namespace: NSSession, Key: "current", Value: []byte(`{"prompt":"billing"}`)}))

	recs, err := s.Search(ctx, NSTemplates, "bill", 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "billing", recs[0].Key)

	recs, err = s.Search(ctx, NSTemplates, "credit request", 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "card", recs[0].Key)

	recs, err = s.Search(ctx, NSTemplates, "finance", 10)
	require.NoError(t, err)
	assert.Len(t, recs, 1, "labels are indexed")

	recs, err = s.Search(ctx, NSTemplates, `billing" OR "card`, 10)
	require.NoError(t, err)
	assert.Empty(t, recs, "quotes are escaped")

	recs, err = s.Search(ctx, NSTemplates, "   ", 10)
	require.NoError(t, err)
	assert.Nil(t, recs)
}

func TestSQLiteStore_SearchAfterUpdateAndDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, Record{Namespace: "n", Key: "k", Value: []byte("alpha")}))
	require.NoError(t, s.Put(ctx, Record{Namespace: "n", Key: "k", Value: []byte("beta")}))

	recs, _ := s.Search(ctx, "n", "alpha", 10)
	assert.Empty(t, recs)
	recs, _ = s.Search(ctx, "n", "beta", 10)
	assert.Len(t, recs, 1)

	_, err := s.Delete(ctx, "n", "k")
	require.NoError(t, err)
	recs, _ = s.Search(ctx, "n", "beta", 10)
	assert.Empty(t, recs)
}

func TestSQLiteStore_Count(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Put(ctx, Record{Namespace: "a", Key: fmt.Sprint(i), Value: []byte("x")}))
	}
	require.NoError(t, s.Put(ctx, Record{Namespace: "b", Key: "0", Value: []byte("x")}))

	n, err := s.Count(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = s.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestSQLiteStore_PersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nlui.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, Record{Namespace: NSSession, Key: "current", Value: []byte(`{}`)}))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()
	rec, err := s.Get(ctx, NSSession, "current")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "{}", string(rec.Value))
}
