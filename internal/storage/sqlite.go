package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const timeLayout = time.RFC3339Nano

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) a SQLite-backed store.
// Use ":memory:" for an in-memory database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	// One connection: an in-memory database exists per connection, and
	// writers are serialized anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS records (
		ns         TEXT NOT NULL,
		key        TEXT NOT NULL,
		value      TEXT NOT NULL,
		labels     TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (ns, key)
	);
	CREATE VIRTUAL TABLE IF NOT EXISTS records_fts USING fts5(
		key, value, labels, content='records', content_rowid='rowid'
	);
	CREATE TRIGGER IF NOT EXISTS records_ai AFTER INSERT ON records BEGIN
		INSERT INTO records_fts(rowid, key, value, labels) VALUES (new.rowid, new.key, new.value, new.labels);
	END;
	CREATE TRIGGER IF NOT EXISTS records_ad AFTER DELETE ON records BEGIN
		INSERT INTO records_fts(records_fts, rowid, key, value, labels) VALUES ('delete', old.rowid, old.key, old.value, old.labels);
	END;
	CREATE TRIGGER IF NOT EXISTS records_au AFTER UPDATE ON records BEGIN
		INSERT INTO records_fts(records_fts, rowid, key, value, labels) VALUES ('delete', old.rowid, old.key, old.value, old.labels);
		INSERT INTO records_fts(rowid, key, value, labels) VALUES (new.rowid, new.key, new.value, new.labels);
	END;`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var rec Record
	var value, labels, createdAt, updatedAt string
	if err := row.Scan(&rec.Namespace, &rec.Key, &value, &labels, &createdAt, &updatedAt); err != nil {
		return Record{}, err
	}
	rec.Value = []byte(value)
	rec.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	rec.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
	if labels != "" {
		_ = json.Unmarshal([]byte(labels), &rec.Labels)
	}
	return rec, nil
}

const selectColumns = "SELECT r.ns, r.key, r.value, r.labels, r.created_at, r.updated_at FROM records r"

// Get retrieves a record by namespace and key.
func (s *SQLiteStore) Get(ctx context.Context, ns, key string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, err := scanRecord(s.db.QueryRowContext(ctx, selectColumns+" WHERE r.ns = ? AND r.key = ?", ns, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", ns, key, err)
	}
	return &rec, nil
}

// Put stores or updates a record.
func (s *SQLiteStore) Put(ctx context.Context, rec Record) error {
	if rec.Namespace == "" || rec.Key == "" {
		return fmt.Errorf("put: namespace and key are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}

	labels := ""
	if len(rec.Labels) > 0 {
		data, _ := json.Marshal(rec.Labels)
		labels = string(data)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (ns, key, value, labels, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(ns, key) DO UPDATE SET
			value = excluded.value,
			labels = excluded.labels,
			updated_at = excluded.updated_at`,
		rec.Namespace, rec.Key, string(rec.Value), labels,
		rec.CreatedAt.UTC().Format(timeLayout), now.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", rec.Namespace, rec.Key, err)
	}
	return nil
}

// Delete removes a record.
func (s *SQLiteStore) Delete(ctx context.Context, ns, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE ns = ? AND key = ?", ns, key)
	if err != nil {
		return false, fmt.Errorf("delete %s/%s: %w", ns, key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete %s/%s: %w", ns, key, err)
	}
	return n > 0, nil
}

// List returns records whose key has prefix.
func (s *SQLiteStore) List(ctx context.Context, ns, prefix string, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx,
		selectColumns+` WHERE r.ns = ? AND r.key LIKE ? ESCAPE '\' ORDER BY r.key LIMIT ?`,
		ns, escapeLike(prefix)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("list %s/%q: %w", ns, prefix, err)
	}
	return collect(rows)
}

// Search performs full-text search. Every term must match, as a prefix.
func (s *SQLiteStore) Search(ctx context.Context, ns, query string, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	ftsQuery := ftsTerms(query)
	if ftsQuery == "" {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		selectColumns+`
		JOIN records_fts f ON r.rowid = f.rowid
		WHERE records_fts MATCH ? AND r.ns = ?
		ORDER BY rank
		LIMIT ?`,
		ftsQuery, ns, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search %s/%q: %w", ns, query, err)
	}
	return collect(rows)
}

func collect(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()
	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the number of stored records.
func (s *SQLiteStore) Count(ctx context.Context, ns string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	var err error
	if ns == "" {
		err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&count)
	} else {
		err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records WHERE ns = ?", ns).Scan(&count)
	}
	return count, err
}

// Close shuts down the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ftsTerms quotes each whitespace-separated term as an FTS5 prefix phrase,
// so user input cannot inject query syntax.
func ftsTerms(query string) string {
	terms := strings.Fields(query)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"*`
	}
	return strings.Join(terms, " ")
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
