package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nlui/studio/internal/observability"
	"github.com/nlui/studio/internal/storage"
)

const listLimit = 10000

// Store keeps templates in the storage namespace storage.NSTemplates and
// notifies subscribers of every change.
type Store struct {
	db  storage.Store
	log *observability.Logger
	now func() time.Time

	mu        sync.RWMutex
	listeners map[int]func(Event)
	nextID    int
}

// NewStore creates a Store over db.
func NewStore(db storage.Store, log *observability.Logger) *Store {
	return &Store{
		db:        db,
		log:       observability.OrNop(log).Component("templates"),
		now:       time.Now,
		listeners: make(map[int]func(Event)),
	}
}

// SeedDefaults writes the built-in catalog when the namespace is empty.
// It returns the number of templates written.
func (s *Store) SeedDefaults(ctx context.Context) (int, error) {
	n, err := s.db.Count(ctx, storage.NSTemplates)
	if err != nil {
		return 0, fmt.Errorf("templates: seed: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	for _, t := range Defaults() {
		if err := s.put(ctx, t); err != nil {
			return 0, fmt.Errorf("templates: seed %s: %w", t.ID, err)
		}
	}
	s.log.Info("seeded built-in templates", "count", len(Defaults()))
	return len(Defaults()), nil
}

// List returns every template ordered by title, then id.
func (s *Store) List(ctx context.Context) ([]Template, error) {
	recs, err := s.db.List(ctx, storage.NSTemplates, "", listLimit)
	if err != nil {
		return nil, fmt.Errorf("templates: list: %w", err)
	}
	out, err := decodeAll(recs)
	if err != nil {
		return nil, err
	}
	sortTemplates(out)
	return out, nil
}

// Get returns one template or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Template, error) {
	rec, err := s.db.Get(ctx, storage.NSTemplates, id)
	if err != nil {
		return Template{}, fmt.Errorf("templates: get %s: %w", id, err)
	}
	if rec == nil {
		return Template{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return decode(*rec)
}

// Add stores t. An empty ID gets a generated one; an existing ID is replaced.
func (s *Store) Add(ctx context.Context, t Template) (Template, error) {
	if err := t.Validate(); err != nil {
		return Template{}, err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Version == "" {
		t.Version = "1.0"
	}

	op := OpAdded
	if prev, err := s.Get(ctx, t.ID); err == nil {
		op = OpUpdated
		t.CreatedAt = prev.CreatedAt
	}
	t.BuiltIn = false
	if err := s.put(ctx, t); err != nil {
		return Template{}, fmt.Errorf("templates: add %s: %w", t.ID, err)
	}
	saved, err := s.Get(ctx, t.ID)
	if err != nil {
		return Template{}, err
	}
	s.notify(Event{Op: op, ID: t.ID})
	return saved, nil
}

// Update merges p into the template with id.
func (s *Store) Update(ctx context.Context, id string, p Patch) (Template, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return Template{}, err
	}
	next := p.Apply(cur)
	if err := next.Validate(); err != nil {
		return Template{}, err
	}
	if err := s.put(ctx, next); err != nil {
		return Template{}, fmt.Errorf("templates: update %s: %w", id, err)
	}
	saved, err := s.Get(ctx, id)
	if err != nil {
		return Template{}, err
	}
	s.notify(Event{Op: OpUpdated, ID: id})
	return saved, nil
}

// Remove deletes the template with id.
func (s *Store) Remove(ctx context.Context, id string) error {
	ok, err := s.db.Delete(ctx, storage.NSTemplates, id)
	if err != nil {
		return fmt.Errorf("templates: remove %s: %w", id, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.notify(Event{Op: OpRemoved, ID: id})
	return nil
}

// Search returns templates matching every term of query (full text over
// title, summary, tags and prompt) and, when tag is set, carrying that tag.
// An empty query lists everything.
func (s *Store) Search(ctx context.Context, query, tag string) ([]Template, error) {
	var out []Template
	if strings.TrimSpace(query) == "" {
		all, err := s.List(ctx)
		if err != nil {
			return nil, err
		}
		out = all
	} else {
		recs, err := s.db.Search(ctx, storage.NSTemplates, query, listLimit)
		if err != nil {
			return nil, fmt.Errorf("templates: search: %w", err)
		}
		if out, err = decodeAll(recs); err != nil {
			return nil, err
		}
	}

	if tag == "" {
		return out, nil
	}
	filtered := out[:0]
	for _, t := range out {
		if t.HasTag(tag) {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// Tags returns the distinct tags in use, sorted.
func (s *Store) Tags(ctx context.Context) ([]string, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var tags []string
	for _, t := range all {
		for _, tag := range t.Tags {
			if _, ok := seen[strings.ToLower(tag)]; ok {
				continue
			}
			seen[strings.ToLower(tag)] = struct{}{}
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// Subscribe registers fn for change events and returns its unsubscribe func.
// fn runs synchronously on the mutating goroutine.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) notify(ev Event) {
	s.mu.RLock()
	fns := make([]func(Event), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	s.log.Debug("template changed", "op", ev.Op, "id", ev.ID)
	for _, fn := range fns {
		fn(ev)
	}
}

func (s *Store) put(ctx context.Context, t Template) error {
	now := s.now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return s.db.Put(ctx, storage.Record{
		Namespace: storage.NSTemplates,
		Key:       t.ID,
		Value:     data,
		Labels:    map[string]string{"tags": strings.Join(t.Tags, " ")},
		CreatedAt: t.CreatedAt,
	})
}

func decode(rec storage.Record) (Template, error) {
	var t Template
	if err := json.Unmarshal(rec.Value, &t); err != nil {
		return Template{}, fmt.Errorf("templates: decode %s: %w", rec.Key, err)
	}
	return t, nil
}

func decodeAll(recs []storage.Record) ([]Template, error) {
	out := make([]Template, 0, len(recs))
	for _, rec := range recs {
		t, err := decode(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func sortTemplates(ts []Template) {
	sort.SliceStable(ts, func(i, j int) bool {
		a, b := strings.ToLower(ts[i].Title), strings.ToLower(ts[j].Title)
		if a != b {
			return a < b
		}
		return ts[i].ID < ts[j].ID
	})
}
