package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nlui/studio/internal/uidoc"
)

// Hash fields of the session key.
const (
	fieldPrompt    = "last-prompt"
	fieldResponse  = "last-response"
	fieldUpdatedAt = "updated-at"
)

// RedisStore keeps the session in one Redis hash so several server
// processes can share it.
type RedisStore struct {
	client *redis.Client
	key    string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a store backed by Redis at addr.
func NewRedisStore(addr, password string, db int) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisStoreWithClient(rdb, "nlui:session")
}

// NewRedisStoreWithClient uses an existing client and hash key.
func NewRedisStoreWithClient(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Load(ctx context.Context) (*State, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("session: redis load: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	st := &State{Prompt: fields[fieldPrompt]}
	if raw := fields[fieldResponse]; raw != "" {
		var doc uidoc.Document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("session: decode document: %w", err)
		}
		st.Document = &doc
	}
	if ts := fields[fieldUpdatedAt]; ts != "" {
		st.UpdatedAt, _ = time.Parse(time.RFC3339Nano, ts)
	}
	return st, nil
}

func (s *RedisStore) Save(ctx context.Context, st State) error {
	if st.UpdatedAt.IsZero() {
		st.UpdatedAt = time.Now().UTC()
	}
	response := ""
	if st.Document != nil {
		data, err := json.Marshal(st.Document)
		if err != nil {
			return fmt.Errorf("session: encode document: %w", err)
		}
		response = string(data)
	}
	err := s.client.HSet(ctx, s.key,
		fieldPrompt, st.Prompt,
		fieldResponse, response,
		fieldUpdatedAt, st.UpdatedAt.UTC().Format(time.RFC3339Nano),
	).Err()
	if err != nil {
		return fmt.Errorf("session: redis save: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("session: redis clear: %w", err)
	}
	return nil
}

// Close releases the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
