package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kirillkom/shopping-assistant/internal/core/domain"
)

const defaultTTL = 30 * time.Minute

// Store persists pipeline states in Redis with a per-key TTL. Expiry is the
// eviction policy: an expired session behaves exactly like an unknown one
// and refinement against it falls back to a fresh search.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr, password string, db int, ttl time.Duration) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewWithClient(client, ttl), nil
}

func NewWithClient(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

func (s *Store) Get(ctx context.Context, sessionID string) (*domain.PipelineState, error) {
	payload, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.WrapError(domain.ErrSessionNotFound, "redis session get", err)
	}
	if err != nil {
		return nil, fmt.Errorf("redis session get: %w", err)
	}

	var state domain.PipelineState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("decode session state: %w", err)
	}
	return &state, nil
}

func (s *Store) Put(ctx context.Context, state domain.PipelineState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(state.SessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis session put: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}
