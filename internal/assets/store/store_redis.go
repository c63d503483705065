package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"govassets/internal/assets/models"
	id "govassets/pkg/domain"
	"govassets/pkg/platform/sentinel"
)

const (
	// Redis key prefix for realm snapshots
	stateKeyPrefix = "govassets:state:"

	defaultStateTTL = 10 * time.Minute
)

// RedisStore shares snapshots between instances. Entries expire so a stale
// snapshot is eventually rediscovered rather than served forever.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisOption func(*RedisStore)

func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func NewRedis(client *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, ttl: defaultStateTTL}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func stateKey(realm id.PublicKey) string {
	return stateKeyPrefix + realm.String()
}

func (s *RedisStore) Get(ctx context.Context, realm id.PublicKey) (*models.State, error) {
	raw, err := s.client.Get(ctx, stateKey(realm)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("state for realm %s: %w", realm, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get state for realm %s: %w: %w", realm, sentinel.ErrUnavailable, err)
	}
	var state models.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode state for realm %s: %w", realm, err)
	}
	return &state, nil
}

func (s *RedisStore) Save(ctx context.Context, state *models.State) error {
	if state == nil {
		return fmt.Errorf("state is required")
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := s.client.Set(ctx, stateKey(state.Realm.Pubkey), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save state for realm %s: %w: %w", state.Realm.Pubkey, sentinel.ErrUnavailable, err)
	}
	return nil
}
