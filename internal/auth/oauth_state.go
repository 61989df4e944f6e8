package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// StateStore keeps OAuth state values between the redirect and the callback.
type StateStore interface {
	Save(ctx context.Context, state string, ttl time.Duration) error
	// Consume deletes state and reports whether it was present.
	Consume(ctx context.Context, state string) (bool, error)
}

// RedisStateStore stores state values as expiring Redis keys.
type RedisStateStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStateStore wraps client.
func NewRedisStateStore(client *redis.Client) *RedisStateStore {
	return &RedisStateStore{client: client, prefix: "oauth:state:"}
}

func (s *RedisStateStore) Save(ctx context.Context, state string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+state, "1", ttl).Err()
}

func (s *RedisStateStore) Consume(ctx context.Context, state string) (bool, error) {
	n, err := s.client.Del(ctx, s.prefix+state).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
