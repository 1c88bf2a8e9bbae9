package tokenstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists token records in Redis, suitable for server-side
// contexts where multiple processes must see the same credentials.
type RedisStore struct {
	db redis.UniversalClient
}

// NewRedisStore wraps an existing Redis client. The client's lifecycle
// remains owned by the caller.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{db: client}
}

// Get returns ("", nil) for missing keys (redis.Nil is not an error here).
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.db.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.db.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.db.Del(ctx, key).Err()
}
