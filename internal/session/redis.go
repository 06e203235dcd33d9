package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Store backed by Redis. The SET with expiry gives the
// atomic-overwrite semantics the single-slot record relies on.
type RedisStore struct {
	rc *redis.Client
}

// NewRedisStore returns a Store using the given Redis client.
func NewRedisStore(rc *redis.Client) *RedisStore {
	return &RedisStore{rc: rc}
}

func (s *RedisStore) Set(ctx context.Context, userID, token string, ttl time.Duration) error {
	if err := s.rc.Set(ctx, Key(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("refresh record set: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, userID string) (string, bool, error) {
	val, err := s.rc.Get(ctx, Key(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, fmt.Errorf("refresh record get: %w", err)
	}
	return val, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	if err := s.rc.Del(ctx, Key(userID)).Err(); err != nil {
		return fmt.Errorf("refresh record delete: %w", err)
	}
	return nil
}
