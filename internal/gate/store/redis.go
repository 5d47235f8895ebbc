package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"surety/pkg/platform/sentinel"
)

// DefaultKey is the Redis key holding the operating flag.
const DefaultKey = "surety:operational"

// RedisStore keeps the flag in Redis so every replica shares one switch.
// A missing key reads as operational.
type RedisStore struct {
	client redis.Cmdable
	key    string
}

func NewRedis(client redis.Cmdable) *RedisStore {
	return NewRedisWithKey(client, DefaultKey)
}

func NewRedisWithKey(client redis.Cmdable, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Operational(ctx context.Context) (bool, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("read operating flag: %w: %w", sentinel.ErrUnavailable, err)
	}
	switch val {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, fmt.Errorf("operating flag has unexpected value %q: %w", val, sentinel.ErrInvalidState)
	}
}

func (s *RedisStore) SetOperational(ctx context.Context, operational bool) error {
	val := "0"
	if operational {
		val = "1"
	}
	if err := s.client.Set(ctx, s.key, val, 0).Err(); err != nil {
		return fmt.Errorf("write operating flag: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}
