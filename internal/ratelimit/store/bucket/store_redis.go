package bucket

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"surety/internal/ratelimit/models"
	"surety/pkg/platform/sentinel"
)

// slidingWindowScript trims the window, then admits the request when there is
// room. Scores are unix milliseconds. Returns {allowed, remaining, oldest}.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
if count < limit then
	redis.call('ZADD', key, now, ARGV[4])
	redis.call('PEXPIRE', key, window)
	count = count + 1
	local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
	return {1, limit - count, tonumber(oldest[2])}
end
local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
return {0, 0, tonumber(oldest[2])}
`)

// RedisBucketStore keeps caller windows in Redis sorted sets so limits hold
// across server instances.
type RedisBucketStore struct {
	client redis.Cmdable
	now    func() time.Time
}

func NewRedisBucketStore(client redis.Cmdable) *RedisBucketStore {
	return &RedisBucketStore{client: client, now: time.Now}
}

func (s *RedisBucketStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	now := s.now()
	vals, err := slidingWindowScript.Run(ctx, s.client, []string{key},
		now.UnixMilli(), window.Milliseconds(), limit, uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("run rate limit script: %w: %w", sentinel.ErrUnavailable, err)
	}
	if len(vals) != 3 {
		return nil, fmt.Errorf("rate limit script returned %d values: %w", len(vals), sentinel.ErrInvalidState)
	}

	resetAt := time.UnixMilli(vals[2]).Add(window)
	result := &models.RateLimitResult{
		Allowed:   vals[0] == 1,
		Limit:     limit,
		Remaining: int(vals[1]),
		ResetAt:   resetAt,
	}
	if !result.Allowed {
		result.RetryAfter = retryAfter(now, resetAt)
	}
	return result, nil
}

func (s *RedisBucketStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("reset bucket: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}
