//go:build integration

package bucket_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"surety/internal/ratelimit/store/bucket"
	"surety/pkg/testutil/containers"
)

type RedisBucketStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *bucket.RedisBucketStore
}

func TestRedisBucketStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisBucketStoreSuite))
}

func (s *RedisBucketStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = bucket.NewRedisBucketStore(s.redis.Client)
}

func (s *RedisBucketStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisBucketStoreSuite) TestSlidingWindow() {
	ctx := context.Background()
	key := "surety:ratelimit:test"

	for i := range 3 {
		result, err := s.store.Allow(ctx, key, 3, time.Minute)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(2-i, result.Remaining)
	}

	result, err := s.store.Allow(ctx, key, 3, time.Minute)
	s.Require().NoError(err)
	s.False(result.Allowed)
	s.GreaterOrEqual(result.RetryAfter, 1)

	ttl, err := s.redis.Client.PTTL(ctx, key).Result()
	s.Require().NoError(err)
	s.Positive(ttl)

	s.Require().NoError(s.store.Reset(ctx, key))
	result, err = s.store.Allow(ctx, key, 3, time.Minute)
	s.Require().NoError(err)
	s.True(result.Allowed)
}

func (s *RedisBucketStoreSuite) TestShortWindowExpires() {
	ctx := context.Background()
	key := "surety:ratelimit:short"

	result, err := s.store.Allow(ctx, key, 1, 200*time.Millisecond)
	s.Require().NoError(err)
	s.True(result.Allowed)

	result, err = s.store.Allow(ctx, key, 1, 200*time.Millisecond)
	s.Require().NoError(err)
	s.False(result.Allowed)

	time.Sleep(300 * time.Millisecond)
	result, err = s.store.Allow(ctx, key, 1, 200*time.Millisecond)
	s.Require().NoError(err)
	s.True(result.Allowed)
}
