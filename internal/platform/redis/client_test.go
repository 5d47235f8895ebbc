package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surety/internal/platform/config"
)

func TestOptions(t *testing.T) {
	t.Run("overlays configured values", func(t *testing.T) {
		opts, err := Options(config.RedisConfig{
			URL:         "redis://:secret@cache:6380/2",
			PoolSize:    20,
			DialTimeout: 3 * time.Second,
		})
		require.NoError(t, err)
		assert.Equal(t, "cache:6380", opts.Addr)
		assert.Equal(t, 2, opts.DB)
		assert.Equal(t, "secret", opts.Password)
		assert.Equal(t, 20, opts.PoolSize)
		assert.Equal(t, 3*time.Second, opts.DialTimeout)
	})

	t.Run("zero values keep defaults", func(t *testing.T) {
		opts, err := Options(config.RedisConfig{URL: "redis://cache:6379", ReadTimeout: 0})
		require.NoError(t, err)
		assert.Zero(t, opts.ReadTimeout)
		assert.Zero(t, opts.PoolSize)
	})

	t.Run("rejects a malformed url", func(t *testing.T) {
		_, err := Options(config.RedisConfig{URL: "http://cache"})
		require.Error(t, err)
	})
}

func TestNewWithoutURL(t *testing.T) {
	c, err := New(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, c)
}
