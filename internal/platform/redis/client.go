// Package redis connects the operating flag and rate-limit buckets to a
// shared Redis deployment.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"surety/internal/platform/config"
)

const pingTimeout = 2 * time.Second

// Client is the connection shared by every Redis-backed store.
type Client struct {
	*goredis.Client
}

// New connects using cfg and verifies the server answers. An empty URL means
// Redis is not configured and yields a nil client.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	opts, err := Options(cfg)
	if err != nil {
		return nil, err
	}
	c := &Client{Client: goredis.NewClient(opts)}
	if err := c.Health(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return c, nil
}

// Options parses cfg.URL and overlays the pool and timeout settings that are
// set. Zero values keep the go-redis defaults.
func Options(cfg config.RedisConfig) (*goredis.Options, error) {
	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	overlay(&opts.PoolSize, cfg.PoolSize)
	overlay(&opts.MinIdleConns, cfg.MinIdleConns)
	overlay(&opts.DialTimeout, cfg.DialTimeout)
	overlay(&opts.ReadTimeout, cfg.ReadTimeout)
	overlay(&opts.WriteTimeout, cfg.WriteTimeout)
	return opts, nil
}

func overlay[T int | time.Duration](dst *T, v T) {
	if v > 0 {
		*dst = v
	}
}

// Health pings Redis with a short deadline so /health never hangs on it.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return c.Ping(ctx).Err()
}
