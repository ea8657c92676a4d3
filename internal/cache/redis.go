// Package cache stores generated analysis reports in Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "persona-admin"

// ReportCache keeps reports under "<prefix>:<key>" with a fixed TTL.
// A zero TTL stores entries without expiry.
type ReportCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewReportCache creates a cache on an existing client.
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{
		client: client,
		prefix: defaultPrefix,
		ttl:    ttl,
	}
}

// Open parses a redis:// URL, connects and pings the server.
func Open(ctx context.Context, url string, ttl time.Duration) (*ReportCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewReportCache(client, ttl), nil
}

func (c *ReportCache) key(k string) string {
	return c.prefix + ":" + k
}

// Get returns the cached report. ok is false on a miss.
func (c *ReportCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, c.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return val, true, nil
}

// Set stores a report.
func (c *ReportCache) Set(ctx context.Context, key, report string) error {
	if err := c.client.Set(ctx, c.key(key), report, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying client.
func (c *ReportCache) Close() error {
	return c.client.Close()
}
