// internal/app/system/rendercache/redis.go
package rendercache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores entries in Redis. A nil client behaves as an always
// empty cache.
type RedisBackend struct {
	client *redis.Client
}

// NewRedisBackend wraps a Redis client.
func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

// Get returns the raw value or ErrMiss.
func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if b == nil || b.client == nil {
		return nil, ErrMiss
	}
	raw, err := b.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return raw, nil
}

// Set stores value under key for ttl.
func (b *RedisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if b == nil || b.client == nil {
		return nil
	}
	if err := b.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// DeleteByPattern removes every key matching a glob pattern and reports how
// many were removed.
func (b *RedisBackend) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	if b == nil || b.client == nil {
		return 0, nil
	}

	n := 0
	iter := b.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if err := b.client.Del(ctx, key).Err(); err != nil {
			return n, fmt.Errorf("redis delete %s: %w", key, err)
		}
		n++
	}
	if err := iter.Err(); err != nil {
		return n, fmt.Errorf("redis scan pattern %s: %w", pattern, err)
	}
	return n, nil
}

// Ping checks connectivity. Used by the readiness probe.
func (b *RedisBackend) Ping(ctx context.Context) error {
	if b == nil || b.client == nil {
		return nil
	}
	return b.client.Ping(ctx).Err()
}

// Close releases the underlying Redis connection if present.
func (b *RedisBackend) Close() error {
	if b == nil || b.client == nil {
		return nil
	}
	return b.client.Close()
}
