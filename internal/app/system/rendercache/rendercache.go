// internal/app/system/rendercache/rendercache.go
//
// Package rendercache caches resolved page view models between requests.
// Entries expire after a TTL and can be dropped early through Invalidate,
// which the revalidation endpoint calls after content is published.
package rendercache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrMiss is returned by a Backend when a key is absent.
var ErrMiss = errors.New("rendercache: miss")

// DefaultTTL applies when the configured TTL is not positive.
const DefaultTTL = 60 * time.Second

// KeyPrefix namespaces every key this process writes.
const KeyPrefix = "stratapapers:"

// Backend is the storage behind the cache.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) (int, error)
}

// Recorder counts lookups. A nil Recorder is allowed.
type Recorder interface {
	RecordCacheLookup(hit bool)
}

// Cache stores JSON encoded values. A nil *Cache is a disabled cache.
type Cache struct {
	backend Backend
	ttl     time.Duration
	rec     Recorder
	log     *zap.Logger
}

// New creates a cache over backend. A nil backend disables caching.
func New(backend Backend, ttl time.Duration, rec Recorder, log *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{backend: backend, ttl: ttl, rec: rec, log: log}
}

// Enabled reports whether lookups can ever hit.
func (c *Cache) Enabled() bool {
	return c != nil && c.backend != nil
}

// Key builds a namespaced key from parts joined by ':'.
func Key(parts ...string) string {
	k := KeyPrefix
	for i, p := range parts {
		if i > 0 {
			k += ":"
		}
		k += p
	}
	return k
}

// Get decodes the entry for key into dest and reports whether it was found.
// Backend and decode errors are logged and treated as misses.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if !c.Enabled() {
		return false
	}

	raw, err := c.backend.Get(ctx, key)
	if err == nil {
		err = json.Unmarshal(raw, dest)
		if err != nil {
			err = fmt.Errorf("unmarshal cache value for %s: %w", key, err)
		}
	}
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			c.log.Warn("render cache get failed", zap.String("key", key), zap.Error(err))
		}
		c.record(false)
		return false
	}

	c.record(true)
	return true
}

// Set stores value under key for the configured TTL. Failures are logged.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	if !c.Enabled() {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("render cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.backend.Set(ctx, key, payload, c.ttl); err != nil {
		c.log.Warn("render cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops every entry whose key starts with Key(parts...).
func (c *Cache) Invalidate(ctx context.Context, parts ...string) (int, error) {
	if !c.Enabled() {
		return 0, nil
	}
	return c.backend.DeleteByPattern(ctx, Key(parts...)+"*")
}

func (c *Cache) record(hit bool) {
	if c.rec != nil {
		c.rec.RecordCacheLookup(hit)
	}
}
