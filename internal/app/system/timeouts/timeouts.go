// Package timeouts provides the time limits applied to content queries,
// page assembly and operator jobs.
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultQuery  = 5 * time.Second
	DefaultPage   = 10 * time.Second
	DefaultImport = 2 * time.Minute
)

// mu protects all timeout values from concurrent access.
var mu sync.RWMutex

var (
	ping        = DefaultPing
	query       = DefaultQuery
	page        = DefaultPage
	importLimit = DefaultImport
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Query returns the timeout for a single content or submission query.
func Query() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return query
}

// Page returns the timeout for assembling a whole page, including every
// query it fans out.
func Page() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return page
}

// Import returns the timeout for content imports and schema reconciliation.
func Import() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return importLimit
}

// Config holds timeout configuration values. Zero fields keep the current value.
type Config struct {
	Ping   time.Duration
	Query  time.Duration
	Page   time.Duration
	Import time.Duration
}

// Configure sets custom timeout values.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Query > 0 {
		query = cfg.Query
	}
	if cfg.Page > 0 {
		page = cfg.Page
	}
	if cfg.Import > 0 {
		importLimit = cfg.Import
	}
}

// Reset restores all timeouts to defaults.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	query = DefaultQuery
	page = DefaultPage
	importLimit = DefaultImport
}

// Current returns the current timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Ping: ping, Query: query, Page: page, Import: importLimit}
}

// WithTimeout creates a context with timeout and logs when the deadline,
// rather than the caller, ended it.
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
