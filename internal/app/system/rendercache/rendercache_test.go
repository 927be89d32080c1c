package rendercache

import (
	"context"
	"errors"
	"os"
	"path"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memBackend is an in-process Backend with glob deletes.
type memBackend struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttls    map[string]time.Duration
	failGet error
}

func newMem() *memBackend {
	return &memBackend{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memBackend) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return nil, m.failGet
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrMiss
	}
	return v, nil
}

func (m *memBackend) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memBackend) DeleteByPattern(_ context.Context, pattern string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(m.data, k)
			n++
		}
	}
	return n, nil
}

type countRecorder struct{ hits, misses int }

func (r *countRecorder) RecordCacheLookup(hit bool) {
	if hit {
		r.hits++
	} else {
		r.misses++
	}
}

type page struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

func TestKey(t *testing.T) {
	assert.Equal(t, "stratapapers:home", Key("home"))
	assert.Equal(t, "stratapapers:home:v1", Key("home", "v1"))
}

func TestCache_RoundTripAndTTL(t *testing.T) {
	mem := newMem()
	rec := &countRecorder{}
	c := New(mem, 5*time.Minute, rec, zap.NewNop())
	ctx := context.Background()

	var got page
	assert.False(t, c.Get(ctx, Key("home"), &got))

	c.Set(ctx, Key("home"), page{Title: "Past Papers", Items: []string{"a", "b"}})
	require.True(t, c.Get(ctx, Key("home"), &got))
	assert.Equal(t, page{Title: "Past Papers", Items: []string{"a", "b"}}, got)
	assert.Equal(t, 5*time.Minute, mem.ttls[Key("home")])

	assert.Equal(t, 1, rec.hits)
	assert.Equal(t, 1, rec.misses)
}

func TestCache_DefaultTTL(t *testing.T) {
	mem := newMem()
	c := New(mem, 0, nil, zap.NewNop())
	c.Set(context.Background(), Key("x"), 1)
	assert.Equal(t, DefaultTTL, mem.ttls[Key("x")])
}

func TestCache_Invalidate(t *testing.T) {
	mem := newMem()
	c := New(mem, time.Minute, nil, zap.NewNop())
	ctx := context.Background()

	c.Set(ctx, Key("home"), 1)
	c.Set(ctx, Key("home", "draft"), 2)
	c.Set(ctx, Key("subjects", "maths"), 3)

	n, err := c.Invalidate(ctx, "home")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var v int
	assert.False(t, c.Get(ctx, Key("home"), &v))
	assert.True(t, c.Get(ctx, Key("subjects", "maths"), &v))
	assert.Equal(t, 3, v)
}

func TestCache_BackendErrorIsMiss(t *testing.T) {
	mem := newMem()
	mem.failGet = errors.New("connection refused")
	rec := &countRecorder{}
	c := New(mem, time.Minute, rec, zap.NewNop())

	var v int
	assert.False(t, c.Get(context.Background(), Key("home"), &v))
	assert.Equal(t, 1, rec.misses)
}

func TestCache_CorruptEntryIsMiss(t *testing.T) {
	mem := newMem()
	mem.data[Key("home")] = []byte("{not json")
	c := New(mem, time.Minute, nil, zap.NewNop())

	var v page
	assert.False(t, c.Get(context.Background(), Key("home"), &v))
}

func TestCache_Disabled(t *testing.T) {
	ctx := context.Background()
	for name, c := range map[string]*Cache{
		"nil cache":   nil,
		"nil backend": New(nil, time.Minute, nil, zap.NewNop()),
	} {
		t.Run(name, func(t *testing.T) {
			assert.False(t, c.Enabled())
			c.Set(ctx, Key("home"), 1)
			var v int
			assert.False(t, c.Get(ctx, Key("home"), &v))
			n, err := c.Invalidate(ctx, "home")
			assert.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestRedisBackend_NilClient(t *testing.T) {
	b := NewRedisBackend(nil)
	ctx := context.Background()

	_, err := b.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
	assert.NoError(t, b.Set(ctx, "k", []byte("v"), time.Minute))
	n, err := b.DeleteByPattern(ctx, "k*")
	assert.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, b.Ping(ctx))
	assert.NoError(t, b.Close())
}

// TestRedisBackend_Live runs against a real server when
// STRATAPAPERS_TEST_REDIS_ADDR is set.
func TestRedisBackend_Live(t *testing.T) {
	addr := os.Getenv("STRATAPAPERS_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("STRATAPAPERS_TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	b := NewRedisBackend(client)
	t.Cleanup(func() { _ = b.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, b.Ping(ctx))

	prefix := Key("test", t.Name())
	c := New(b, time.Minute, nil, zap.NewNop())
	c.Set(ctx, prefix+":a", page{Title: "A"})
	c.Set(ctx, prefix+":b", page{Title: "B"})

	var got page
	require.True(t, c.Get(ctx, prefix+":a", &got))
	assert.Equal(t, "A", got.Title)

	n, err := c.Invalidate(ctx, "test", t.Name())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, c.Get(ctx, prefix+":b", &got))
}
