// Package storecache keeps recently used per-shopper stores in memory.
package storecache

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultSize = 10000
	DefaultTTL  = 30 * time.Minute

	stripes = 64
)

// Cache loads a value per key on first use and drops it after ttl or when
// more than size keys are held. Work for one key is serialized by a fixed
// set of striped locks, so an entry evicted mid-call is never loaded twice
// at the same time.
type Cache[T any] struct {
	lru   *expirable.LRU[string, T]
	load  func(ctx context.Context, key string) (T, error)
	locks [stripes]sync.Mutex
}

// New uses DefaultSize and DefaultTTL for non-positive limits.
func New[T any](size int, ttl time.Duration, load func(ctx context.Context, key string) (T, error)) *Cache[T] {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache[T]{
		lru:  expirable.NewLRU[string, T](size, nil, ttl),
		load: load,
	}
}

// Get returns the cached value for key, loading it when absent. Load errors
// are not cached.
func (c *Cache[T]) Get(ctx context.Context, key string) (T, error) {
	mu := c.lock(key)
	mu.Lock()
	defer mu.Unlock()
	return c.get(ctx, key)
}

// Do runs fn on key's value while holding key's lock. fn must not call back
// into the cache.
func (c *Cache[T]) Do(ctx context.Context, key string, fn func(T) error) error {
	mu := c.lock(key)
	mu.Lock()
	defer mu.Unlock()

	v, err := c.get(ctx, key)
	if err != nil {
		return err
	}
	return fn(v)
}

func (c *Cache[T]) Len() int { return c.lru.Len() }

func (c *Cache[T]) get(ctx context.Context, key string) (T, error) {
	if v, ok := c.lru.Get(key); ok {
		return v, nil
	}
	v, err := c.load(ctx, key)
	if err != nil {
		var zero T
		return zero, err
	}
	c.lru.Add(key, v)
	return v, nil
}

func (c *Cache[T]) lock(key string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &c.locks[h.Sum32()%stripes]
}
