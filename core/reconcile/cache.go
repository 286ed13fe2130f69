package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type cacheEntry[T any] struct {
	value T
	built time.Time
}

// Cache holds built values per key for a TTL.
type Cache[T any] struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cacheEntry[T]
	sf      singleflight.Group
}

// NewCache creates a cache. A zero TTL disables storage but still coalesces
// concurrent builds of the same key.
func NewCache[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		ttl:     ttl,
		entries: make(map[string]cacheEntry[T]),
	}
}

func (c *Cache[T]) lookup(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok || c.ttl <= 0 || time.Since(entry.built) > c.ttl {
		var zero T
		return zero, false
	}
	return entry.value, true
}

// GetOrBuild returns the cached value for key, or runs build once for all
// concurrent callers and caches its result. Errors are never cached. The
// build does not inherit the cancellation of the caller that started it; a
// caller whose ctx ends stops waiting and gets ctx.Err().
func (c *Cache[T]) GetOrBuild(ctx context.Context, key string, build func(context.Context) (T, error)) (T, error) {
	if v, ok := c.lookup(key); ok {
		return v, nil
	}

	ch := c.sf.DoChan(key, func() (any, error) {
		// Double-check after acquiring singleflight lock
		if v, ok := c.lookup(key); ok {
			return v, nil
		}

		v, err := build(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			c.entries[key] = cacheEntry[T]{value: v, built: time.Now()}
			c.mu.Unlock()
		}
		return v, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Invalidate drops the cached value for key.
func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
