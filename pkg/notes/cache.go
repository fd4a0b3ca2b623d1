package notes

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes the most recently built graph for a fixed TTL. Concurrent
// misses share one rebuild via singleflight, and the cached value is swapped
// as a single pointer replacement so readers never observe a half-updated
// graph. A failed rebuild leaves the prior value in place.
type Cache struct {
	builder *Builder
	ttl     time.Duration

	mu      sync.RWMutex
	graph   *Graph
	builtAt time.Time

	group singleflight.Group
}

// NewCache creates a cache over builder with the given TTL.
func NewCache(builder *Builder, ttl time.Duration) *Cache {
	return &Cache{
		builder: builder,
		ttl:     ttl,
	}
}

// Get returns the cached graph, rebuilding it first if the cache is empty
// or older than the TTL.
func (c *Cache) Get(ctx context.Context) (*Graph, error) {
	c.mu.RLock()
	if c.fresh() {
		graph := c.graph
		c.mu.RUnlock()
		return graph, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.group.Do("graph", func() (any, error) {
		c.mu.RLock()
		if c.fresh() {
			graph := c.graph
			c.mu.RUnlock()
			return graph, nil
		}
		c.mu.RUnlock()

		graph, err := c.builder.Build(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.graph = graph
		c.builtAt = time.Now()
		c.mu.Unlock()

		return graph, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Graph), nil
}

// Invalidate clears the cached graph so the next Get triggers a rebuild.
// Collaborators call this after any mutation of a source file.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.graph = nil
	c.mu.Unlock()
}

// fresh reports whether the cached value is usable. Callers must hold at
// least a read lock.
func (c *Cache) fresh() bool {
	return c.graph != nil && time.Since(c.builtAt) < c.ttl
}
