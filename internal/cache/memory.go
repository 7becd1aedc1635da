package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

type entry struct {
	raw     []byte
	expires time.Time
}

// MemoryCache keeps JSON-encoded values in a map. Values round-trip through
// JSON so callers see the same copy semantics as with Redis.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	clock   clock.Clock
}

func NewMemoryCache(clk clock.Clock) *MemoryCache {
	return &MemoryCache{entries: make(map[string]entry), clock: clk}
}

func (c *MemoryCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if !e.expires.IsZero() && !c.clock.Now().Before(e.expires) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return false, nil
	}
	if err := json.Unmarshal(e.raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Set stores value. A non-positive ttl never expires.
func (c *MemoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	e := entry{raw: raw}
	if ttl > 0 {
		e.expires = c.clock.Now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}
