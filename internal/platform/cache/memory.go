// internal/platform/cache/memory.go
package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"openhours/internal/core/domain"
	"openhours/internal/core/ports"
	"openhours/internal/platform/errors"
)

// entry is a cached schedule with its own expiry. A zero expiresAt never
// expires.
type entry struct {
	schedule  *domain.DaySchedule
	expiresAt time.Time
}

// MemoryCache is an in-process LRU of day schedules with per-entry TTL.
// Values are cloned on the way in and out, so callers never share windows.
type MemoryCache struct {
	mu       sync.Mutex
	items    *lru.Cache[string, entry]
	capacity int
	now      func() time.Time
}

var _ ports.ScheduleCache = (*MemoryCache)(nil)

// NewMemoryCache crea un cache en memoria con la capacidad indicada.
func NewMemoryCache(capacity int) *MemoryCache {
	if capacity <= 0 {
		capacity = 256
	}
	items, _ := lru.New[string, entry](capacity) // only fails for size <= 0
	return &MemoryCache{items: items, capacity: capacity, now: time.Now}
}

// Get returns a copy of the schedule under key, or errors.ErrCacheMiss.
func (c *MemoryCache) Get(_ context.Context, key string) (*domain.DaySchedule, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items.Get(key)
	if !ok {
		return nil, errors.ErrCacheMiss
	}
	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		c.items.Remove(key)
		return nil, errors.ErrCacheMiss
	}
	return e.schedule.Clone(), nil
}

// Set stores a copy of schedule. ttl <= 0 means no expiry.
func (c *MemoryCache) Set(_ context.Context, key string, schedule *domain.DaySchedule, ttl time.Duration) error {
	if schedule == nil {
		return errors.New("cannot cache nil schedule")
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items.Add(key, entry{schedule: schedule.Clone(), expiresAt: expiresAt})
	return nil
}

// Delete removes key if present.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items.Remove(key)
	return nil
}

// Len returns the number of entries, expired ones included until touched.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items.Len()
}

// Capacity returns the maximum number of entries.
func (c *MemoryCache) Capacity() int {
	return c.capacity
}

// CleanExpired drops every expired entry and returns how many were removed.
func (c *MemoryCache) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for _, key := range c.items.Keys() {
		e, ok := c.items.Peek(key)
		if ok && !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			c.items.Remove(key)
			removed++
		}
	}
	return removed
}

// Close purges the cache.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items.Purge()
	return nil
}
