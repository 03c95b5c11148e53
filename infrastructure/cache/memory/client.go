// ABOUTME: In-memory cache backend with TTL support, an optional entry bound and a sweeper
// ABOUTME: Default backend for single-instance deployments of the news cache

package memory

import (
	"context"
	"sync"
	"time"

	"mentions-api/core/errors"
)

// item represents a cached item with expiration
type item struct {
	value      []byte
	expiration time.Time
	noExpire   bool
}

func (i *item) expired(now time.Time) bool {
	return !i.noExpire && now.After(i.expiration)
}

// MemoryCache implements the Cache interface using in-memory storage
type MemoryCache struct {
	mu         sync.RWMutex
	items      map[string]*item
	maxEntries int
	now        func() time.Time
}

// Option configures a MemoryCache
type Option func(*MemoryCache)

// WithMaxEntries bounds the number of stored keys. 0 means unbounded.
// When full, expired entries are dropped first, then the entry closest to expiry.
func WithMaxEntries(n int) Option {
	return func(c *MemoryCache) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(c *MemoryCache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewMemoryCache creates a new in-memory cache instance
func NewMemoryCache(opts ...Option) *MemoryCache {
	c := &MemoryCache{
		items: make(map[string]*item),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, errors.ErrCacheMiss
	}

	if it.expired(c.now()) {
		c.mu.Lock()
		if current, ok := c.items[key]; ok && current == it {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, errors.ErrCacheMiss
	}

	// Return a copy of the value
	result := make([]byte, len(it.value))
	copy(result, it.value)
	return result, nil
}

// Set stores a value in the cache with the given TTL
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	newItem := &item{
		value:    valueCopy,
		noExpire: ttl <= 0,
	}
	now := c.now()
	if ttl > 0 {
		newItem.expiration = now.Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && c.maxEntries > 0 && len(c.items) >= c.maxEntries {
		c.removeExpiredLocked(now)
		if len(c.items) >= c.maxEntries {
			c.evictOneLocked()
		}
	}
	c.items[key] = newItem

	return nil
}

// Delete removes a key from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired or not
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Sweep removes expired entries and returns how many were dropped
func (c *MemoryCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeExpiredLocked(c.now())
}

// StartJanitor sweeps expired entries every interval until ctx is done
func (c *MemoryCache) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Sweep()
			}
		}
	}()
}

func (c *MemoryCache) removeExpiredLocked(now time.Time) int {
	removed := 0
	for key, it := range c.items {
		if it.expired(now) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

// evictOneLocked drops the entry that would expire soonest.
// Entries without expiry are only chosen when nothing else remains.
func (c *MemoryCache) evictOneLocked() {
	var (
		victim   string
		earliest time.Time
		found    bool
	)
	for key, it := range c.items {
		if it.noExpire {
			continue
		}
		if !found || it.expiration.Before(earliest) {
			victim, earliest, found = key, it.expiration, true
		}
	}
	if !found {
		for key := range c.items {
			victim = key
			break
		}
	}
	delete(c.items, victim)
}
