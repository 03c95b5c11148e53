// ABOUTME: In-memory cache backend built on patrickmn/go-cache
// ABOUTME: Offers the library's own janitor and item count as an alternative to the memory backend

package gocache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"mentions-api/core/errors"
)

// GoCache implements the Cache interface over go-cache
type GoCache struct {
	cache *gocache.Cache
}

// NewGoCache creates a cache whose janitor purges expired items every cleanupInterval
func NewGoCache(cleanupInterval time.Duration) *GoCache {
	return &GoCache{cache: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

// Get retrieves a value from the cache
func (c *GoCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	val, found := c.cache.Get(key)
	if !found {
		return nil, errors.ErrCacheMiss
	}

	data, ok := val.([]byte)
	if !ok {
		return nil, errors.ErrCacheMiss
	}

	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

// Set stores a value with the given TTL; a zero TTL never expires
func (c *GoCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	c.cache.Set(key, valueCopy, ttl)
	return nil
}

// Delete removes a key from the cache
func (c *GoCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.cache.Delete(key)
	return nil
}

// Count returns the number of items, including expired ones not yet purged
func (c *GoCache) Count() int {
	return c.cache.ItemCount()
}
