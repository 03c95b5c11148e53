// ABOUTME: Redis cache backends using go-redis, with an optional RedisJSON document store
// ABOUTME: Lets several API instances share one news cache with native key expiry

package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nitishm/go-rejson/v4"
	"github.com/redis/go-redis/v9"

	coreerrors "mentions-api/core/errors"
	"mentions-api/pkg/config"
)

// RedisCache implements the Cache interface using plain Redis strings
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache instance
func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	client, err := connect(cfg)
	if err != nil {
		return nil, err
	}
	return &RedisCache{client: client}, nil
}

func connect(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Address, err)
	}

	return client, nil
}

// Get retrieves a value from Redis
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, coreerrors.ErrCacheMiss
		}
		return nil, err
	}

	return val, nil
}

// Set stores a value in Redis with the given TTL
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	// Redis SET with 0 TTL means no expiration
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes a key from Redis
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// JSONCache stores entries as RedisJSON documents so they can be inspected
// and queried in place. Values must be valid JSON.
type JSONCache struct {
	client  *redis.Client
	handler *rejson.Handler
}

// NewJSONCache creates a cache backed by the RedisJSON module
func NewJSONCache(cfg config.RedisConfig) (*JSONCache, error) {
	client, err := connect(cfg)
	if err != nil {
		return nil, err
	}

	handler := rejson.NewReJSONHandler()
	handler.SetGoRedisClient(client)

	return &JSONCache{client: client, handler: handler}, nil
}

// Get retrieves the JSON document stored at key
func (c *JSONCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	val, err := c.handler.JSONGet(key, ".")
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, coreerrors.ErrCacheMiss
		}
		return nil, err
	}

	switch v := val.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	case nil:
		return nil, coreerrors.ErrCacheMiss
	default:
		return nil, fmt.Errorf("unexpected RedisJSON reply type %T", val)
	}
}

// Set stores value as a JSON document and applies the TTL with EXPIRE
func (c *JSONCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := c.handler.JSONSet(key, ".", rawJSON(value)); err != nil {
		return fmt.Errorf("store JSON document %s: %w", key, err)
	}

	if ttl > 0 {
		return c.client.Expire(ctx, key, ttl).Err()
	}
	return nil
}

// Delete removes a document
func (c *JSONCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close closes the Redis connection
func (c *JSONCache) Close() error {
	return c.client.Close()
}

// rawJSON marshals to itself so the handler does not re-encode the bytes
type rawJSON []byte

// MarshalJSON implements json.Marshaler
func (r rawJSON) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}
