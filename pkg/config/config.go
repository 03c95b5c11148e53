// ABOUTME: Configuration management backed by viper with environment variable support
// ABOUTME: Defines server, cache, search, summarization, refresh and logging settings

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Cache backend names accepted by CACHE_TYPE
const (
	CacheMemory    = "memory"
	CacheGoCache   = "gocache"
	CacheRedis     = "redis"
	CacheRedisJSON = "redisjson"
	CacheSQLite    = "sqlite"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Search contains search provider configuration
	Search SearchConfig

	// LLM contains summarization provider configuration
	LLM LLMConfig

	// Refresh contains background refresh configuration
	Refresh RefreshConfig

	// Log contains logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimit is the number of requests per minute allowed per client IP; 0 disables it
	RateLimit int
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend
	Type string

	// TTL is how long a subject's news stays fresh
	TTL time.Duration

	// MaxEntries bounds the memory backend; 0 means unbounded
	MaxEntries int

	// CleanupInterval is how often expired entries are swept
	CleanupInterval time.Duration

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string
}

// SearchConfig holds search provider configuration
type SearchConfig struct {
	// URL is the provider's search endpoint
	URL string

	// Timeout bounds one provider call
	Timeout time.Duration

	// RecencyPolicy is "relative_phrase" or "social_pass"
	RecencyPolicy string
}

// LLMConfig holds the OpenAI-compatible summarization endpoint
type LLMConfig struct {
	BaseURL  string
	Model    string
	MaxItems int
}

// RefreshConfig controls the background cache warmer
type RefreshConfig struct {
	// Watchlist is the set of subjects kept warm
	Watchlist []string

	// Interval is the time between refresh rounds
	Interval time.Duration

	// Workers is the number of concurrent fetches per round
	Workers int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// setDefaults registers every key so AutomaticEnv can resolve it
func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8000")
	v.SetDefault("rate_limit", 60)

	v.SetDefault("cache_type", CacheMemory)
	v.SetDefault("cache_ttl", 172800)
	v.SetDefault("cache_max_entries", 0)
	v.SetDefault("cache_cleanup_interval", 300)
	v.SetDefault("redis_address", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("sqlite_path", "cache.db")

	v.SetDefault("search_url", "https://api.tavily.com/search")
	v.SetDefault("upstream_timeout", 20)
	v.SetDefault("recency_policy", "relative_phrase")

	v.SetDefault("llm_base_url", "https://api.groq.com/openai/v1/")
	v.SetDefault("llm_model", "llama-3.3-70b-versatile")
	v.SetDefault("summary_max_items", 10)

	v.SetDefault("watchlist", "")
	v.SetDefault("refresh_timer", 900)
	v.SetDefault("refresh_workers", 4)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

// newViper returns a viper instance reading defaults and the environment
func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return v
}

// Load reads configuration from the environment and, when configFile is set,
// from that file. Environment variables win over file values.
func Load(configFile string) (*Config, error) {
	v := newViper()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	return fromViper(v), nil
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	return Load("")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:      v.GetString("port"),
			RateLimit: v.GetInt("rate_limit"),
		},
		Cache: CacheConfig{
			Type:            strings.ToLower(strings.TrimSpace(v.GetString("cache_type"))),
			TTL:             seconds(v, "cache_ttl"),
			MaxEntries:      v.GetInt("cache_max_entries"),
			CleanupInterval: seconds(v, "cache_cleanup_interval"),
			Redis: RedisConfig{
				Address:  v.GetString("redis_address"),
				Password: v.GetString("redis_password"),
				DB:       v.GetInt("redis_db"),
			},
			SQLite: SQLiteConfig{
				Path: v.GetString("sqlite_path"),
			},
		},
		Search: SearchConfig{
			URL:           v.GetString("search_url"),
			Timeout:       seconds(v, "upstream_timeout"),
			RecencyPolicy: v.GetString("recency_policy"),
		},
		LLM: LLMConfig{
			BaseURL:  v.GetString("llm_base_url"),
			Model:    v.GetString("llm_model"),
			MaxItems: v.GetInt("summary_max_items"),
		},
		Refresh: RefreshConfig{
			Watchlist: splitList(v.GetString("watchlist")),
			Interval:  seconds(v, "refresh_timer"),
			Workers:   v.GetInt("refresh_workers"),
		},
		Log: LogConfig{
			Level:  v.GetString("log_level"),
			Format: v.GetString("log_format"),
		},
	}
}

func seconds(v *viper.Viper, key string) time.Duration {
	return time.Duration(v.GetInt(key)) * time.Second
}

// splitList parses a comma separated list, dropping blanks
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimit < 0 {
		return errors.New("rate limit cannot be negative")
	}

	switch c.Cache.Type {
	case CacheMemory, CacheGoCache, CacheSQLite:
	case CacheRedis, CacheRedisJSON:
		if c.Cache.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	default:
		return fmt.Errorf("cache type must be one of memory, gocache, redis, redisjson, sqlite; got %q", c.Cache.Type)
	}

	if c.Cache.TTL <= 0 {
		return errors.New("cache TTL must be positive")
	}

	if c.Cache.MaxEntries < 0 {
		return errors.New("cache max entries cannot be negative")
	}

	if c.Search.URL == "" {
		return errors.New("search URL cannot be empty")
	}

	if c.Search.Timeout <= 0 {
		return errors.New("upstream timeout must be positive")
	}

	if len(c.Refresh.Watchlist) > 0 && c.Refresh.Interval < time.Second {
		return errors.New("refresh timer must be at least 1 second")
	}

	return nil
}
