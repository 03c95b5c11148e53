// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package: cache backends, outbound HTTP, logging and the
// summarization client.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: map-backed TTL cache with an optional size bound
// - cache/gocache: patrickmn/go-cache backend
// - cache/redis: Redis string and RedisJSON backends
// - cache/sqlite: SQLite file backend
// - http/standard: proxy-aware HTTP client with optional tracing
// - proxy: HTTPS_PROXY / HTTP_PROXY resolution read per request
// - llm/openai: OpenAI-compatible chat client used for summaries
// - logger/logrus: structured logging
//
// Every cache backend honours the same contract: Get returns
// errors.ErrCacheMiss for absent or expired keys, and a TTL of zero stores
// the value without expiry.
//
// # Cache Example
//
//	cache := memory.NewMemoryCache(memory.WithMaxEntries(1000))
//	cache.StartJanitor(ctx, 5*time.Minute)
//	err := cache.Set(ctx, "news:Taylor Swift", data, 48*time.Hour)
//
// # HTTP Client
//
// The client never retries. Proxy settings are re-read for each request so
// a changed HTTPS_PROXY takes effect without a restart:
//
//	client := standard.NewStandardHTTPClient(20*time.Second,
//	    standard.WithProxyResolver(proxy.NewResolver(logger)),
//	    standard.WithLogger(logger),
//	)
package infrastructure
