// ABOUTME: Wires configuration, infrastructure and core services into one application
// ABOUTME: Shared by the serve and fetch commands

package main

import (
	"context"
	"fmt"

	"mentions-api/core/filter"
	"mentions-api/core/interfaces"
	"mentions-api/core/news"
	"mentions-api/core/person"
	"mentions-api/core/summary"
	"mentions-api/infrastructure/cache/gocache"
	"mentions-api/infrastructure/cache/memory"
	"mentions-api/infrastructure/cache/redis"
	"mentions-api/infrastructure/cache/sqlite"
	stdhttp "mentions-api/infrastructure/http/standard"
	llmopenai "mentions-api/infrastructure/llm/openai"
	logruslogger "mentions-api/infrastructure/logger/logrus"
	"mentions-api/infrastructure/proxy"
	"mentions-api/pkg/config"
	"mentions-api/pkg/featureflags"
)

// app holds the wired services and the resources that need closing
type app struct {
	cfg     *config.Config
	logger  interfaces.Logger
	secrets interfaces.Secrets
	flags   featureflags.Manager

	news    *news.Service
	person  *person.Service
	summary *summary.Service

	closers []func() error
}

// newApp builds the application. Background janitors stop when ctx ends.
func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logruslogger.New(logruslogger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	flags := featureflags.NewEnvManager("")

	return assemble(ctx, cfg, logger, config.NewSecrets(configPath), flags)
}

// assemble wires services from already loaded settings
func assemble(ctx context.Context, cfg *config.Config, logger interfaces.Logger, secrets interfaces.Secrets, flags featureflags.Manager) (*app, error) {
	a := &app{cfg: cfg, logger: logger, secrets: secrets, flags: flags}

	cache, err := a.newCache(ctx)
	if err != nil {
		return nil, err
	}

	clientOpts := []stdhttp.Option{
		stdhttp.WithProxyResolver(proxy.NewResolver(logger)),
		stdhttp.WithLogger(logger),
	}
	if flags.IsEnabled(ctx, featureflags.RequestTracing) {
		clientOpts = append(clientOpts, stdhttp.WithTracing())
	}
	httpClient := stdhttp.NewStandardHTTPClient(cfg.Search.Timeout, clientOpts...)

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
		Secrets:    secrets,
	}

	a.news = news.NewService(deps, news.Options{
		SearchURL: cfg.Search.URL,
		Timeout:   cfg.Search.Timeout,
		CacheTTL:  cfg.Cache.TTL,
		Policy:    a.recencyPolicy(ctx),
	})
	a.person = person.NewService(deps, cfg.Search.URL, cfg.Search.Timeout)

	summarizer := llmopenai.NewClient(secrets, httpClient.Client(), cfg.LLM.BaseURL, cfg.LLM.Model)
	a.summary = summary.NewService(summarizer, logger, cfg.LLM.MaxItems)

	return a, nil
}

// recencyPolicy resolves the undated social result policy. The feature flag
// forces the social pass policy regardless of RECENCY_POLICY.
func (a *app) recencyPolicy(ctx context.Context) filter.RecencyPolicy {
	if a.flags != nil && a.flags.IsEnabled(ctx, featureflags.SocialPassRecency) {
		return filter.PolicySocialPass
	}
	return filter.ParsePolicy(a.cfg.Search.RecencyPolicy)
}

// newCache creates the configured backend. Redis failures fall back to memory.
func (a *app) newCache(ctx context.Context) (interfaces.Cache, error) {
	cfg := a.cfg.Cache

	switch cfg.Type {
	case config.CacheRedis, config.CacheRedisJSON:
		var (
			cache interface {
				interfaces.Cache
				Close() error
			}
			err error
		)
		if cfg.Type == config.CacheRedisJSON {
			cache, err = redis.NewJSONCache(cfg.Redis)
		} else {
			cache, err = redis.NewRedisCache(cfg.Redis)
		}
		if err != nil {
			a.logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
				"type":  cfg.Type,
			})
			return a.newMemoryCache(ctx), nil
		}
		a.closers = append(a.closers, cache.Close)
		a.logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Redis.Address,
			"json":    cfg.Type == config.CacheRedisJSON,
		})
		return cache, nil

	case config.CacheSQLite:
		cache, err := sqlite.NewSQLiteCache(cfg.SQLite.Path, sqlite.WithLogger(a.logger))
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite cache: %w", err)
		}
		cache.StartCleanup(cfg.CleanupInterval)
		a.closers = append(a.closers, cache.Close)
		a.logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.SQLite.Path,
		})
		return cache, nil

	case config.CacheGoCache:
		a.logger.Info("Using go-cache", nil)
		return gocache.NewGoCache(cfg.CleanupInterval), nil

	default:
		return a.newMemoryCache(ctx), nil
	}
}

func (a *app) newMemoryCache(ctx context.Context) interfaces.Cache {
	cache := memory.NewMemoryCache(memory.WithMaxEntries(a.cfg.Cache.MaxEntries))
	cache.StartJanitor(ctx, a.cfg.Cache.CleanupInterval)
	a.logger.Info("Using memory cache", map[string]interface{}{
		"max_entries": a.cfg.Cache.MaxEntries,
	})
	return cache
}

// Close releases cache connections
func (a *app) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			a.logger.Warn("Failed to close resource", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}
