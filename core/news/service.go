// ABOUTME: News retrieval service tying together cache, search provider and freshness filter
// ABOUTME: Serves cached payloads verbatim and caches only successful, filtered responses

package news

import (
	"context"
	"time"

	"mentions-api/core/domain"
	"mentions-api/core/errors"
	"mentions-api/core/filter"
	"mentions-api/core/interfaces"
	"mentions-api/core/newscache"
	"mentions-api/core/provider"
	"mentions-api/core/query"
)

// Searcher runs one provider search
type Searcher interface {
	Search(ctx context.Context, req provider.SearchRequest) (*domain.NewsPayload, error)
}

// Options tunes the service. Zero values select defaults.
type Options struct {
	// SearchURL overrides the provider endpoint
	SearchURL string

	// Timeout bounds each provider call
	Timeout time.Duration

	// CacheTTL is how long filtered payloads are served from cache
	CacheTTL time.Duration

	// Policy decides how undated social results are treated
	Policy filter.RecencyPolicy

	// Clock replaces time.Now for the cache and the filter
	Clock func() time.Time
}

// Service fetches recent mentions of a subject
type Service struct {
	cache    *newscache.Service
	searcher Searcher
	filter   *filter.Filter
	secrets  interfaces.Secrets
	logger   interfaces.Logger
	newID    func() string
}

// NewService creates a news service from the shared dependencies
func NewService(deps interfaces.Dependencies, opts Options) *Service {
	return &Service{
		cache:    newscache.New(deps.Cache, deps.Logger, newscache.WithTTL(opts.CacheTTL), newscache.WithClock(opts.Clock)),
		searcher: provider.NewClient(deps.HTTPClient, opts.SearchURL, opts.Timeout),
		filter:   filter.New(filter.WithPolicy(opts.Policy), filter.WithClock(opts.Clock)),
		secrets:  deps.Secrets,
		logger:   deps.Logger,
		newID:    newID,
	}
}

// Fetch returns the filtered provider payload for name.
//
// A cached payload younger than the TTL is returned as stored, without
// calling the provider or re-filtering. Otherwise the provider is called
// once; only a successful response is filtered and cached.
func (s *Service) Fetch(ctx context.Context, name string) (*domain.NewsPayload, error) {
	q, err := query.Build(name)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.cache.Get(ctx, name); ok {
		s.logger.Debug("Serving news from cache", map[string]interface{}{
			"subject": name,
			"results": len(cached.Results),
		})
		return cached, nil
	}

	apiKey := ""
	if s.secrets != nil {
		apiKey = s.secrets.SearchAPIKey()
	}
	if apiKey == "" {
		s.logger.Error("Search API key is not configured", map[string]interface{}{
			"subject": name,
		})
		return nil, &errors.ConfigurationError{Setting: "TAVILY_API_KEY"}
	}

	payload, err := s.searcher.Search(ctx, provider.NewsRequest(apiKey, q))
	if err != nil {
		s.logger.Error("News search failed", map[string]interface{}{
			"subject": name,
			"error":   err.Error(),
		})
		return nil, err
	}

	kept := s.filter.Apply(payload.Results)
	filtered := payload.WithResults(kept)

	s.logger.Info("Fetched news", map[string]interface{}{
		"subject":  name,
		"raw":      len(payload.Results),
		"filtered": len(kept),
		"policy":   s.filter.Policy().String(),
	})

	if err := s.cache.Set(ctx, name, filtered); err != nil {
		s.logger.Warn("Failed to cache news", map[string]interface{}{
			"subject": name,
			"error":   err.Error(),
		})
	}

	return filtered, nil
}

// FetchItems fetches news for name and normalizes it for display
func (s *Service) FetchItems(ctx context.Context, name string) ([]domain.NewsItem, error) {
	payload, err := s.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.Normalize(payload, name), nil
}

// Invalidate drops the cached payload for name
func (s *Service) Invalidate(ctx context.Context, name string) error {
	return s.cache.Delete(ctx, name)
}
