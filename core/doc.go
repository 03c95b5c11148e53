// Package core contains the business logic for the Mentions API.
// It is framework-agnostic: nothing here knows about HTTP routing, and every
// external dependency arrives through the interfaces package.
//
// The core package is organized into several sub-packages:
//
// - domain: provider payloads, normalized news items and profiles
// - query: search query construction for a subject
// - filter: freshness and content quality gates
// - provider: the search provider client
// - newscache: TTL cache of filtered payloads over a pluggable backend
// - news: retrieval orchestration (cache, search, filter, cache)
// - person: profile lookup
// - summary: news digests for the summarizer
// - workers: background refresh of a watch list
// - errors: typed errors mapped to HTTP responses by the api layer
// - interfaces: contracts for external dependencies (cache, HTTP, logger, secrets)
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:      memory.NewMemoryCache(),
//	    HTTPClient: standard.NewStandardHTTPClient(20 * time.Second),
//	    Logger:     logger,
//	    Secrets:    config.NewSecrets(""),
//	}
//
//	svc := news.NewService(deps, news.Options{})
//	payload, err := svc.Fetch(ctx, "Taylor Swift")
package core
