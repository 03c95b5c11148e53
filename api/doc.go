// Package api provides the HTTP API layer for the Mentions service.
// It uses the Huma framework on a chi router to provide automatic OpenAPI
// documentation, request validation, and a clean handler interface.
//
// # Architecture
//
// - server.go: Huma API configuration and middleware stack
// - handlers/: HTTP request handlers and error mapping
// - middleware/: request logging, rate limiting and the access gate
//
// # Endpoints
//
//	POST   /api/fetch-news         filtered provider payload for a subject
//	POST   /api/news-feed          normalized feed items for a subject
//	DELETE /api/news-cache/{name}  drop a subject's cached news
//	POST   /api/search-person      provider profile search
//	POST   /api/profile            condensed profile
//	POST   /api/summarize          briefing from news text or items
//	GET    /api/verify             access code probe (POST also accepted)
//
// The OpenAPI spec is served at /openapi.json and the docs UI at /docs.
//
// # Middleware order
//
// OpenTelemetry spans (when enabled), CORS, request logging, per-IP rate
// limiting, then the access gate. CORS runs before the gate so browser
// preflight requests never need the access code.
//
// # Error Handling
//
// Every error body has the shape the web client reads:
//
//	{"error": "Failed to fetch news", "details": "dial tcp: connection refused"}
//
// details is omitted when there is nothing to add.
package api
