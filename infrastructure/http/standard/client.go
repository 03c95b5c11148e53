// ABOUTME: Outbound HTTP client with per-request proxy resolution, tracing and logging
// ABOUTME: Every call to a third-party API goes through this client with an explicit timeout

package standard

import (
	"context"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"mentions-api/core/interfaces"
	"mentions-api/infrastructure/proxy"
	"mentions-api/pkg/requestid"
)

const (
	// DefaultTimeout bounds a single outbound request
	DefaultTimeout = 20 * time.Second

	userAgent = "MentionsAPI/1.0"
)

// StandardHTTPClient implements the HTTPClient interface using net/http
type StandardHTTPClient struct {
	client *http.Client
}

// Option configures the client
type Option func(*settings)

type settings struct {
	resolver *proxy.Resolver
	logger   interfaces.Logger
	tracing  bool
}

// WithProxyResolver routes requests through the resolver's proxy
func WithProxyResolver(r *proxy.Resolver) Option {
	return func(s *settings) {
		s.resolver = r
	}
}

// WithLogger logs each outbound request at debug level
func WithLogger(logger interfaces.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithTracing wraps the transport with OpenTelemetry spans
func WithTracing() Option {
	return func(s *settings) {
		s.tracing = true
	}
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout.
// A non-positive timeout selects DefaultTimeout.
func NewStandardHTTPClient(timeout time.Duration, opts ...Option) *StandardHTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	base := http.DefaultTransport.(*http.Transport).Clone()
	if s.resolver != nil {
		base.Proxy = s.resolver.ProxyFunc()
	} else {
		base.Proxy = nil
	}

	var transport http.RoundTripper = base
	if s.tracing {
		transport = otelhttp.NewTransport(transport)
	}
	if s.logger != nil {
		transport = &loggingTransport{next: transport, logger: s.logger}
	}

	return &StandardHTTPClient{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Client exposes the configured *http.Client for SDKs that accept one
func (c *StandardHTTPClient) Client() *http.Client {
	return c.client
}

// Post performs an HTTP POST request with a JSON body. No retries are made.
func (c *StandardHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}

// loggingTransport logs outgoing requests. Query strings are dropped from
// the logged URL since some providers accept keys there.
type loggingTransport struct {
	next   http.RoundTripper
	logger interfaces.Logger
}

// RoundTrip implements http.RoundTripper
func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	target := req.URL.Scheme + "://" + req.URL.Host + req.URL.Path
	requestID := requestid.FromContext(req.Context())

	t.logger.Debug("Outgoing HTTP request", map[string]interface{}{
		"request_id": requestID,
		"method":     req.Method,
		"url":        target,
	})

	resp, err := t.next.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.logger.Warn("Outgoing HTTP request failed", map[string]interface{}{
			"request_id": requestID,
			"method":     req.Method,
			"url":        target,
			"duration":   duration.String(),
			"error":      err.Error(),
		})
		return nil, err
	}

	t.logger.Debug("Outgoing HTTP response", map[string]interface{}{
		"request_id": requestID,
		"method":     req.Method,
		"url":        target,
		"status":     resp.StatusCode,
		"duration":   duration.String(),
	})

	return resp, nil
}
