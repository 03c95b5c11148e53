// ABOUTME: Client for the Tavily search API
// ABOUTME: Sends one search request per call and classifies transport, status and decoding failures

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"mentions-api/core/domain"
	"mentions-api/core/errors"
	"mentions-api/core/interfaces"
)

const (
	// DefaultURL is Tavily's search endpoint
	DefaultURL = "https://api.tavily.com/search"

	// APIName identifies the provider in errors and logs
	APIName = "tavily"

	// maxBodySize caps how much of a response is read
	maxBodySize = 10 << 20
)

// SearchRequest is the provider's request body
type SearchRequest struct {
	APIKey            string `json:"api_key"`
	Query             string `json:"query"`
	SearchDepth       string `json:"search_depth"`
	IncludeImages     bool   `json:"include_images"`
	IncludeAnswer     bool   `json:"include_answer,omitempty"`
	IncludeRawContent bool   `json:"include_raw_content,omitempty"`
	Days              int    `json:"days,omitempty"`
	Topic             string `json:"topic,omitempty"`
	MaxResults        int    `json:"max_results,omitempty"`
}

// NewsRequest builds the request used for news retrieval
func NewsRequest(apiKey, query string) SearchRequest {
	return SearchRequest{
		APIKey:            apiKey,
		Query:             query,
		SearchDepth:       "advanced",
		IncludeImages:     true,
		IncludeRawContent: true,
		Days:              2,
		Topic:             "general",
		MaxResults:        10,
	}
}

// ProfileRequest builds the lighter request used to describe a person
func ProfileRequest(apiKey, query string) SearchRequest {
	return SearchRequest{
		APIKey:        apiKey,
		Query:         query,
		SearchDepth:   "basic",
		IncludeImages: true,
		IncludeAnswer: true,
	}
}

// Client calls the search provider through the shared HTTP client.
// It never retries.
type Client struct {
	http    interfaces.HTTPClient
	url     string
	timeout time.Duration
}

// NewClient creates a provider client. Empty url selects DefaultURL and a
// non-positive timeout selects 20 seconds.
func NewClient(httpClient interfaces.HTTPClient, url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{http: httpClient, url: url, timeout: timeout}
}

// Search posts req and decodes the payload.
//
// Network failures return a TransportError. A non-2xx status or an
// undecodable body returns an ExternalAPIError carrying the provider's body.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*domain.NewsPayload, error) {
	if c.http == nil {
		return nil, &errors.TransportError{API: APIName, Err: fmt.Errorf("HTTP client not configured")}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.http.Post(ctx, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, &errors.TransportError{API: APIName, Err: err}
	}
	defer resp.Body().Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body(), maxBodySize))
	if err != nil {
		return nil, &errors.TransportError{API: APIName, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		if !json.Valid(data) {
			return nil, &errors.ExternalAPIError{
				StatusCode: resp.StatusCode(),
				Message:    fmt.Sprintf("malformed error response: %s", strings.TrimSpace(string(data))),
				API:        APIName,
				Malformed:  true,
			}
		}
		return nil, &errors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    compactBody(data),
			API:        APIName,
		}
	}

	var payload domain.NewsPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &errors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    fmt.Sprintf("malformed response: %v", err),
			API:        APIName,
			Malformed:  true,
		}
	}

	return &payload, nil
}

// compactBody returns JSON bodies in compact form and anything else trimmed
func compactBody(data []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err == nil {
		return buf.String()
	}
	return strings.TrimSpace(string(data))
}
