package news

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"mentions-api/core/errors"
	"mentions-api/core/interfaces"
)

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	mu       sync.Mutex
	calls    int
	bodies   []string
	postFunc func(ctx context.Context, url string, body io.Reader) (interfaces.Response, error)
}

func (m *mockHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	data, _ := io.ReadAll(body)
	m.mu.Lock()
	m.calls++
	m.bodies = append(m.bodies, string(data))
	m.mu.Unlock()

	if m.postFunc != nil {
		return m.postFunc(ctx, url, strings.NewReader(string(data)))
	}
	return &mockResponse{statusCode: 200, body: `{"results":[]}`}, nil
}

func (m *mockHTTPClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
	headers    map[string]string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	if m.headers != nil {
		return m.headers[key]
	}
	return ""
}

// mockCache is a map-backed implementation of the Cache interface
type mockCache struct {
	mu    sync.Mutex
	items map[string][]byte
	sets  int
}

func newMockCache() *mockCache {
	return &mockCache{items: map[string][]byte{}}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.items[key]; ok {
		return v, nil
	}
	return nil, errors.ErrCacheMiss
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	m.sets++
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *mockCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// mockSecrets returns fixed credentials
type mockSecrets struct {
	searchKey  string
	llmKey     string
	accessCode string
}

func (m *mockSecrets) SearchAPIKey() string { return m.searchKey }
func (m *mockSecrets) LLMAPIKey() string    { return m.llmKey }
func (m *mockSecrets) AccessCode() string   { return m.accessCode }

// mockLogger discards everything
type mockLogger struct{}

func (mockLogger) Debug(string, map[string]interface{}) {}
func (mockLogger) Info(string, map[string]interface{})  {}
func (mockLogger) Warn(string, map[string]interface{})  {}
func (mockLogger) Error(string, map[string]interface{}) {}
