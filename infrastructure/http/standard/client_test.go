package standard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentions-api/infrastructure/proxy"
	"mentions-api/pkg/requestid"
)

type captureLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *captureLogger) add(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, msg)
}

func (l *captureLogger) Debug(msg string, _ map[string]interface{}) { l.add(msg) }
func (l *captureLogger) Info(msg string, _ map[string]interface{})  { l.add(msg) }
func (l *captureLogger) Warn(msg string, _ map[string]interface{})  { l.add(msg) }
func (l *captureLogger) Error(msg string, _ map[string]interface{}) { l.add(msg) }

func TestNewStandardHTTPClient_Timeout(t *testing.T) {
	assert.Equal(t, 10*time.Second, NewStandardHTTPClient(10*time.Second).Client().Timeout)
	assert.Equal(t, DefaultTimeout, NewStandardHTTPClient(0).Client().Timeout)
}

func TestStandardHTTPClient_Post(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "req-1", r.Header.Get(requestid.Header))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"query":"q"}`, string(body))

		w.Header().Set("X-Test", "yes")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	logger := &captureLogger{}
	client := NewStandardHTTPClient(5*time.Second, WithLogger(logger), WithTracing())
	ctx := requestid.NewContext(context.Background(), "req-1")

	resp, err := client.Post(ctx, server.URL, strings.NewReader(`{"query":"q"}`))
	require.NoError(t, err)
	defer resp.Body().Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode())
	assert.Equal(t, "yes", resp.Header("x-test"))
	body, _ := io.ReadAll(resp.Body())
	assert.Equal(t, `{"ok":true}`, string(body))

	assert.Contains(t, logger.msgs, "Outgoing HTTP request")
	assert.Contains(t, logger.msgs, "Outgoing HTTP response")
}

func TestStandardHTTPClient_Post_NoRetryOnServerError(t *testing.T) {
	var calls int
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	resp, err := NewStandardHTTPClient(time.Second).Post(context.Background(), server.URL, strings.NewReader("{}"))
	require.NoError(t, err)
	resp.Body().Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode())
	assert.Equal(t, 1, calls)
}

func TestStandardHTTPClient_Post_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	logger := &captureLogger{}
	client := NewStandardHTTPClient(50*time.Millisecond, WithLogger(logger))

	_, err := client.Post(context.Background(), server.URL, strings.NewReader("{}"))
	assert.Error(t, err)
	assert.Contains(t, logger.msgs, "Outgoing HTTP request failed")
}

func TestStandardHTTPClient_Post_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStandardHTTPClient(time.Second).Post(ctx, server.URL, strings.NewReader("{}"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStandardHTTPClient_Post_InvalidURL(t *testing.T) {
	_, err := NewStandardHTTPClient(time.Second).Post(context.Background(), "://bad", strings.NewReader("{}"))
	assert.Error(t, err)
}

func TestStandardHTTPClient_UsesProxyResolver(t *testing.T) {
	var proxied bool
	proxyServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proxied = true
		assert.Equal(t, "api.search.test", r.URL.Host)
		w.WriteHeader(http.StatusOK)
	}))
	defer proxyServer.Close()

	t.Setenv("HTTPS_PROXY", "")
	t.Setenv("https_proxy", "")
	t.Setenv("HTTP_PROXY", proxyServer.URL)
	t.Setenv("NO_PROXY", "")
	t.Setenv("no_proxy", "")

	client := NewStandardHTTPClient(time.Second, WithProxyResolver(proxy.NewResolver(nil)))

	resp, err := client.Post(context.Background(), "http://api.search.test/search", strings.NewReader("{}"))
	require.NoError(t, err)
	resp.Body().Close()

	assert.True(t, proxied)
}
