package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerrors "mentions-api/core/errors"
)

type mockSecrets struct{ key string }

func (m *mockSecrets) SearchAPIKey() string { return "" }
func (m *mockSecrets) LLMAPIKey() string    { return m.key }
func (m *mockSecrets) AccessCode() string   { return "" }

func completionServer(t *testing.T, status int, reply string) (*httptest.Server, *[]map[string]interface{}) {
	t.Helper()
	var requests []map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer gsk-test", r.Header.Get("Authorization"))

		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		requests = append(requests, body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

const okReply = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"created": 1717000000,
	"model": "llama-3.3-70b-versatile",
	"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "今日简报"}}],
	"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
}`

func TestSummarize_Success(t *testing.T) {
	server, requests := completionServer(t, http.StatusOK, okReply)
	client := NewClient(&mockSecrets{key: "gsk-test"}, server.Client(), server.URL, "")

	summary, err := client.Summarize(context.Background(), "- A: b")
	require.NoError(t, err)
	assert.Equal(t, "今日简报", summary)

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, DefaultModel, req["model"])

	messages := req["messages"].([]interface{})
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]interface{})["role"])
	assert.Equal(t, systemPrompt, messages[0].(map[string]interface{})["content"])
	assert.Equal(t, "- A: b", messages[1].(map[string]interface{})["content"])
}

func TestSummarize_MissingKey(t *testing.T) {
	client := NewClient(&mockSecrets{}, nil, "", "")

	_, err := client.Summarize(context.Background(), "x")

	assert.True(t, coreerrors.IsConfiguration(err))
}

func TestSummarize_APIError(t *testing.T) {
	server, _ := completionServer(t, http.StatusTooManyRequests, `{"error":{"message":"rate limited","type":"rate_limit"}}`)
	client := NewClient(&mockSecrets{key: "gsk-test"}, server.Client(), server.URL, "custom-model")

	_, err := client.Summarize(context.Background(), "x")

	var apiErr *coreerrors.ExternalAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, APIName, apiErr.API)
}

func TestSummarize_NoChoices(t *testing.T) {
	server, _ := completionServer(t, http.StatusOK, `{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`)
	client := NewClient(&mockSecrets{key: "gsk-test"}, server.Client(), server.URL, "")

	_, err := client.Summarize(context.Background(), "x")
	assert.True(t, coreerrors.IsExternalAPI(err))
}

func TestSummarize_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(&mockSecrets{key: "gsk-test"}, nil, url, "")

	_, err := client.Summarize(context.Background(), "x")
	assert.True(t, coreerrors.IsTransport(err))
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(nil, nil, "https://example.com/v1", "")
	assert.Equal(t, "https://example.com/v1/", client.baseURL)
	assert.Equal(t, DefaultModel, client.model)
	assert.Contains(t, client.String(), DefaultModel)
}
