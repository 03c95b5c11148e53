package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentions-api/core/domain"
	coreerrors "mentions-api/core/errors"
)

func decodePayload(t *testing.T, body []byte) *domain.NewsPayload {
	t.Helper()
	var payload domain.NewsPayload
	require.NoError(t, json.Unmarshal(body, &payload))
	return &payload
}

func TestNewsHandler_RegisterRoutes(t *testing.T) {
	api := newTestAPI(t)
	NewNewsHandler(&mockNewsService{}).RegisterRoutes(api)

	paths := api.OpenAPI().Paths
	require.NotNil(t, paths["/api/fetch-news"])
	assert.NotNil(t, paths["/api/fetch-news"].Post)
	require.NotNil(t, paths["/api/news-feed"])
	assert.NotNil(t, paths["/api/news-feed"].Post)
	require.NotNil(t, paths["/api/news-cache/{name}"])
	assert.NotNil(t, paths["/api/news-cache/{name}"].Delete)
}

func TestNewsHandler_FetchNews_PassesPayloadThrough(t *testing.T) {
	var gotName string
	svc := &mockNewsService{
		fetchFunc: func(ctx context.Context, name string) (*domain.NewsPayload, error) {
			gotName = name
			return &domain.NewsPayload{
				Results: []domain.RawResult{{Title: "Tour", URL: "https://news.example.com/a", Content: "Announced the tour 2 hours ago"}},
				Fields: map[string]json.RawMessage{
					"query":         json.RawMessage(`"q"`),
					"answer":        json.RawMessage(`null`),
					"response_time": json.RawMessage(`1.25`),
				},
			}, nil
		},
	}
	api := newTestAPI(t)
	NewNewsHandler(svc).RegisterRoutes(api)

	resp := api.Post("/api/fetch-news", map[string]any{"name": "Taylor Swift"})

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Taylor Swift", gotName)

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "q", body["query"])
	assert.Equal(t, 1.25, body["response_time"])
	assert.Contains(t, body, "answer")
	assert.Len(t, body["results"], 1)
}

func TestNewsHandler_FetchNews_EmptyResults(t *testing.T) {
	api := newTestAPI(t)
	NewNewsHandler(&mockNewsService{}).RegisterRoutes(api)

	resp := api.Post("/api/fetch-news", map[string]any{"name": "Nobody"})

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decodePayload(t, resp.Body.Bytes()).Results)
	assert.JSONEq(t, `{"results":[]}`, resp.Body.String())
}

func TestNewsHandler_FetchNews_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "empty name",
			err:        &coreerrors.ValidationError{Field: "name", Message: "must not be empty"},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"validation error on field 'name': must not be empty"}`,
		},
		{
			name:       "missing key",
			err:        &coreerrors.ConfigurationError{Setting: "TAVILY_API_KEY"},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Server configuration error: Missing API Key"}`,
		},
		{
			name:       "provider rejected",
			err:        &coreerrors.ExternalAPIError{API: "tavily", StatusCode: 432, Message: `{"detail":{"error":"quota"}}`},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Tavily API failed: {\"detail\":{\"error\":\"quota\"}}"}`,
		},
		{
			name:       "provider error page",
			err:        &coreerrors.ExternalAPIError{API: "tavily", StatusCode: 502, Message: "malformed error response: Bad Gateway", Malformed: true},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to fetch news","details":"external API error from tavily: 502 - malformed error response: Bad Gateway"}`,
		},
		{
			name:       "network failure",
			err:        &coreerrors.TransportError{API: "tavily", Err: errors.New("proxyconnect tcp: refused")},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to fetch news","details":"proxyconnect tcp: refused"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockNewsService{
				fetchFunc: func(ctx context.Context, name string) (*domain.NewsPayload, error) {
					return nil, tt.err
				},
			}
			api := newTestAPI(t)
			NewNewsHandler(svc).RegisterRoutes(api)

			resp := api.Post("/api/fetch-news", map[string]any{"name": "Taylor Swift"})

			assert.Equal(t, tt.wantStatus, resp.Code)
			assert.JSONEq(t, tt.wantBody, resp.Body.String())
		})
	}
}

func TestNewsHandler_FetchNews_IgnoresUnknownFields(t *testing.T) {
	api := newTestAPI(t)
	NewNewsHandler(&mockNewsService{}).RegisterRoutes(api)

	resp := api.Post("/api/fetch-news", map[string]any{"name": "Taylor Swift", "platform": "web"})

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestNewsHandler_NewsFeed(t *testing.T) {
	svc := &mockNewsService{
		fetchItemsFunc: func(ctx context.Context, name string) ([]domain.NewsItem, error) {
			return []domain.NewsItem{{ID: "1", Subject: name, Content: "c", OriginalURL: "https://x.com/a", Source: domain.SourceTwitter}}, nil
		},
	}
	api := newTestAPI(t)
	NewNewsHandler(svc).RegisterRoutes(api)

	resp := api.Post("/api/news-feed", map[string]any{"name": "Taylor Swift"})

	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Subject string            `json:"subject"`
		Items   []domain.NewsItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Taylor Swift", body.Subject)
	require.Len(t, body.Items, 1)
	assert.Equal(t, domain.SourceTwitter, body.Items[0].Source)
}

func TestNewsHandler_NewsFeed_EmptyIsArray(t *testing.T) {
	api := newTestAPI(t)
	NewNewsHandler(&mockNewsService{}).RegisterRoutes(api)

	resp := api.Post("/api/news-feed", map[string]any{"name": "Nobody"})

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"subject":"Nobody","items":[]}`, resp.Body.String())
}

func TestNewsHandler_Invalidate(t *testing.T) {
	svc := &mockNewsService{}
	api := newTestAPI(t)
	NewNewsHandler(svc).RegisterRoutes(api)

	resp := api.Delete("/api/news-cache/Taylor%20Swift")

	assert.Equal(t, http.StatusNoContent, resp.Code)
	assert.Equal(t, []string{"Taylor Swift"}, svc.invalidated)
}

func TestPersonHandler_SearchPerson(t *testing.T) {
	svc := &mockPersonService{
		searchFunc: func(ctx context.Context, name string) (*domain.NewsPayload, error) {
			return &domain.NewsPayload{
				Results: []domain.RawResult{{Title: "Singer", Content: "American singer-songwriter"}},
				Fields:  map[string]json.RawMessage{"answer": json.RawMessage(`"A singer."`)},
			}, nil
		},
	}
	api := newTestAPI(t)
	NewPersonHandler(svc).RegisterRoutes(api)

	resp := api.Post("/api/search-person", map[string]any{"name": "Taylor Swift"})

	require.Equal(t, http.StatusOK, resp.Code)
	payload := decodePayload(t, resp.Body.Bytes())
	assert.Equal(t, "A singer.", payload.Answer())
	assert.Len(t, payload.Results, 1)
}

func TestPersonHandler_SearchPerson_Failure(t *testing.T) {
	svc := &mockPersonService{
		searchFunc: func(ctx context.Context, name string) (*domain.NewsPayload, error) {
			return nil, &coreerrors.TransportError{API: "tavily", Err: errors.New("timeout")}
		},
	}
	api := newTestAPI(t)
	NewPersonHandler(svc).RegisterRoutes(api)

	resp := api.Post("/api/search-person", map[string]any{"name": "Taylor Swift"})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.JSONEq(t, `{"error":"Failed to search person","details":"timeout"}`, resp.Body.String())
}

func TestPersonHandler_Profile(t *testing.T) {
	api := newTestAPI(t)
	NewPersonHandler(&mockPersonService{}).RegisterRoutes(api)

	resp := api.Post("/api/profile", map[string]any{"name": "Taylor Swift"})

	require.Equal(t, http.StatusOK, resp.Code)

	var profile domain.Profile
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &profile))
	assert.Equal(t, "Taylor Swift", profile.Name)
	assert.Equal(t, []string{"Taylor Swift"}, profile.Keywords)
}

func TestSummaryHandler_PrefersNewsContent(t *testing.T) {
	var gotDigest string
	svc := &mockSummaryService{
		textFunc: func(ctx context.Context, digest string) (string, error) {
			gotDigest = digest
			return "简报", nil
		},
		summarizeFunc: func(ctx context.Context, items []domain.NewsItem) (string, error) {
			t.Error("items should not be summarized when newsContent is set")
			return "", nil
		},
	}
	api := newTestAPI(t)
	NewSummaryHandler(svc).RegisterRoutes(api)

	resp := api.Post("/api/summarize", map[string]any{
		"newsContent": "- Tour: dates announced",
		"items":       []map[string]any{{"id": "1", "subject": "s", "content": "c", "originalUrl": "u", "source": "News", "publishedAt": ""}},
	})

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "- Tour: dates announced", gotDigest)
	assert.JSONEq(t, `{"summary":"简报"}`, resp.Body.String())
}

func TestSummaryHandler_UsesItems(t *testing.T) {
	var gotItems []domain.NewsItem
	svc := &mockSummaryService{
		summarizeFunc: func(ctx context.Context, items []domain.NewsItem) (string, error) {
			gotItems = items
			return "brief", nil
		},
	}
	api := newTestAPI(t)
	NewSummaryHandler(svc).RegisterRoutes(api)

	resp := api.Post("/api/summarize", map[string]any{
		"items": []map[string]any{{"id": "1", "subject": "s", "title": "Tour", "content": "c", "originalUrl": "u", "source": "News", "publishedAt": ""}},
	})

	require.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, gotItems, 1)
	assert.Equal(t, "Tour", gotItems[0].Title)
}

func TestSummaryHandler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantBody string
	}{
		{"missing key", &coreerrors.ConfigurationError{Setting: "GROQ_API_KEY"}, `{"error":"Server configuration error: Missing Groq API Key"}`},
		{"provider error", &coreerrors.ExternalAPIError{API: "groq", StatusCode: 429, Message: "rate limited"}, `{"error":"Failed to generate summary: rate limited"}`},
		{"network error", &coreerrors.TransportError{API: "groq", Err: errors.New("EOF")}, `{"error":"Failed to generate summary: EOF"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockSummaryService{
				textFunc: func(ctx context.Context, digest string) (string, error) {
					return "", tt.err
				},
			}
			api := newTestAPI(t)
			NewSummaryHandler(svc).RegisterRoutes(api)

			resp := api.Post("/api/summarize", map[string]any{"newsContent": "- a: b"})

			assert.Equal(t, http.StatusInternalServerError, resp.Code)
			assert.JSONEq(t, tt.wantBody, resp.Body.String())
		})
	}
}

func TestVerifyHandler(t *testing.T) {
	api := newTestAPI(t)
	NewVerifyHandler().RegisterRoutes(api)

	get := api.Get("/api/verify")
	assert.Equal(t, http.StatusOK, get.Code)
	assert.JSONEq(t, `{"status":"ok"}`, get.Body.String())

	post := api.Post("/api/verify")
	assert.Equal(t, http.StatusOK, post.Code)
	assert.JSONEq(t, `{"status":"ok"}`, post.Body.String())
}
