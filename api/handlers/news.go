// ABOUTME: News handlers for the Huma API
// ABOUTME: Exposes filtered provider payloads and the normalized feed for a subject

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"mentions-api/core/domain"
)

// NewsService interface defines the methods needed from the news service
type NewsService interface {
	Fetch(ctx context.Context, name string) (*domain.NewsPayload, error)
	FetchItems(ctx context.Context, name string) ([]domain.NewsItem, error)
	Invalidate(ctx context.Context, name string) error
}

// NewsHandler handles news-related HTTP requests
type NewsHandler struct {
	newsService NewsService
}

// NewNewsHandler creates a new news handler
func NewNewsHandler(newsService NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

// RegisterRoutes registers all news-related routes
func (h *NewsHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "fetchNews",
		Method:      http.MethodPost,
		Path:        "/api/fetch-news",
		Summary:     "Fetch recent news for a subject",
		Description: "Returns the search provider response with results limited to the last 48 hours. Responses are cached per subject.",
		Tags:        []string{"News"},
	}, h.FetchNews)

	huma.Register(api, huma.Operation{
		OperationID: "newsFeed",
		Method:      http.MethodPost,
		Path:        "/api/news-feed",
		Summary:     "Fetch the normalized news feed for a subject",
		Description: "Same retrieval as fetch-news, mapped to feed items with a source classification",
		Tags:        []string{"News"},
	}, h.NewsFeed)

	huma.Register(api, huma.Operation{
		OperationID:   "invalidateNews",
		Method:        http.MethodDelete,
		Path:          "/api/news-cache/{name}",
		Summary:       "Drop the cached news for a subject",
		Tags:          []string{"News"},
		DefaultStatus: http.StatusNoContent,
	}, h.Invalidate)
}

// SubjectRequest names the subject to look up
type SubjectRequest struct {
	_    struct{} `additionalProperties:"true"`
	Name string   `json:"name,omitempty" doc:"Subject name, used verbatim" example:"Taylor Swift"`
}

// FetchNewsInput defines the input for the FetchNews operation
type FetchNewsInput struct {
	Body SubjectRequest
}

// FetchNewsOutput defines the output for the FetchNews operation
type FetchNewsOutput struct {
	Body PayloadBody
}

// FetchNews handles the POST /api/fetch-news endpoint
func (h *NewsHandler) FetchNews(ctx context.Context, input *FetchNewsInput) (*FetchNewsOutput, error) {
	payload, err := h.newsService.Fetch(ctx, input.Body.Name)
	if err != nil {
		return nil, toAPIError(err, "Failed to fetch news")
	}
	return &FetchNewsOutput{Body: PayloadBody{Payload: payload}}, nil
}

// NewsFeedOutput defines the output for the NewsFeed operation
type NewsFeedOutput struct {
	Body struct {
		Subject string            `json:"subject" doc:"Subject the feed was built for"`
		Items   []domain.NewsItem `json:"items" doc:"Feed items in provider order"`
	}
}

// NewsFeed handles the POST /api/news-feed endpoint
func (h *NewsHandler) NewsFeed(ctx context.Context, input *FetchNewsInput) (*NewsFeedOutput, error) {
	items, err := h.newsService.FetchItems(ctx, input.Body.Name)
	if err != nil {
		return nil, toAPIError(err, "Failed to fetch news")
	}
	if items == nil {
		items = []domain.NewsItem{}
	}

	out := &NewsFeedOutput{}
	out.Body.Subject = input.Body.Name
	out.Body.Items = items
	return out, nil
}

// InvalidateInput defines the input for the Invalidate operation
type InvalidateInput struct {
	Name string `path:"name" doc:"Subject name"`
}

// Invalidate handles the DELETE /api/news-cache/{name} endpoint
func (h *NewsHandler) Invalidate(ctx context.Context, input *InvalidateInput) (*struct{}, error) {
	if err := h.newsService.Invalidate(ctx, input.Name); err != nil {
		return nil, toAPIError(err, "Failed to invalidate cache")
	}
	return nil, nil
}
