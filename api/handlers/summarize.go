// ABOUTME: Summary handler for the Huma API
// ABOUTME: Turns news text or feed items into a short briefing

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"mentions-api/core/domain"
	coreerrors "mentions-api/core/errors"
)

// SummaryService interface defines the methods needed from the summary service
type SummaryService interface {
	Summarize(ctx context.Context, items []domain.NewsItem) (string, error)
	SummarizeText(ctx context.Context, digest string) (string, error)
}

// SummaryHandler handles briefing requests
type SummaryHandler struct {
	summaryService SummaryService
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(summaryService SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// RegisterRoutes registers summary routes
func (h *SummaryHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "summarize",
		Method:      http.MethodPost,
		Path:        "/api/summarize",
		Summary:     "Summarize news",
		Description: "Generates a concise briefing from pre-rendered news text, or from feed items when no text is given",
		Tags:        []string{"Summary"},
	}, h.Summarize)
}

// SummarizeInput defines the input for the Summarize operation
type SummarizeInput struct {
	Body struct {
		_           struct{}          `additionalProperties:"true"`
		NewsContent string            `json:"newsContent,omitempty" doc:"News text to summarize"`
		Items       []domain.NewsItem `json:"items,omitempty" doc:"Feed items to summarize when newsContent is empty"`
	}
}

// SummarizeOutput defines the output for the Summarize operation
type SummarizeOutput struct {
	Body struct {
		Summary string `json:"summary" doc:"Generated briefing"`
	}
}

// Summarize handles the POST /api/summarize endpoint
func (h *SummaryHandler) Summarize(ctx context.Context, input *SummarizeInput) (*SummarizeOutput, error) {
	var (
		summary string
		err     error
	)
	if input.Body.NewsContent != "" || len(input.Body.Items) == 0 {
		summary, err = h.summaryService.SummarizeText(ctx, input.Body.NewsContent)
	} else {
		summary, err = h.summaryService.Summarize(ctx, input.Body.Items)
	}

	if err != nil {
		if coreerrors.IsConfiguration(err) {
			return nil, toAPIError(err, "")
		}
		return nil, &APIError{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate summary: " + causeMessage(err),
		}
	}

	out := &SummarizeOutput{}
	out.Body.Summary = summary
	return out, nil
}
