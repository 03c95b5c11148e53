// ABOUTME: Summary service building a text digest of news items for the summarizer
// ABOUTME: Short-circuits empty input without calling the model

package summary

import (
	"context"
	"fmt"
	"strings"

	"mentions-api/core/domain"
	"mentions-api/core/errors"
	"mentions-api/core/interfaces"
)

const (
	// DefaultMaxItems is how many news items go into one digest
	DefaultMaxItems = 10

	// NoNews is returned when there is nothing to summarize
	NoNews = "No news found."
)

// Service produces briefings from news items
type Service struct {
	summarizer interfaces.Summarizer
	logger     interfaces.Logger
	maxItems   int
}

// NewService creates a summary service. maxItems <= 0 selects DefaultMaxItems.
func NewService(summarizer interfaces.Summarizer, logger interfaces.Logger, maxItems int) *Service {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	return &Service{summarizer: summarizer, logger: logger, maxItems: maxItems}
}

// Digest renders up to max items as "- title: content" lines
func Digest(items []domain.NewsItem, max int) string {
	if max > 0 && len(items) > max {
		items = items[:max]
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("- %s: %s", item.Title, item.Content))
	}
	return strings.Join(lines, "\n")
}

// Summarize briefs the given news items
func (s *Service) Summarize(ctx context.Context, items []domain.NewsItem) (string, error) {
	if len(items) == 0 {
		return NoNews, nil
	}
	return s.SummarizeText(ctx, Digest(items, s.maxItems))
}

// SummarizeText briefs a digest the caller already rendered
func (s *Service) SummarizeText(ctx context.Context, digest string) (string, error) {
	if strings.TrimSpace(digest) == "" {
		return NoNews, nil
	}
	if s.summarizer == nil {
		return "", &errors.ConfigurationError{Setting: "GROQ_API_KEY"}
	}

	summary, err := s.summarizer.Summarize(ctx, digest)
	if err != nil {
		s.logger.Error("Summary generation failed", map[string]interface{}{
			"error":        err.Error(),
			"digest_bytes": len(digest),
		})
		return "", err
	}

	s.logger.Info("Summary generated", map[string]interface{}{
		"digest_bytes":  len(digest),
		"summary_bytes": len(summary),
	})
	return summary, nil
}
