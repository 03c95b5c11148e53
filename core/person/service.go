// ABOUTME: Person lookup service describing a subject before it is tracked
// ABOUTME: Runs a basic provider search and condenses it into a profile

package person

import (
	"context"
	"strings"
	"time"

	"mentions-api/core/domain"
	"mentions-api/core/errors"
	"mentions-api/core/interfaces"
	"mentions-api/core/provider"
	"mentions-api/core/query"
)

// Searcher runs one provider search
type Searcher interface {
	Search(ctx context.Context, req provider.SearchRequest) (*domain.NewsPayload, error)
}

// Service looks up public figures
type Service struct {
	searcher Searcher
	secrets  interfaces.Secrets
	logger   interfaces.Logger
}

// NewService creates a person lookup service
func NewService(deps interfaces.Dependencies, searchURL string, timeout time.Duration) *Service {
	return &Service{
		searcher: provider.NewClient(deps.HTTPClient, searchURL, timeout),
		secrets:  deps.Secrets,
		logger:   deps.Logger,
	}
}

// Search returns the raw provider payload for a profile query on name
func (s *Service) Search(ctx context.Context, name string) (*domain.NewsPayload, error) {
	q, err := query.BuildProfile(name)
	if err != nil {
		return nil, err
	}

	apiKey := ""
	if s.secrets != nil {
		apiKey = s.secrets.SearchAPIKey()
	}
	if apiKey == "" {
		return nil, &errors.ConfigurationError{Setting: "TAVILY_API_KEY"}
	}

	payload, err := s.searcher.Search(ctx, provider.ProfileRequest(apiKey, q))
	if err != nil {
		s.logger.Error("Person search failed", map[string]interface{}{
			"subject": name,
			"error":   err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Person search completed", map[string]interface{}{
		"subject": name,
		"results": len(payload.Results),
	})
	return payload, nil
}

// Lookup searches for name and builds its profile
func (s *Service) Lookup(ctx context.Context, name string) (*domain.Profile, error) {
	payload, err := s.Search(ctx, name)
	if err != nil {
		return nil, err
	}
	return BuildProfile(name, payload), nil
}

// BuildProfile condenses a profile search payload. The description prefers
// the provider's answer, then the first result's content.
func BuildProfile(name string, payload *domain.NewsPayload) *domain.Profile {
	profile := &domain.Profile{
		Name:        name,
		Description: domain.DefaultProfileDescription,
		Keywords:    []string{name},
	}
	if payload == nil {
		return profile
	}

	var first *domain.RawResult
	if len(payload.Results) > 0 {
		first = &payload.Results[0]
	}

	if answer := strings.TrimSpace(payload.Answer()); answer != "" {
		profile.Description = answer
	} else if first != nil && strings.TrimSpace(first.Content) != "" {
		profile.Description = first.Content
	}

	if images := payload.Images(); len(images) > 0 {
		profile.AvatarURL = images[0]
	} else if first != nil {
		profile.AvatarURL = first.ImageURL
	}

	if first != nil {
		profile.JobTitle = first.Title
	}

	return profile
}
