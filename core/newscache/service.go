// ABOUTME: Per-subject TTL cache for filtered news payloads
// ABOUTME: Wraps any cache backend in a timestamped envelope so expiry follows an injectable clock

package newscache

import (
	"context"
	"encoding/json"
	"time"

	"mentions-api/core/domain"
	"mentions-api/core/errors"
	"mentions-api/core/interfaces"
)

const (
	// DefaultTTL is how long a subject's payload is served from cache
	DefaultTTL = 172800 * time.Second

	// KeyPrefix namespaces news entries inside a shared backend
	KeyPrefix = "news:"
)

// entry is the stored envelope
type entry struct {
	StoredAt time.Time           `json:"stored_at"`
	Payload  *domain.NewsPayload `json:"payload"`
}

// Service stores filtered payloads keyed by the exact subject string.
// Reads never fail: anything unusable is reported as a miss.
type Service struct {
	backend interfaces.Cache
	logger  interfaces.Logger
	ttl     time.Duration
	now     func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithTTL overrides DefaultTTL. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a news cache over backend
func New(backend interfaces.Cache, logger interfaces.Logger, opts ...Option) *Service {
	s := &Service{
		backend: backend,
		logger:  logger,
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns the configured time to live
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Key returns the backend key for a subject
func Key(subject string) string {
	return KeyPrefix + subject
}

// Get returns the cached payload for subject if it is younger than the TTL.
// Expired entries are deleted from the backend.
func (s *Service) Get(ctx context.Context, subject string) (*domain.NewsPayload, bool) {
	if s.backend == nil {
		return nil, false
	}

	key := Key(subject)
	data, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.IsCacheMiss(err) {
			s.log().Warn("News cache read failed", map[string]interface{}{
				"subject": subject,
				"error":   err.Error(),
			})
		}
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil || e.Payload == nil {
		s.log().Warn("Discarding undecodable news cache entry", map[string]interface{}{
			"subject": subject,
		})
		_ = s.backend.Delete(ctx, key)
		return nil, false
	}

	age := s.now().Sub(e.StoredAt)
	if age > s.ttl {
		s.log().Debug("News cache entry expired", map[string]interface{}{
			"subject": subject,
			"age":     age.String(),
		})
		if err := s.backend.Delete(ctx, key); err != nil {
			s.log().Warn("Failed to delete expired news cache entry", map[string]interface{}{
				"subject": subject,
				"error":   err.Error(),
			})
		}
		return nil, false
	}

	return e.Payload, true
}

// Set stores payload for subject, stamped with the current time.
// The backend receives the same TTL so storage does not outlive the entry.
func (s *Service) Set(ctx context.Context, subject string, payload *domain.NewsPayload) error {
	if s.backend == nil || payload == nil {
		return nil
	}

	data, err := json.Marshal(entry{StoredAt: s.now().UTC(), Payload: payload})
	if err != nil {
		return err
	}

	return s.backend.Set(ctx, Key(subject), data, s.ttl)
}

// Delete removes the cached payload for subject
func (s *Service) Delete(ctx context.Context, subject string) error {
	if s.backend == nil {
		return nil
	}
	return s.backend.Delete(ctx, Key(subject))
}

func (s *Service) log() interfaces.Logger {
	if s.logger == nil {
		return nopLogger{}
	}
	return s.logger
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
