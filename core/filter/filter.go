// ABOUTME: Freshness and quality filter applied to every provider result set
// ABOUTME: Drops placeholder pages, very short snippets, and anything older than the window

package filter

import (
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"mentions-api/core/domain"
	timeutil "mentions-api/pkg/utils/time"
)

const (
	// DefaultWindow is how far back a dated result may be published
	DefaultWindow = 48 * time.Hour

	// MinContentLength is the shortest content, in characters, worth keeping
	MinContentLength = 20
)

// BoilerplatePhrases are placeholders sites serve to automated fetchers.
// Content containing any of them carries no information about the subject.
var BoilerplatePhrases = []string{
	"JavaScript is disabled",
	"Please enable JavaScript",
	"Sign up to see photos",
	"Log in to Twitter",
	"Cookies are disabled",
	"People on X are the first to know",
	"Log in to X",
	"Happening now",
}

// SocialDomains are hosts whose pages rarely carry a machine-readable date
var SocialDomains = []string{
	"x.com",
	"twitter.com",
	"weibo.com",
}

// relativeTimePattern matches "5 minutes ago", "1 hour ago" and similar
var relativeTimePattern = regexp.MustCompile(`(?i)\b\d+\s+(?:minute|hour)s?\s+ago\b`)

// RecencyPolicy decides what happens to social media results without a date
type RecencyPolicy int

const (
	// PolicyRelativePhrase keeps undated social results only when the text
	// says how recently they were posted
	PolicyRelativePhrase RecencyPolicy = iota

	// PolicySocialPass keeps every undated social result
	PolicySocialPass
)

// String returns the configuration name of the policy
func (p RecencyPolicy) String() string {
	switch p {
	case PolicySocialPass:
		return "social_pass"
	default:
		return "relative_phrase"
	}
}

// ParsePolicy maps a configuration value to a policy; unknown values get the default
func ParsePolicy(s string) RecencyPolicy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "social_pass", "legacy":
		return PolicySocialPass
	default:
		return PolicyRelativePhrase
	}
}

// Reason explains a keep or drop decision
type Reason string

const (
	ReasonKept        Reason = "kept"
	ReasonBoilerplate Reason = "boilerplate"
	ReasonTooShort    Reason = "too_short"
	ReasonStale       Reason = "stale"
	ReasonUndated     Reason = "undated"
)

// Decision is the verdict for one result
type Decision struct {
	Keep   bool
	Reason Reason
}

// Filter classifies provider results. It holds no mutable state and is safe
// for concurrent use.
type Filter struct {
	window time.Duration
	policy RecencyPolicy
	now    func() time.Time
}

// Option configures a Filter
type Option func(*Filter)

// WithWindow overrides the recency window
func WithWindow(window time.Duration) Option {
	return func(f *Filter) {
		if window > 0 {
			f.window = window
		}
	}
}

// WithPolicy selects the policy for undated social results
func WithPolicy(policy RecencyPolicy) Option {
	return func(f *Filter) {
		f.policy = policy
	}
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(f *Filter) {
		if now != nil {
			f.now = now
		}
	}
}

// New creates a filter with a 48 hour window and the relative phrase policy
func New(opts ...Option) *Filter {
	f := &Filter{
		window: DefaultWindow,
		policy: PolicyRelativePhrase,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Policy reports the configured recency policy
func (f *Filter) Policy() RecencyPolicy {
	return f.policy
}

// Apply returns the results that pass both gates, in input order.
// The input slice is not modified.
func (f *Filter) Apply(results []domain.RawResult) []domain.RawResult {
	cutoff := f.now().Add(-f.window)

	kept := make([]domain.RawResult, 0, len(results))
	for _, item := range results {
		if f.classify(item, cutoff).Keep {
			kept = append(kept, item)
		}
	}
	return kept
}

// Classify returns the decision for a single result against the current time
func (f *Filter) Classify(item domain.RawResult) Decision {
	return f.classify(item, f.now().Add(-f.window))
}

func (f *Filter) classify(item domain.RawResult, cutoff time.Time) Decision {
	if IsBoilerplate(item.Content) {
		return Decision{Reason: ReasonBoilerplate}
	}
	if utf8.RuneCountInString(item.Content) < MinContentLength {
		return Decision{Reason: ReasonTooShort}
	}

	if strings.TrimSpace(item.PublishedDate) != "" {
		// A date that cannot be read is never recent
		published, ok := timeutil.Parse(item.PublishedDate)
		if !ok || published.Before(cutoff) {
			return Decision{Reason: ReasonStale}
		}
		return Decision{Keep: true, Reason: ReasonKept}
	}

	if !IsSocialURL(item.URL) {
		return Decision{Reason: ReasonUndated}
	}
	if f.policy == PolicySocialPass || HasRelativeTime(item.Content) {
		return Decision{Keep: true, Reason: ReasonKept}
	}
	return Decision{Reason: ReasonUndated}
}

// IsBoilerplate reports whether content contains a known placeholder phrase
func IsBoilerplate(content string) bool {
	for _, phrase := range BoilerplatePhrases {
		if strings.Contains(content, phrase) {
			return true
		}
	}
	return false
}

// HasRelativeTime reports whether text mentions a minutes or hours ago posting time
func HasRelativeTime(text string) bool {
	return relativeTimePattern.MatchString(text)
}

// IsSocialURL reports whether rawURL is hosted on one of SocialDomains or a subdomain
func IsSocialURL(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Hostname() == "" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	for _, d := range SocialDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
