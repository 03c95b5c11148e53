// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for collaborators that live outside the retrieval pipeline

package interfaces

import "context"

// Secrets exposes credentials that may change while the process runs.
// Every method reads the current value; nothing is cached.
type Secrets interface {
	// SearchAPIKey returns the search provider key, or "" when unset
	SearchAPIKey() string

	// LLMAPIKey returns the summarization provider key, or "" when unset
	LLMAPIKey() string

	// AccessCode returns the shared access code, or "" when the gate is open
	AccessCode() string
}

// Summarizer turns a text digest of news items into a short briefing
type Summarizer interface {
	Summarize(ctx context.Context, digest string) (string, error)
}
