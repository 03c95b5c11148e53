// Package requestid carries the inbound request ID through a context so
// outbound calls and log lines can be correlated with it.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP header used to propagate request IDs
const Header = "X-Request-ID"

type ctxKey struct{}

// NewContext returns a copy of ctx carrying id
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request ID stored in ctx, or ""
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// New generates a fresh request ID
func New() string {
	return uuid.New().String()
}
