// ABOUTME: Access code gate for the API
// ABOUTME: Rejects requests whose x-access-code header does not match the configured secret

package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"mentions-api/core/interfaces"
)

const (
	// AccessCodeHeader carries the shared access code
	AccessCodeHeader = "x-access-code"

	// GatedPrefix is the path prefix protected by the gate; docs stay public
	GatedPrefix = "/api/"
)

// AccessGateMiddleware requires the x-access-code header to match the
// current access code. The code is read on every request; when none is
// configured the gate is open. Preflight requests always pass, as do paths
// outside GatedPrefix.
func AccessGateMiddleware(secrets interfaces.Secrets, logger interfaces.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || secrets == nil || !strings.HasPrefix(r.URL.Path, GatedPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			expected := secrets.AccessCode()
			if expected == "" {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get(AccessCodeHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
				logger.Warn("Rejected request with invalid access code", map[string]interface{}{
					"path":      r.URL.Path,
					"remote_ip": extractIP(r),
				})
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"Unauthorized: Invalid Access Code"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
