package middleware

import (
	"net/http"
	"strings"

	"github.com/ReimoK/PathBuddy/internal/auth"
)

// NewBearerAuth returns a middleware that resolves the Authorization header
// against the configured token map and stores the resulting user identifier
// in the request context.
//
// A missing or unknown token is not rejected: the request proceeds without
// an identity, and every read downstream degrades to empty results. Data
// simply does not exist for a user the system cannot name.
func NewBearerAuth(tokens auth.TokenMap) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if token, ok := strings.CutPrefix(header, "Bearer "); ok {
				if userID, known := tokens.Lookup(strings.TrimSpace(token)); known {
					r = r.WithContext(auth.WithUser(r.Context(), userID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
