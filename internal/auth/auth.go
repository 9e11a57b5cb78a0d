// Package auth carries the current user identity through request contexts.
//
// The backend does not implement an identity provider; it consumes one. In
// production that is whatever issued the bearer tokens in AUTH_TOKENS; in
// tests it is WithUser directly. Absence of an identity is not an error
// anywhere in the system — stores degrade to empty results for an empty
// owner, so unauthenticated requests read as "no data".
package auth

import (
	"context"
	"fmt"
	"strings"
)

type ctxKey struct{}

// WithUser returns a context carrying the given user identifier.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserID returns the current user identifier, or "" and false when the
// context carries none.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// TokenMap maps static bearer tokens to user identifiers.
type TokenMap map[string]string

// Lookup resolves a bearer token to its user identifier.
func (m TokenMap) Lookup(token string) (string, bool) {
	id, ok := m[token]
	return id, ok
}

// ParseTokens parses the AUTH_TOKENS format: a comma-separated list of
// token=userID pairs. Empty entries are ignored; a pair without '=' or with
// an empty side is an error.
func ParseTokens(raw string) (TokenMap, error) {
	m := TokenMap{}
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		token, userID, ok := strings.Cut(entry, "=")
		if !ok || token == "" || userID == "" {
			return nil, fmt.Errorf("auth.ParseTokens: malformed entry %q (want token=userID)", entry)
		}
		m[token] = userID
	}
	return m, nil
}
