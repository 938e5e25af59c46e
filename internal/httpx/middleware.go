package httpx

import (
	"context"
	"net/http"
	"strings"
)

// Sessions resolves a bearer token to an account id. Implemented by
// accounts.SessionStore.
type Sessions interface {
	Issue(ctx context.Context, accountID string) (string, error)
	Verify(ctx context.Context, token string) (string, error)
}

type ctxKey int

const accountIDKey ctxKey = iota

// RequireAuth resolves the caller's identity once at the boundary; core
// calls below receive the account id as a plain value.
func RequireAuth(s Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			accountID, err := s.Verify(r.Context(), token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), accountIDKey, accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// AccountID returns the identity stored by RequireAuth.
func AccountID(ctx context.Context) string {
	id, _ := ctx.Value(accountIDKey).(string)
	return id
}
