package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arkanhadi/go-campus-services/internal/accounts"
)

type fakeSessions struct {
	tokens map[string]string // token -> account id
}

func (f *fakeSessions) Issue(ctx context.Context, accountID string) (string, error) {
	tok := "tok-" + accountID
	f.tokens[tok] = accountID
	return tok, nil
}

func (f *fakeSessions) Verify(ctx context.Context, token string) (string, error) {
	id, ok := f.tokens[token]
	if !ok {
		return "", accounts.ErrUnauthenticated
	}
	return id, nil
}

func TestRequireAuth(t *testing.T) {
	sessions := &fakeSessions{tokens: map[string]string{"tok-acct-1": "acct-1"}}

	var gotAccount string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccount = AccountID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAuth(sessions)(next)

	tests := []struct {
		name       string
		authHeader string
		wantCode   int
	}{
		{"valid token", "Bearer tok-acct-1", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", http.StatusUnauthorized},
		{"wrong scheme", "Basic tok-acct-1", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotAccount = ""
			req := httptest.NewRequest(http.MethodGet, "/canteen/orders", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantCode, rr.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, "acct-1", gotAccount)
			} else {
				assert.Empty(t, gotAccount)
			}
		})
	}
}
