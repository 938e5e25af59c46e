package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkanhadi/go-campus-services/internal/accounts"
)

type fakeAccountStore struct {
	byEmail map[string]accounts.Account
	hashes  map[string]string
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{
		byEmail: map[string]accounts.Account{},
		hashes:  map[string]string{},
	}
}

func (f *fakeAccountStore) Create(ctx context.Context, email, name, passwordHash, department string) (accounts.Account, error) {
	if _, ok := f.byEmail[email]; ok {
		return accounts.Account{}, accounts.ErrEmailTaken
	}
	a := accounts.Account{
		ID: "acct-" + name, Email: email, Name: name,
		Department: department, CreatedAt: time.Now().UTC(),
	}
	f.byEmail[email] = a
	f.hashes[email] = passwordHash
	return a, nil
}

func (f *fakeAccountStore) GetByEmail(ctx context.Context, email string) (accounts.Account, string, error) {
	a, ok := f.byEmail[email]
	if !ok {
		return accounts.Account{}, "", accounts.ErrInvalidCredentials
	}
	return a, f.hashes[email], nil
}

func authRig() (http.Handler, *fakeAccountStore, *fakeSessions) {
	store := newFakeAccountStore()
	sessions := &fakeSessions{tokens: map[string]string{}}
	r := NewRouter()
	h := &AuthHandler{Accounts: store, Sessions: sessions}
	h.Register(r)
	return r, store, sessions
}

func postJSON(router http.Handler, target string, body map[string]any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRegisterAndLogin(t *testing.T) {
	router, store, _ := authRig()

	rr := postJSON(router, "/auth/register", map[string]any{
		"email": "budi@campus.ac.id", "name": "Budi", "password": "rahasia", "department": "FT",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.NotEqual(t, "rahasia", store.hashes["budi@campus.ac.id"], "password must be stored hashed")

	// duplicate email
	rr = postJSON(router, "/auth/register", map[string]any{
		"email": "budi@campus.ac.id", "name": "Budi", "password": "rahasia",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// missing fields
	rr = postJSON(router, "/auth/register", map[string]any{"email": "x@y.z"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = postJSON(router, "/auth/login", map[string]any{
		"email": "budi@campus.ac.id", "password": "rahasia",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, _, _ := authRig()

	postJSON(router, "/auth/register", map[string]any{
		"email": "sari@campus.ac.id", "name": "Sari", "password": "benar",
	})

	rr := postJSON(router, "/auth/login", map[string]any{
		"email": "sari@campus.ac.id", "password": "salah",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = postJSON(router, "/auth/login", map[string]any{
		"email": "tidak@ada.id", "password": "x",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
