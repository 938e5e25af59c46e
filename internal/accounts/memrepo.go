package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemRepo keeps accounts in memory. Used when no Postgres DSN is
// configured.
type MemRepo struct {
	mu      sync.Mutex
	byEmail map[string]memAccount
}

type memAccount struct {
	acct Account
	hash string
}

func NewMemRepo() *MemRepo {
	return &MemRepo{byEmail: make(map[string]memAccount)}
}

func (r *MemRepo) Create(ctx context.Context, email, name, passwordHash, department string) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[email]; ok {
		return Account{}, ErrEmailTaken
	}
	a := Account{
		ID:         uuid.NewString(),
		Email:      email,
		Name:       name,
		Department: department,
		CreatedAt:  time.Now().UTC(),
	}
	r.byEmail[email] = memAccount{acct: a, hash: passwordHash}
	return a, nil
}

func (r *MemRepo) GetByEmail(ctx context.Context, email string) (Account, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byEmail[email]
	if !ok {
		return Account{}, "", ErrInvalidCredentials
	}
	return m.acct, m.hash, nil
}
