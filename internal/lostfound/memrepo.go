package lostfound

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemRepo keeps postings in memory. Used when no Postgres DSN is
// configured.
type MemRepo struct {
	mu       sync.Mutex
	postings []Posting
}

func NewMemRepo() *MemRepo { return &MemRepo{} }

func (r *MemRepo) Create(ctx context.Context, accountID, title, description, location, imageFile string) (Posting, error) {
	if strings.TrimSpace(title) == "" {
		return Posting{}, ErrTitleRequired
	}
	p := Posting{
		ID:          uuid.NewString(),
		AccountID:   accountID,
		Title:       title,
		Description: description,
		Location:    location,
		ImageFile:   imageFile,
		CreatedAt:   time.Now().UTC(),
	}

	r.mu.Lock()
	r.postings = append(r.postings, p)
	r.mu.Unlock()
	return p, nil
}

// List returns postings newest first.
func (r *MemRepo) List(ctx context.Context) ([]Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Posting, 0, len(r.postings))
	for i := len(r.postings) - 1; i >= 0; i-- {
		out = append(out, r.postings[i])
	}
	return out, nil
}
