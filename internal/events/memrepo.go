package events

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemRepo keeps events in memory. Used when no Postgres DSN is
// configured.
type MemRepo struct {
	mu     sync.Mutex
	events []Event
}

func NewMemRepo() *MemRepo { return &MemRepo{} }

func (r *MemRepo) Create(ctx context.Context, title, description, department string, eventTime *time.Time) (Event, error) {
	if strings.TrimSpace(title) == "" {
		return Event{}, ErrTitleRequired
	}
	e := Event{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Department:  department,
		EventTime:   eventTime,
		CreatedAt:   time.Now().UTC(),
	}

	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
	return e, nil
}

// List returns events newest first, optionally filtered by department.
func (r *MemRepo) List(ctx context.Context, department string) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Event, 0, len(r.events))
	for i := len(r.events) - 1; i >= 0; i-- {
		if department != "" && r.events[i].Department != department {
			continue
		}
		out = append(out, r.events[i])
	}
	return out, nil
}
