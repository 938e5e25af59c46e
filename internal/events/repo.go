package events

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Create(ctx context.Context, title, description, department string, eventTime *time.Time) (Event, error) {
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
	_, err := r.DB.Exec(ctx, `
		INSERT INTO campus_events(id, title, description, department, event_time, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		e.ID, e.Title, e.Description, e.Department, e.EventTime, e.CreatedAt)
	if err != nil {
		return Event{}, err
	}
	return e, nil
}

// List returns events newest first, optionally filtered by department.
func (r *Repo) List(ctx context.Context, department string) ([]Event, error) {
	q := `SELECT id, title, COALESCE(description,''), COALESCE(department,''), event_time, created_at
	      FROM campus_events`
	args := []any{}
	if department != "" {
		q += ` WHERE department=$1`
		args = append(args, department)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Department, &e.EventTime, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
