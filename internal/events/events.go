package events

import (
	"errors"
	"time"
)

type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Department  string     `json:"department,omitempty"`
	EventTime   *time.Time `json:"event_time,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

var ErrTitleRequired = errors.New("title required")

// EventCreated is broadcast when a new campus event is announced.
type EventCreated struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Department string `json:"department,omitempty"`
}

func (p EventCreated) PartitionKey() string { return p.ID }
