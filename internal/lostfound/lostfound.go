package lostfound

import (
	"errors"
	"time"
)

type Posting struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	ImageFile   string    `json:"image_file,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

var (
	ErrTitleRequired   = errors.New("title required")
	ErrUnsupportedFile = errors.New("unsupported image type")
)
