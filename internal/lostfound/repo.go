package lostfound

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Create(ctx context.Context, accountID, title, description, location, imageFile string) (Posting, error) {
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
	_, err := r.DB.Exec(ctx, `
		INSERT INTO lost_items(id, account_id, title, description, location, image_file, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.AccountID, p.Title, p.Description, p.Location, p.ImageFile, p.CreatedAt)
	if err != nil {
		return Posting{}, err
	}
	return p, nil
}

func (r *Repo) List(ctx context.Context) ([]Posting, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, account_id, title, COALESCE(description,''), COALESCE(location,''),
		       COALESCE(image_file,''), created_at
		FROM lost_items ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Posting
	for rows.Next() {
		var p Posting
		if err := rows.Scan(&p.ID, &p.AccountID, &p.Title, &p.Description, &p.Location, &p.ImageFile, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
