package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Create(ctx context.Context, email, name, passwordHash, department string) (Account, error) {
	var existing string
	err := r.DB.QueryRow(ctx, `SELECT id FROM accounts WHERE email=$1`, email).Scan(&existing)
	if err == nil {
		return Account{}, ErrEmailTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Account{}, err
	}

	a := Account{
		ID:         uuid.NewString(),
		Email:      email,
		Name:       name,
		Department: department,
		CreatedAt:  time.Now().UTC(),
	}
	_, err = r.DB.Exec(ctx, `
		INSERT INTO accounts(id, email, name, password_hash, department, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		a.ID, a.Email, a.Name, passwordHash, a.Department, a.CreatedAt)
	if err != nil {
		// Two registrations can race past the SELECT; the unique index
		// on email decides the winner.
		if isUniqueViolation(err) {
			return Account{}, ErrEmailTaken
		}
		return Account{}, err
	}
	return a, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// GetByEmail also returns the stored password hash for login checks.
func (r *Repo) GetByEmail(ctx context.Context, email string) (Account, string, error) {
	var a Account
	var hash string
	err := r.DB.QueryRow(ctx, `
		SELECT id, email, name, password_hash, COALESCE(department, ''), created_at
		FROM accounts WHERE email=$1`, email).
		Scan(&a.ID, &a.Email, &a.Name, &hash, &a.Department, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return Account{}, "", err
	}
	return a, hash, nil
}
