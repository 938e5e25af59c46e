package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/arkanhadi/go-campus-services/internal/redisx"
)

// SessionStore is the account directory the transport boundary consults:
// an opaque bearer token maps to an account id until its TTL runs out.
type SessionStore struct {
	RDB *redis.Client
	TTL time.Duration
}

func (s *SessionStore) Issue(ctx context.Context, accountID string) (string, error) {
	token := uuid.NewString()
	key := fmt.Sprintf(redisx.KeySession, token)
	if err := s.RDB.Set(ctx, key, accountID, s.TTL).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

func (s *SessionStore) Verify(ctx context.Context, token string) (string, error) {
	key := fmt.Sprintf(redisx.KeySession, token)
	accountID, err := s.RDB.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrUnauthenticated
	}
	if err != nil {
		return "", err
	}
	return accountID, nil
}
