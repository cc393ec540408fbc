package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const sessionKeyPrefix = "smartfarm:session:"

// SessionStore maps opaque bearer tokens to user IDs with a TTL.
type SessionStore struct {
	kv  KV
	ttl time.Duration
}

func NewSessionStore(kv KV, ttl time.Duration) *SessionStore {
	return &SessionStore{kv: kv, ttl: ttl}
}

// Issue creates a new session token for the user.
func (s *SessionStore) Issue(ctx context.Context, userID int64) (string, error) {
	token := uuid.New().String()
	key := sessionKeyPrefix + token
	if err := s.kv.Set(ctx, key, strconv.FormatInt(userID, 10), s.ttl); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

// Lookup resolves a token to a user ID. Returns ErrMiss for unknown or
// expired tokens.
func (s *SessionStore) Lookup(ctx context.Context, token string) (int64, error) {
	val, err := s.kv.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		return 0, err
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session value: %w", err)
	}
	return userID, nil
}

// Revoke deletes a session token.
func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	return s.kv.Del(ctx, sessionKeyPrefix+token)
}
