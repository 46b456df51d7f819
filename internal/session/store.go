// Package session persists the authenticated user projection across page
// loads so that navigating between screens does not refetch the user on
// every request. Records are keyed by the bearer token, which also resolves
// the multi-tab question: browser contexts sharing the cookie share one
// session record.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mp-classroom/classroom-gateway/internal/models"
)

var (
	// ErrNotFound means no session record exists for the token; callers
	// fall back to fetching the user from the backend.
	ErrNotFound = errors.New("session: not found")

	// ErrNotAvailable means the store runs without redis. Same fallback
	// applies; the gateway degrades to per-request user fetches.
	ErrNotAvailable = errors.New("session: store not available")
)

const keyPrefix = "session:"

// Store holds at most one user per session token. Writes are last-write-wins
// and overwrite the record wholesale; there are no merge semantics.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func sessionKey(tok string) string {
	return keyPrefix + tok
}

// SetUser replaces the user held for the token unconditionally. The record
// expires with the token cookie so a stale session cannot outlive its
// credential by more than the TTL.
func (s *Store) SetUser(ctx context.Context, tok string, u *models.User) error {
	if s.client == nil {
		return nil // graceful degradation, callers refetch instead
	}

	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("session: marshal user: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(tok), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("session: set: %w", err)
	}
	return nil
}

// GetUser is a pure read of the current session user.
func (s *Store) GetUser(ctx context.Context, tok string) (*models.User, error) {
	if s.client == nil {
		return nil, ErrNotAvailable
	}

	data, err := s.client.Get(ctx, sessionKey(tok)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session: get: %w", err)
	}

	var u models.User
	if err := json.Unmarshal([]byte(data), &u); err != nil {
		return nil, fmt.Errorf("session: unmarshal user: %w", err)
	}
	return &u, nil
}

// Logout resets the session to its initial empty state.
func (s *Store) Logout(ctx context.Context, tok string) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Del(ctx, sessionKey(tok)).Err(); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}
