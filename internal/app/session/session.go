// Package session holds the bearer token the admin client authenticates
// with. A Session owns exactly one active token and mirrors it into a
// TokenStore so a later process starts already logged in.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNoToken is returned by Claims when no token is held.
var ErrNoToken = errors.New("no token")

// TokenStore persists the opaque token between processes.
type TokenStore interface {
	// Load returns the saved token, or "" when nothing is saved.
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

type Session struct {
	mu    sync.RWMutex
	token string
	store TokenStore
}

// New creates a session backed by store and loads any previously saved
// token. A nil store keeps the token in memory only.
func New(ctx context.Context, store TokenStore) (*Session, error) {
	if store == nil {
		store = NewMemoryStore()
	}
	token, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	return &Session{token: token, store: store}, nil
}

// Token returns the held token or "".
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) HasToken() bool {
	return s.Token() != ""
}

// SetToken makes token the active one and persists it. The in-memory token
// is updated even when persisting fails, so the current process stays
// authenticated.
func (s *Session) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := s.store.Save(ctx, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// ClearToken forgets the token in memory and in the store.
func (s *Session) ClearToken(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if err := s.store.Delete(ctx); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
