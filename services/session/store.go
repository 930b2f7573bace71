// Package session keeps the signed-in user's ID token in a durable key-value
// store so the login survives restarts.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"coffeehouse/api"
)

// TokenKey is the durable store key that holds the raw ID token.
const TokenKey = "token"

const storeTimeout = 10 * time.Second

// KeyValueStore is a durable string store.
type KeyValueStore interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Store is the single source of truth for whether a user is signed in.
// Reads never touch the durable store; writes go through to it.
type Store struct {
	mu       sync.RWMutex
	kv       KeyValueStore
	token    string
	loggedIn bool
}

// NewStore seeds the session from the durable store. A read failure is
// treated as logged out.
func NewStore(ctx context.Context, kv KeyValueStore) *Store {
	s := &Store{kv: kv}
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	token, ok, err := kv.Get(ctx, TokenKey)
	if err != nil {
		slog.With("error", err.Error()).Warn("failed to read cached token, starting logged out")
		return s
	}
	if ok && token != "" {
		s.token = token
		s.loggedIn = true
	}
	return s
}

func (s *Store) GetUserLoginStatus() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

// GetUserToken returns the cached token, false if there is none.
func (s *Store) GetUserToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Session returns a consistent snapshot of the token and login flag.
func (s *Store) Session() api.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return api.Session{Token: s.token, LoggedIn: s.loggedIn}
}

// SetUserToken caches token in memory and in the durable store. The empty
// string clears it, which also ends the login.
func (s *Store) SetUserToken(ctx context.Context, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setToken(ctx, token)
}

// SetUserLoginStatus sets the login flag. Logging out clears the token.
// Logging in without a cached token is ignored.
func (s *Store) SetUserLoginStatus(ctx context.Context, loggedIn bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !loggedIn {
		s.loggedIn = false
		s.setToken(ctx, "")
		return
	}
	if s.token == "" {
		slog.Warn("ignoring login status without a cached token")
		return
	}
	s.loggedIn = true
}

func (s *Store) setToken(ctx context.Context, token string) {
	s.token = token
	if token == "" {
		s.loggedIn = false
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	var err error
	if token == "" {
		err = s.kv.Remove(ctx, TokenKey)
	} else {
		err = s.kv.Set(ctx, TokenKey, token)
	}
	// The in-memory state stays authoritative for this process.
	if err != nil {
		slog.With("error", err.Error()).Error("failed to persist session token")
	}
}

// Close releases the durable store.
func (s *Store) Close() error {
	return s.kv.Close()
}
