// Package session holds the current user identity and authentication flag,
// derived from the persisted token and user records.
package session

import (
	"context"
	"sync"

	"github.com/netdash/netdash/internal/model"
	"github.com/netdash/netdash/internal/token"
)

// Authenticator is the external login collaborator.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*model.LoginResponse, error)
}

// CredentialCache persists the token and user record between runs.
type CredentialCache interface {
	Save(tokenString string, user model.User) error
	Load() (string, *model.User, error)
	Clear() error
}

// State is a point-in-time snapshot of the session.
type State struct {
	User            *model.User
	IsAuthenticated bool
	IsLoading       bool
	Error           string
}

// Store is the session state container. It is constructed explicitly at
// application start; there is no package-level instance.
type Store struct {
	mu    sync.Mutex
	auth  Authenticator
	cache CredentialCache

	tokenString     string
	user            *model.User
	isAuthenticated bool
	isLoading       bool
	err             string
}

// New creates the store and derives the initial session from the credential
// cache. A cached user with a missing or expired token starts the session
// unauthenticated and clears the cache.
func New(auth Authenticator, cache CredentialCache) (*Store, error) {
	s := &Store{auth: auth, cache: cache}
	if err := s.deriveFromCache(); err != nil {
		return nil, err
	}
	return s, nil
}

// Snapshot returns the current session state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		User:            s.user,
		IsAuthenticated: s.isAuthenticated,
		IsLoading:       s.isLoading,
		Error:           s.err,
	}
}

// Token returns the held bearer token, or "" when the session holds none.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenString
}

// Login authenticates with the backend and persists the returned
// credentials. On failure the session state is unchanged apart from the
// error message, and the failure is returned to the caller. Concurrent
// logins are not deduplicated; the last write wins.
func (s *Store) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	s.isLoading = true
	s.err = ""
	s.mu.Unlock()

	resp, err := s.auth.Login(ctx, username, password)
	if err != nil {
		s.mu.Lock()
		s.isLoading = false
		s.err = err.Error()
		s.mu.Unlock()
		return err
	}

	if err := s.cache.Save(resp.AccessToken, resp.User); err != nil {
		s.mu.Lock()
		s.isLoading = false
		s.err = err.Error()
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	user := resp.User
	s.tokenString = resp.AccessToken
	s.user = &user
	s.isAuthenticated = true
	s.isLoading = false
	s.err = ""
	s.mu.Unlock()

	return nil
}

// Logout clears the persisted credentials and the session state. It is
// synchronous and never contacts the backend.
func (s *Store) Logout() {
	s.cache.Clear()

	s.mu.Lock()
	s.tokenString = ""
	s.user = nil
	s.isAuthenticated = false
	s.err = ""
	s.mu.Unlock()
}

// CheckAuth re-derives the session from the credential cache, applying the
// same expiry rule as New. Used to re-sync after external changes.
func (s *Store) CheckAuth() {
	s.deriveFromCache()
}

// SetUser sets the user directly; authentication follows user presence.
func (s *Store) SetUser(user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.isAuthenticated = user != nil
}

// ClearError clears the session error. Idempotent.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// deriveFromCache loads the persisted credentials and computes the session.
// A stale or orphaned token clears the cache so the next run starts clean.
func (s *Store) deriveFromCache() error {
	tokenString, user, err := s.cache.Load()
	if err != nil {
		return err
	}

	valid := user != nil && tokenString != "" && !token.ExpiredNow(tokenString)
	if !valid && (tokenString != "" || user != nil) {
		if err := s.cache.Clear(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if valid {
		s.tokenString = tokenString
		s.user = user
		s.isAuthenticated = true
	} else {
		s.tokenString = ""
		s.user = nil
		s.isAuthenticated = false
	}
	return nil
}
