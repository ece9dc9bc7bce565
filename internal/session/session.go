// Package session owns the client-held representation of "who is using
// the app and with what credential", and the one-time startup exchange
// of an external login result for an application user record.
package session

import (
	"sync"

	"github.com/campusworks/careerdeck/internal/api"
)

// Session is the in-memory half of the authenticated state. The durable
// half (the bearer token) lives in the credential store; both are cleared
// together on logout.
type Session struct {
	mu      sync.Mutex
	user    *api.User
	token   string
	loading bool
}

// Snapshot is a consistent read of the session at one instant.
type Snapshot struct {
	User          *api.User
	Token         string
	Authenticated bool
	Loading       bool
}

func New() *Session {
	return &Session{}
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		User:          s.user,
		Token:         s.token,
		Authenticated: s.user != nil,
		Loading:       s.loading,
	}
}

func (s *Session) set(user *api.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.token = token
}

func (s *Session) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// clear nulls all fields. The caller clears durable storage.
func (s *Session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	s.loading = false
}
