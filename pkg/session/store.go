// Package session holds the current signed-in principal for the
// editing session. One typed accessor replaces the ad hoc auth lookups
// the dashboard used to scatter across components, and an explicit
// invalidation hook fires on logout or token expiry.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Principal is the decoded identity of the signed-in user
type Principal struct {
	UserID    string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the principal's token has lapsed
func (p *Principal) Expired(now time.Time) bool {
	return !p.ExpiresAt.IsZero() && !now.Before(p.ExpiresAt)
}

// Store caches the current principal behind a lock and notifies
// listeners when the session goes away
type Store struct {
	mu        sync.RWMutex // for thread safety
	current   *Principal
	listeners []func()

	now func() time.Time // swappable for tests
}

// NewStore creates an empty principal store
func NewStore() *Store {
	return &Store{now: time.Now}
}

// claims mirrors the fields the auth service puts in its tokens
type claims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// SetToken decodes a session JWT into the current principal. The
// signature is not verified here - the API verifies on every call,
// this side only needs the identity fields.
func (s *Store) SetToken(token string) (*Principal, error) {
	parser := jwt.NewParser()
	var c claims
	if _, _, err := parser.ParseUnverified(token, &c); err != nil {
		return nil, fmt.Errorf("decoding session token: %w", err)
	}
	if c.Subject == "" {
		return nil, fmt.Errorf("session token has no subject")
	}

	p := &Principal{
		UserID: c.Subject,
		Name:   c.Name,
		Email:  c.Email,
		Role:   c.Role,
	}
	if c.ExpiresAt != nil {
		p.ExpiresAt = c.ExpiresAt.Time
	}

	s.mu.Lock()
	s.current = p
	s.mu.Unlock()

	out := *p
	return &out, nil
}

// Set installs an already-decoded principal, handy in tests and for
// callers that get identity from a profile endpoint instead
func (s *Store) Set(p Principal) {
	s.mu.Lock()
	s.current = &p
	s.mu.Unlock()
}

// Current returns the signed-in principal. An expired session counts
// as signed out and fires the invalidation listeners once.
func (s *Store) Current() (*Principal, bool) {
	s.mu.RLock()
	p := s.current
	s.mu.RUnlock()

	if p == nil {
		return nil, false
	}
	if p.Expired(s.now()) {
		s.Clear()
		return nil, false
	}
	out := *p
	return &out, true
}

// IsLoggedIn checks if any non-expired principal is present
func (s *Store) IsLoggedIn() bool {
	_, ok := s.Current()
	return ok
}

// OnInvalidate registers a callback fired when the session is cleared
// or found expired
func (s *Store) OnInvalidate(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Clear signs the session out and fires the invalidation listeners.
// Safe to call when nothing is signed in.
func (s *Store) Clear() {
	s.mu.Lock()
	had := s.current != nil
	s.current = nil
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	if !had {
		return
	}
	for _, fn := range listeners {
		fn()
	}
}
