// Package editor implements the staged editing surfaces of the module
// tree: one editor per entity type. An editor stages a working copy,
// validates locally, and drives exactly one sync call on submit. The
// page layer routes the confirmed record back into the tree store.
package editor

import (
	"errors"
	"sync"
	"time"
)

// SuccessCloseDelay is how long the UI keeps a just-saved editor open
// so the user sees the confirmation before it unmounts
const SuccessCloseDelay = 1500 * time.Millisecond

// ErrSubmitting means a submit is already in flight for this editor.
// One editor never races itself - separate editors can still race, the
// last confirmed save wins in the store.
var ErrSubmitting = errors.New("a save is already in progress")

// submitState is the bookkeeping every editor shares: the in-flight
// guard plus the three user-visible outcome strings the modals show.
type submitState struct {
	mu         sync.Mutex
	submitting bool
	localErr   string // validation failure, never sent anywhere
	apiErr     string // server rejection message, shown verbatim
	success    string
}

// begin flips the submitting flag, refusing a second concurrent submit
func (s *submitState) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return ErrSubmitting
	}
	s.submitting = true
	s.localErr = ""
	s.apiErr = ""
	s.success = ""
	return nil
}

func (s *submitState) end() {
	s.mu.Lock()
	s.submitting = false
	s.mu.Unlock()
}

func (s *submitState) setLocalErr(msg string) {
	s.mu.Lock()
	s.localErr = msg
	s.mu.Unlock()
}

func (s *submitState) setAPIErr(msg string) {
	s.mu.Lock()
	s.apiErr = msg
	s.mu.Unlock()
}

func (s *submitState) setSuccess(msg string) {
	s.mu.Lock()
	s.success = msg
	s.mu.Unlock()
}

// Submitting reports whether a save is in flight
func (s *submitState) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Err returns the current validation error, empty when none
func (s *submitState) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.localErr
}

// APIErr returns the last server rejection message, empty when none
func (s *submitState) APIErr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apiErr
}

// Success returns the confirmation message after a successful save
func (s *submitState) Success() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.success
}

// ValidationError is a local rule failure caught before any network
// call
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a local validation failure
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
