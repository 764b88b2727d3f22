package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind shows whether a banner reports success or failure
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// DefaultTTL is how long a banner stays visible before it
// auto-dismisses
const DefaultTTL = 3 * time.Second

// Notification is one transient banner
type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier holds at most one visible notification. A new push replaces
// whatever is showing - there is no queue.
type Notifier struct {
	mu      sync.RWMutex // for thread safety
	current *Notification
	ttl     time.Duration

	now func() time.Time // swappable for tests
}

// New creates a notifier with the given banner lifetime; zero means
// the default
func New(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{
		ttl: ttl,
		now: time.Now,
	}
}

// Success shows a success banner
func (n *Notifier) Success(message string) *Notification {
	return n.push(KindSuccess, message)
}

// Error shows an error banner
func (n *Notifier) Error(message string) *Notification {
	return n.push(KindError, message)
}

func (n *Notifier) push(kind Kind, message string) *Notification {
	note := &Notification{
		ID:        uuid.New().String(),
		Kind:      kind,
		Message:   message,
		CreatedAt: n.now(),
	}

	n.mu.Lock()
	n.current = note
	n.mu.Unlock()

	return note
}

// Current returns the visible notification, hiding anything past its
// lifetime
func (n *Notifier) Current() (*Notification, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.current == nil {
		return nil, false
	}
	if n.now().Sub(n.current.CreatedAt) >= n.ttl {
		return nil, false
	}
	note := *n.current
	return &note, true
}

// Clear dismisses the visible notification, used on explicit dismiss
// or the next user action
func (n *Notifier) Clear() {
	n.mu.Lock()
	n.current = nil
	n.mu.Unlock()
}

// CleanupExpired drops the held notification once it's past its
// lifetime. Returns true when something was dropped.
func (n *Notifier) CleanupExpired() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil {
		return false
	}
	if n.now().Sub(n.current.CreatedAt) < n.ttl {
		return false
	}
	n.current = nil
	return true
}

// CleanupRoutine runs cleanup automatically on a schedule
func (n *Notifier) CleanupRoutine(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n.CleanupExpired()
		case <-stop:
			return
		}
	}
}
