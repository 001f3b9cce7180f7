// Package session tracks the live connections of the SSH server. A save
// slot can be played by one connection at a time, so two logins as the
// same user cannot overwrite each other's progress.
package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSlotBusy is returned when a slot is already being played.
var ErrSlotBusy = errors.New("session: slot already in use")

// Session is one live connection.
type Session struct {
	ID      uuid.UUID
	Slot    string
	Remote  string
	Started time.Time

	done     chan struct{}
	doneOnce sync.Once
}

// Done returns a channel that closes when the session ends.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// close marks the session as done.
// Safe to call multiple times.
func (s *Session) close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// Registry tracks active sessions by slot.
// Thread-safe for concurrent access.
type Registry struct {
	mu    sync.RWMutex
	slots map[string]*Session
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		slots: make(map[string]*Session),
	}
}

// Claim registers a new session for slot, failing with ErrSlotBusy if
// another session holds it.
func (r *Registry) Claim(slot, remote string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.slots[slot]; ok {
		return nil, fmt.Errorf("%w: %q since %s", ErrSlotBusy, slot, cur.Started.Format(time.Kitchen))
	}
	s := &Session{
		ID:      uuid.New(),
		Slot:    slot,
		Remote:  remote,
		Started: time.Now(),
		done:    make(chan struct{}),
	}
	r.slots[slot] = s
	return s, nil
}

// Release ends s and frees its slot. Releasing a session that no longer
// holds the slot is a no-op for the slot.
func (r *Registry) Release(s *Session) {
	if s == nil {
		return
	}
	r.mu.Lock()
	if r.slots[s.Slot] == s {
		delete(r.slots, s.Slot)
	}
	r.mu.Unlock()
	s.close()
}

// Get retrieves the session playing slot.
func (r *Registry) Get(slot string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.slots[slot]
	return s, ok
}

// Count returns the number of active sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.slots)
}

// Slots returns the slots in use, sorted.
func (r *Registry) Slots() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	slots := make([]string, 0, len(r.slots))
	for slot := range r.slots {
		slots = append(slots, slot)
	}
	sort.Strings(slots)
	return slots
}
