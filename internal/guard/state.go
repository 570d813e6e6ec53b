// ABOUTME: Process-wide auth state observed by the navigation guard
// ABOUTME: Single writer (the auth service), many subscribers notified synchronously

package guard

import (
	"log/slog"
	"sync"

	"github.com/Zubimendi/neurostudy/cli/internal/session"
)

// Phase is the guard's view of the session lifecycle
type Phase int

const (
	Initializing Phase = iota
	Authenticated
	Unauthenticated
)

func (p Phase) String() string {
	switch p {
	case Initializing:
		return "initializing"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable copy of the state at one point in time
type Snapshot struct {
	User    *session.User
	Loading bool
}

// Phase derives the lifecycle phase from user and loading
func (s Snapshot) Phase() Phase {
	switch {
	case s.Loading:
		return Initializing
	case s.User != nil:
		return Authenticated
	default:
		return Unauthenticated
	}
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// State holds the current user and the loading flag.
// Only the auth service writes it; everything else subscribes.
type State struct {
	mu      sync.Mutex
	user    *session.User
	loading bool
	subs    []subscriber
	nextID  int
}

// NewState returns a state in the Initializing phase
func NewState() *State {
	return &State{loading: true}
}

// Snapshot returns the current user and loading flag
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() Snapshot {
	var u *session.User
	if s.user != nil {
		cp := *s.user
		u = &cp
	}
	return Snapshot{User: u, Loading: s.loading}
}

// Resolve ends the Initializing phase with the user found at startup (nil for none).
// It happens once; later calls are ignored.
func (s *State) Resolve(u *session.User) {
	s.mu.Lock()
	if !s.loading {
		s.mu.Unlock()
		slog.Debug("Session already resolved, ignoring")
		return
	}
	s.loading = false
	s.user = copyUser(u)
	snap, subs := s.snapshotLocked(), s.subscribersLocked()
	s.mu.Unlock()

	s.notify(snap, subs)
}

// SetUser records a login (u != nil) or logout (u == nil)
func (s *State) SetUser(u *session.User) {
	s.mu.Lock()
	s.user = copyUser(u)
	snap, subs := s.snapshotLocked(), s.subscribersLocked()
	s.mu.Unlock()

	s.notify(snap, subs)
}

// Subscribe registers fn to run after every change. The returned func unsubscribes.
func (s *State) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *State) subscribersLocked() []subscriber {
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	return subs
}

// notify runs outside the lock so subscribers may read the state again
func (s *State) notify(snap Snapshot, subs []subscriber) {
	for _, sub := range subs {
		sub.fn(snap)
	}
}

func copyUser(u *session.User) *session.User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}
