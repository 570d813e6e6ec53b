// ABOUTME: Screen stack for the TUI, usable as the guard's navigator
// ABOUTME: Push adds a back-stack entry; Replace swaps the top entry in place

package nav

import (
	"maps"
	"sync"

	"github.com/Zubimendi/neurostudy/cli/internal/guard"
)

// Entry is one screen on the stack
type Entry struct {
	Location guard.Location
	Params   map[string]string
}

// Param returns a named parameter, "" when unset
func (e Entry) Param(name string) string {
	return e.Params[name]
}

// Router is safe for use from command goroutines. Listeners run after the
// lock is released so they may navigate again.
type Router struct {
	mu        sync.Mutex
	stack     []Entry
	version   uint64
	listeners []func(guard.Location)
}

// New creates a router whose only entry is start
func New(start guard.Location) *Router {
	return &Router{stack: []Entry{{Location: clone(start)}}}
}

// OnChange registers fn to run after every navigation
func (r *Router) OnChange(fn func(guard.Location)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Location returns the top entry's location
func (r *Router) Location() guard.Location {
	return r.Current().Location
}

// Current returns a copy of the top entry
func (r *Router) Current() Entry {
	e, _ := r.Snapshot()
	return e
}

// Snapshot returns the top entry together with the change counter, which
// moves on every navigation even when the location repeats.
func (r *Router) Snapshot() (Entry, uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	top := r.stack[len(r.stack)-1]
	return Entry{Location: clone(top.Location), Params: maps.Clone(top.Params)}, r.version
}

// Depth returns the number of entries on the stack
func (r *Router) Depth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stack)
}

// Push adds an entry on top of the stack
func (r *Router) Push(loc guard.Location, params map[string]string) {
	r.change(func() bool {
		r.stack = append(r.stack, Entry{Location: clone(loc), Params: maps.Clone(params)})
		return true
	})
}

// Replace swaps the top entry without adding history
func (r *Router) Replace(loc guard.Location) {
	r.ReplaceWith(loc, nil)
}

// ReplaceWith is Replace with parameters
func (r *Router) ReplaceWith(loc guard.Location, params map[string]string) {
	r.change(func() bool {
		r.stack[len(r.stack)-1] = Entry{Location: clone(loc), Params: maps.Clone(params)}
		return true
	})
}

// Back pops the top entry. It reports false when already at the bottom.
func (r *Router) Back() bool {
	return r.change(func() bool {
		if len(r.stack) < 2 {
			return false
		}
		r.stack = r.stack[:len(r.stack)-1]
		return true
	})
}

func (r *Router) change(fn func() bool) bool {
	r.mu.Lock()
	if !fn() {
		r.mu.Unlock()
		return false
	}
	r.version++
	loc := clone(r.stack[len(r.stack)-1].Location)
	listeners := make([]func(guard.Location), len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(loc)
	}
	return true
}

func clone(loc guard.Location) guard.Location {
	if loc == nil {
		return guard.Location{}
	}
	return append(guard.Location{}, loc...)
}
