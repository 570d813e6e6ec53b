// ABOUTME: Navigation guard keeping the visible screen consistent with login state
// ABOUTME: Ordered redirect rules re-evaluated on every state or location change

package guard

import (
	"log/slog"
	"sync"
)

// Rule identifies which redirect rule fired
type Rule int

const (
	RuleNone Rule = iota
	RuleAuthenticatedInAuthGroup
	RuleUnauthenticatedOutsideAuth
	RuleAuthenticatedAtRoot
	RuleUnauthenticatedAtRoot
)

func (r Rule) String() string {
	switch r {
	case RuleNone:
		return "none"
	case RuleAuthenticatedInAuthGroup:
		return "authenticated-in-auth-group"
	case RuleUnauthenticatedOutsideAuth:
		return "unauthenticated-outside-auth"
	case RuleAuthenticatedAtRoot:
		return "authenticated-at-root"
	case RuleUnauthenticatedAtRoot:
		return "unauthenticated-at-root"
	default:
		return "unknown"
	}
}

// Decision is the outcome of one evaluation
type Decision struct {
	Rule   Rule
	Target Location
}

// Redirect reports whether the location must be replaced
func (d Decision) Redirect() bool {
	return d.Rule != RuleNone
}

// Evaluate applies the redirect rules top to bottom; the first match wins.
// Nothing happens while the session is still initializing.
func Evaluate(s Snapshot, loc Location) Decision {
	switch s.Phase() {
	case Initializing:
		return Decision{}
	case Authenticated:
		if loc.InAuthGroup() {
			return Decision{Rule: RuleAuthenticatedInAuthGroup, Target: Home}
		}
	case Unauthenticated:
		if !loc.InAuthGroup() && !loc.IsRoot() {
			return Decision{Rule: RuleUnauthenticatedOutsideAuth, Target: Login}
		}
	}

	if loc.IsRoot() {
		if s.Phase() == Authenticated {
			return Decision{Rule: RuleAuthenticatedAtRoot, Target: Home}
		}
		return Decision{Rule: RuleUnauthenticatedAtRoot, Target: Login}
	}

	return Decision{}
}

// Navigator is the screen router the guard steers
type Navigator interface {
	Location() Location
	// Replace swaps the current location without keeping a back-stack entry
	Replace(loc Location)
}

// Guard subscribes to the auth state and redirects the navigator when needed.
// The navigator must call LocationChanged after every location change.
type Guard struct {
	state *State
	nav   Navigator

	mu          sync.Mutex
	unsubscribe func()
}

// New registers the guard with the state. Call Check to run the first evaluation.
func New(state *State, nav Navigator) *Guard {
	g := &Guard{state: state, nav: nav}
	g.unsubscribe = state.Subscribe(func(s Snapshot) {
		g.evaluate(s)
	})
	return g
}

// LocationChanged re-runs the rules against the current state
func (g *Guard) LocationChanged() {
	g.evaluate(g.state.Snapshot())
}

// Check evaluates immediately and returns the decision that was applied
func (g *Guard) Check() Decision {
	return g.evaluate(g.state.Snapshot())
}

// Stop detaches the guard from the state
func (g *Guard) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.unsubscribe != nil {
		g.unsubscribe()
		g.unsubscribe = nil
	}
}

func (g *Guard) evaluate(s Snapshot) Decision {
	g.mu.Lock()
	stopped := g.unsubscribe == nil
	g.mu.Unlock()
	if stopped {
		return Decision{}
	}

	loc := g.nav.Location()
	d := Evaluate(s, loc)
	if !d.Redirect() {
		return d
	}

	slog.Debug("Guard redirect",
		"rule", d.Rule.String(),
		"phase", s.Phase().String(),
		"from", loc.String(),
		"to", d.Target.String(),
	)
	// Replace may call LocationChanged re-entrantly; the nested pass sees a consistent location.
	g.nav.Replace(d.Target)
	return d
}
