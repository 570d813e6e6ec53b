// ABOUTME: Tests for the TUI screen stack
// ABOUTME: Covers push/replace/back, listeners, and guard integration

package nav

import (
	"testing"

	"github.com/Zubimendi/neurostudy/cli/internal/guard"
	"github.com/Zubimendi/neurostudy/cli/internal/session"
)

func TestRouterPushBack(t *testing.T) {
	r := New(HomeTab)
	r.Push(Results("s1"), map[string]string{"k": "v"})

	if got := r.Location(); !got.Equal(Results("s1")) {
		t.Fatalf("Location() = %v, want results/s1", got)
	}
	if r.Current().Param("k") != "v" {
		t.Errorf("expected param to survive push")
	}
	if r.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", r.Depth())
	}

	if !r.Back() {
		t.Fatal("Back() should pop")
	}
	if r.Back() {
		t.Error("Back() at the bottom should report false")
	}
	if !r.Location().Equal(HomeTab) {
		t.Errorf("Location() = %v, want home", r.Location())
	}
}

func TestRouterReplaceKeepsDepth(t *testing.T) {
	r := New(guard.Login)
	r.Push(guard.Register, nil)
	r.Replace(guard.Home)

	if r.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", r.Depth())
	}
	if !r.Location().Equal(guard.Home) {
		t.Errorf("Location() = %v, want home", r.Location())
	}
}

func TestRouterVersionMovesOnRepeat(t *testing.T) {
	r := New(HomeTab)
	_, v1 := r.Snapshot()
	r.Replace(HomeTab)
	_, v2 := r.Snapshot()
	if v1 == v2 {
		t.Error("expected version to change on replace with the same location")
	}

	r.Back()
	_, v3 := r.Snapshot()
	if v3 != v2 {
		t.Error("a no-op Back must not change the version")
	}
}

func TestRouterSnapshotIsCopy(t *testing.T) {
	r := New(Results("s1"))
	e := r.Current()
	e.Location[1] = "mutated"
	if !r.Location().Equal(Results("s1")) {
		t.Error("mutating a snapshot changed the router")
	}
}

func TestRouterListeners(t *testing.T) {
	r := New(guard.Root)
	var seen []string
	r.OnChange(func(loc guard.Location) { seen = append(seen, loc.String()) })

	r.Push(HomeTab, nil)
	r.Back()
	r.Back()

	if len(seen) != 2 || seen[0] != "/(tabs)" || seen[1] != "/" {
		t.Errorf("listener saw %v", seen)
	}
}

func TestRouterAsGuardNavigator(t *testing.T) {
	state := guard.NewState()
	r := New(guard.Root)
	g := guard.New(state, r)
	r.OnChange(func(guard.Location) { g.LocationChanged() })

	state.Resolve(nil)
	if !r.Location().Equal(guard.Login) {
		t.Fatalf("expected redirect to login, got %v", r.Location())
	}

	r.Push(HistoryTab, nil)
	if !r.Location().Equal(guard.Login) {
		t.Errorf("unauthenticated push should bounce to login, got %v", r.Location())
	}

	state.SetUser(&session.User{ID: "u1"})
	if !r.Location().Equal(guard.Home) {
		t.Errorf("login should land on home, got %v", r.Location())
	}

	r.Push(Results("s1"), nil)
	if !r.Location().Equal(Results("s1")) {
		t.Errorf("authenticated push should stick, got %v", r.Location())
	}
}
