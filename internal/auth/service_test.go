// ABOUTME: Tests for the auth service lifecycle
// ABOUTME: Exercises validation, persistence, startup check, logout, and the 401 hook

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zubimendi/neurostudy/cli/internal/client"
	"github.com/Zubimendi/neurostudy/cli/internal/guard"
	"github.com/Zubimendi/neurostudy/cli/internal/session"
)

type fakeGateway struct {
	registerCalls int
	loginCalls    int
	result        *client.AuthResult
	err           error
}

func (f *fakeGateway) Register(ctx context.Context, in *client.RegisterRequest) (*client.AuthResult, error) {
	f.registerCalls++
	return f.result, f.err
}

func (f *fakeGateway) Login(ctx context.Context, in *client.LoginRequest) (*client.AuthResult, error) {
	f.loginCalls++
	return f.result, f.err
}

type fakeNav struct {
	loc   guard.Location
	guard *guard.Guard
}

func (n *fakeNav) Location() guard.Location { return n.loc }

func (n *fakeNav) Replace(loc guard.Location) {
	n.loc = loc
	n.guard.LocationChanged()
}

func okResult() *client.AuthResult {
	return &client.AuthResult{
		Token: "t1",
		User:  session.User{ID: "u1", Email: "a@b.com", FullName: "Ada"},
	}
}

func newService(gw Gateway) (*Service, *session.MemoryStore, *guard.State) {
	store := session.NewMemoryStore()
	state := guard.NewState()
	return New(gw, store, state), store, state
}

func TestRegister_ValidationNeverCallsRemote(t *testing.T) {
	tests := []struct {
		name  string
		input RegisterInput
		msg   string
	}{
		{"empty name", RegisterInput{Email: "a@b.com", Password: "secret1", ConfirmPassword: "secret1"}, "Please fill in all fields"},
		{"empty confirm", RegisterInput{Email: "a@b.com", Password: "secret1", FullName: "Ada"}, "Please fill in all fields"},
		{"mismatch", RegisterInput{Email: "a@b.com", Password: "secret1", ConfirmPassword: "secret2", FullName: "Ada"}, "Passwords do not match"},
		{"too short", RegisterInput{Email: "a@b.com", Password: "abc12", ConfirmPassword: "abc12", FullName: "Ada"}, "Password must be at least 6 characters"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gw := &fakeGateway{result: okResult()}
			svc, store, _ := newService(gw)

			user, err := svc.Register(context.Background(), tc.input)
			require.Error(t, err)
			assert.Nil(t, user)
			assert.True(t, IsValidation(err))
			assert.Equal(t, tc.msg, Message(err))
			assert.Equal(t, 0, gw.registerCalls)

			sess, _ := store.Load(context.Background())
			assert.Nil(t, sess)
		})
	}
}

func TestRegister_Success(t *testing.T) {
	gw := &fakeGateway{result: okResult()}
	svc, store, state := newService(gw)

	user, err := svc.Register(context.Background(), RegisterInput{
		Email: "a@b.com", Password: "secret1", ConfirmPassword: "secret1", FullName: "Ada",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, 1, gw.registerCalls)

	sess, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "t1", sess.Token)
	assert.Equal(t, "u1", state.Snapshot().User.ID)
}

func TestLogin_EmptyFields(t *testing.T) {
	gw := &fakeGateway{result: okResult()}
	svc, _, _ := newService(gw)

	_, err := svc.Login(context.Background(), "", "secret1")
	assert.True(t, IsValidation(err))
	_, err = svc.Login(context.Background(), "a@b.com", "")
	assert.True(t, IsValidation(err))
	assert.Equal(t, 0, gw.loginCalls)
}

func TestLogin_CurrentUserMatches(t *testing.T) {
	gw := &fakeGateway{result: okResult()}
	svc, _, _ := newService(gw)

	user, err := svc.Login(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)

	current, err := svc.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, user, current)
}

func TestLogin_RemoteErrorLeavesStateUntouched(t *testing.T) {
	gw := &fakeGateway{err: &client.RemoteError{StatusCode: 400, Message: "invalid credentials"}}
	svc, store, state := newService(gw)
	svc.CheckSession(context.Background())

	_, err := svc.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", Message(err))
	assert.Equal(t, guard.Unauthenticated, state.Snapshot().Phase())

	sess, _ := store.Load(context.Background())
	assert.Nil(t, sess)
}

func TestLogin_MissingToken(t *testing.T) {
	gw := &fakeGateway{result: &client.AuthResult{User: session.User{ID: "u1"}}}
	svc, _, state := newService(gw)

	_, err := svc.Login(context.Background(), "a@b.com", "secret1")
	assert.Error(t, err)
	assert.Nil(t, state.Snapshot().User)
}

func TestLogout_AfterAnySequence(t *testing.T) {
	sequences := [][]string{
		{"login", "logout"},
		{"logout"},
		{"login", "login", "logout"},
		{"login", "logout", "login", "logout"},
		{"logout", "logout"},
	}

	for _, seq := range sequences {
		gw := &fakeGateway{result: okResult()}
		svc, store, state := newService(gw)
		svc.CheckSession(context.Background())

		for _, op := range seq {
			switch op {
			case "login":
				_, err := svc.Login(context.Background(), "a@b.com", "secret1")
				require.NoError(t, err)
			case "logout":
				require.NoError(t, svc.Logout(context.Background()))
			}
		}

		sess, err := store.Load(context.Background())
		require.NoError(t, err)
		assert.Nil(t, sess, "sequence %v", seq)
		assert.Equal(t, guard.Unauthenticated, state.Snapshot().Phase(), "sequence %v", seq)
	}
}

func TestCheckSession_NoSessionRedirectsToLogin(t *testing.T) {
	svc, _, state := newService(&fakeGateway{})
	nav := &fakeNav{loc: guard.Location{"history"}}
	nav.guard = guard.New(state, nav)

	assert.Equal(t, guard.Initializing, state.Snapshot().Phase())
	nav.guard.Check()
	assert.Equal(t, "/history", nav.loc.String())

	svc.CheckSession(context.Background())

	assert.Equal(t, guard.Unauthenticated, state.Snapshot().Phase())
	assert.True(t, guard.Login.Equal(nav.loc))
}

func TestCheckSession_RestoresUser(t *testing.T) {
	svc, store, state := newService(&fakeGateway{})
	require.NoError(t, store.Save(context.Background(), &session.Session{Token: "t1", User: session.User{ID: "u1"}}))

	svc.CheckSession(context.Background())

	snap := state.Snapshot()
	assert.Equal(t, guard.Authenticated, snap.Phase())
	assert.Equal(t, "u1", snap.User.ID)
}

func TestCheckSession_ExpiredTokenCleared(t *testing.T) {
	svc, store, state := newService(&fakeGateway{})
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), &session.Session{Token: tok, User: session.User{ID: "u1"}}))

	svc.CheckSession(context.Background())

	assert.Equal(t, guard.Unauthenticated, state.Snapshot().Phase())
	sess, _ := store.Load(context.Background())
	assert.Nil(t, sess)
}

func TestCheckSession_OnlyOnce(t *testing.T) {
	svc, store, state := newService(&fakeGateway{})
	svc.CheckSession(context.Background())

	require.NoError(t, store.Save(context.Background(), &session.Session{Token: "t1", User: session.User{ID: "u1"}}))
	svc.CheckSession(context.Background())

	assert.Equal(t, guard.Unauthenticated, state.Snapshot().Phase())
}

type failingStore struct{ session.MemoryStore }

func (f *failingStore) Load(ctx context.Context) (*session.Session, error) {
	return nil, errors.New("disk on fire")
}

func TestCheckSession_StoreErrorResolvesUnauthenticated(t *testing.T) {
	state := guard.NewState()
	svc := New(&fakeGateway{}, &failingStore{}, state)

	svc.CheckSession(context.Background())

	assert.Equal(t, guard.Unauthenticated, state.Snapshot().Phase())
}

// Valid login {a@b.com, secret1} → {t1, u1}: token persisted, guard leaves the auth group.
func TestLoginScenario_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in client.LoginRequest
		json.NewDecoder(r.Body).Decode(&in)
		if in.Email != "a@b.com" || in.Password != "secret1" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{
			"token": "t1",
			"user":  map[string]any{"id": "u1", "email": "a@b.com", "full_name": "Ada"},
		}})
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	state := guard.NewState()
	api := client.New(server.URL, client.WithTokenSource(session.TokenSource{Store: store}))
	svc := New(api, store, state)
	api.OnUnauthorized(svc.HandleUnauthorized)

	nav := &fakeNav{loc: guard.Root}
	nav.guard = guard.New(state, nav)
	svc.CheckSession(context.Background())
	require.True(t, guard.Login.Equal(nav.loc))

	user, err := svc.Login(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	sess, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "t1", sess.Token)
	assert.Equal(t, guard.Authenticated, state.Snapshot().Phase())
	assert.True(t, guard.Home.Equal(nav.loc))
}

func TestUnauthorizedResponse_LogsOutImmediately(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "token expired"})
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	state := guard.NewState()
	api := client.New(server.URL, client.WithTokenSource(session.TokenSource{Store: store}))
	svc := New(api, store, state)
	api.OnUnauthorized(svc.HandleUnauthorized)

	require.NoError(t, store.Save(context.Background(), &session.Session{Token: "stale", User: session.User{ID: "u1"}}))
	nav := &fakeNav{loc: guard.Root}
	nav.guard = guard.New(state, nav)
	svc.CheckSession(context.Background())
	nav.loc = guard.Location{"results", "s1"}

	_, err := api.StudySession(context.Background(), "s1")
	require.Error(t, err)

	sess, _ := store.Load(context.Background())
	assert.Nil(t, sess)
	assert.Equal(t, guard.Unauthenticated, state.Snapshot().Phase())
	assert.True(t, guard.Login.Equal(nav.loc))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "bad", Message(&ValidationError{Message: "bad"}))
	assert.Equal(t, "nope", Message(&client.RemoteError{StatusCode: 400, Message: "nope"}))
	assert.Equal(t, GenericFailureMessage, Message(&client.RemoteError{StatusCode: 500}))
	assert.Equal(t, NetworkFailureMessage, Message(&client.NetworkError{Message: "request timed out"}))
	assert.Equal(t, GenericFailureMessage, Message(errors.New("boom")))
}
