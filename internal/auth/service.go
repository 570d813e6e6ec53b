// ABOUTME: Auth service: register, login, logout, and the startup session check
// ABOUTME: Sole writer of the guard state; persists the session before publishing it

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Zubimendi/neurostudy/cli/internal/client"
	"github.com/Zubimendi/neurostudy/cli/internal/guard"
	"github.com/Zubimendi/neurostudy/cli/internal/session"
)

// Gateway is the part of the API client the auth service needs
type Gateway interface {
	Register(ctx context.Context, in *client.RegisterRequest) (*client.AuthResult, error)
	Login(ctx context.Context, in *client.LoginRequest) (*client.AuthResult, error)
}

// RegisterInput holds the registration form
type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
}

// Validate runs the client-side checks in the order the form reports them
func (in RegisterInput) Validate() error {
	if strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.Email) == "" ||
		in.Password == "" || in.ConfirmPassword == "" {
		return &ValidationError{Field: "all", Message: "Please fill in all fields"}
	}
	if in.Password != in.ConfirmPassword {
		return &ValidationError{Field: "confirm_password", Message: "Passwords do not match"}
	}
	if len(in.Password) < MinPasswordLength {
		return &ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("Password must be at least %d characters", MinPasswordLength),
		}
	}
	return nil
}

// Service wraps the gateway's auth endpoints around the session store and guard state
type Service struct {
	api   Gateway
	store session.Store
	state *guard.State
	now   func() time.Time

	checkOnce sync.Once
}

// New creates an auth service. state may be shared with a guard.
func New(api Gateway, store session.Store, state *guard.State) *Service {
	return &Service{
		api:   api,
		store: store,
		state: state,
		now:   time.Now,
	}
}

// State returns the guard state this service writes
func (s *Service) State() *guard.State {
	return s.state
}

// Register validates the form, creates the account, and starts a session
func (s *Service) Register(ctx context.Context, in RegisterInput) (*session.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	slog.Debug("Registration initiated", "email", in.Email)
	res, err := s.api.Register(ctx, &client.RegisterRequest{
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
		FullName: strings.TrimSpace(in.FullName),
	})
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	user, err := s.establish(ctx, res)
	if err != nil {
		return nil, err
	}
	slog.Info("User registered", "email", user.Email)
	return user, nil
}

// Login checks for empty fields, authenticates, and starts a session
func (s *Service) Login(ctx context.Context, email, password string) (*session.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, &ValidationError{Field: "all", Message: "Please fill in all fields"}
	}

	slog.Debug("Login initiated", "email", email)
	res, err := s.api.Login(ctx, &client.LoginRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	user, err := s.establish(ctx, res)
	if err != nil {
		return nil, err
	}
	slog.Info("User logged in", "email", user.Email)
	return user, nil
}

// establish persists the session and then publishes the user
func (s *Service) establish(ctx context.Context, res *client.AuthResult) (*session.User, error) {
	if res == nil || res.Token == "" {
		return nil, errors.New("invalid response from backend: missing token")
	}

	if err := s.store.Save(ctx, &session.Session{Token: res.Token, User: res.User}); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	user := res.User
	s.state.SetUser(&user)
	return &user, nil
}

// Logout clears the persisted session and then the in-memory user.
// The in-memory user is cleared even when the store fails.
func (s *Service) Logout(ctx context.Context) error {
	slog.Debug("Logging out")
	err := s.store.Clear(ctx)
	if err != nil {
		slog.Error("Clearing session failed", "error", err)
		err = fmt.Errorf("clearing session: %w", err)
	}
	s.state.SetUser(nil)
	return err
}

// CurrentUser reads the persisted user without a network call; nil when logged out
func (s *Service) CurrentUser(ctx context.Context) (*session.User, error) {
	sess, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	user := sess.User
	return &user, nil
}

// IsAuthenticated reports whether a token is persisted
func (s *Service) IsAuthenticated(ctx context.Context) (bool, error) {
	sess, err := s.store.Load(ctx)
	if err != nil {
		return false, err
	}
	return sess != nil, nil
}

// CheckSession resolves the Initializing phase from the persisted session.
// Expired tokens are cleared and treated as absent. Only the first call has any effect.
func (s *Service) CheckSession(ctx context.Context) {
	s.checkOnce.Do(func() {
		s.state.Resolve(s.restore(ctx))
	})
}

func (s *Service) restore(ctx context.Context) *session.User {
	sess, err := s.store.Load(ctx)
	if err != nil {
		slog.Error("Auth check failed", "error", err)
		return nil
	}
	if sess == nil {
		slog.Debug("No persisted session")
		return nil
	}

	if sess.Expired(s.now()) {
		slog.Info("Persisted session expired, clearing", "email", sess.User.Email)
		if err := s.store.Clear(ctx); err != nil {
			slog.Error("Clearing expired session failed", "error", err)
		}
		return nil
	}

	slog.Debug("Restored session", "email", sess.User.Email)
	user := sess.User
	return &user
}

// HandleUnauthorized is the gateway's 401 hook: the backend rejected the token,
// so the session is cleared and the guard sees the logout immediately.
func (s *Service) HandleUnauthorized() {
	slog.Warn("Backend rejected credentials, clearing session")
	if err := s.store.Clear(context.Background()); err != nil {
		slog.Error("Clearing session failed", "error", err)
	}
	if s.state.Snapshot().User != nil {
		s.state.SetUser(nil)
	}
}
