// ABOUTME: Tests for the login and registration screens
// ABOUTME: Drives submissions directly and checks busy, error, and stale-result handling

package authform

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zubimendi/neurostudy/cli/internal/auth"
	"github.com/Zubimendi/neurostudy/cli/internal/client"
	"github.com/Zubimendi/neurostudy/cli/internal/guard"
	"github.com/Zubimendi/neurostudy/cli/internal/session"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/nav"
)

type fakeGateway struct {
	calls int
	err   error
}

func (f *fakeGateway) Register(ctx context.Context, in *client.RegisterRequest) (*client.AuthResult, error) {
	return f.respond(in.Email, in.FullName)
}

func (f *fakeGateway) Login(ctx context.Context, in *client.LoginRequest) (*client.AuthResult, error) {
	return f.respond(in.Email, "")
}

func (f *fakeGateway) respond(email, name string) (*client.AuthResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &client.AuthResult{Token: "t1", User: session.User{ID: "u1", Email: email, FullName: name}}, nil
}

func newAuth(gw *fakeGateway) *auth.Service {
	return auth.New(gw, session.NewMemoryStore(), guard.NewState())
}

func TestLoginSubmitSuccess(t *testing.T) {
	gw := &fakeGateway{}
	svc := newAuth(gw)
	l := NewLogin(context.Background(), svc)
	l.email = " a@b.com "
	l.password = "secret1"

	cmd := l.submit()
	if !l.Busy() {
		t.Error("expected busy while request is in flight")
	}
	if !strings.Contains(l.View(), "Signing in...") {
		t.Error("expected busy view")
	}

	l.Update(cmd())

	if l.Busy() {
		t.Error("expected busy cleared")
	}
	if l.Err() != "" {
		t.Errorf("unexpected error %q", l.Err())
	}
	if u := svc.State().Snapshot().User; u == nil || u.Email != "a@b.com" {
		t.Errorf("expected trimmed email in state, got %+v", u)
	}
}

func TestLoginSubmitEmptyFieldsShowsValidation(t *testing.T) {
	gw := &fakeGateway{}
	l := NewLogin(context.Background(), newAuth(gw))

	l.Update(l.submit()())

	if l.Err() != "Please fill in all fields" {
		t.Errorf("expected validation message, got %q", l.Err())
	}
	if gw.calls != 0 {
		t.Errorf("expected no remote call, got %d", gw.calls)
	}
	if !strings.Contains(l.View(), "Please fill in all fields") {
		t.Error("expected error in view")
	}
}

func TestLoginRemoteErrorKeepsEmailClearsPassword(t *testing.T) {
	gw := &fakeGateway{err: &client.RemoteError{StatusCode: 401, Message: "invalid credentials"}}
	l := NewLogin(context.Background(), newAuth(gw))
	l.email = "a@b.com"
	l.password = "wrong12"

	l.Update(l.submit()())

	if l.Err() != "invalid credentials" {
		t.Errorf("expected remote message, got %q", l.Err())
	}
	if l.email != "a@b.com" {
		t.Errorf("expected email kept, got %q", l.email)
	}
	if l.password != "" {
		t.Error("expected password cleared")
	}
}

func TestLoginIgnoresForeignResult(t *testing.T) {
	l := NewLogin(context.Background(), newAuth(&fakeGateway{}))
	other := NewLogin(context.Background(), newAuth(&fakeGateway{}))
	l.busy = true

	l.Update(loginResultMsg{owner: other})

	if !l.Busy() {
		t.Error("result for another screen must not clear busy")
	}
}

func TestLoginCtrlNPushesRegister(t *testing.T) {
	l := NewLogin(context.Background(), newAuth(&fakeGateway{}))

	_, cmd := l.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	if cmd == nil {
		t.Fatal("expected navigation command")
	}
	msg, ok := cmd().(nav.PushMsg)
	if !ok {
		t.Fatalf("expected PushMsg, got %T", cmd())
	}
	if !msg.Location.Equal(guard.Register) {
		t.Errorf("expected register, got %v", msg.Location)
	}
}

func TestRegisterValidationNeverCallsRemote(t *testing.T) {
	gw := &fakeGateway{}
	r := NewRegister(context.Background(), newAuth(gw))
	r.fullName = "Ada"
	r.email = "a@b.com"
	r.password = "secret1"
	r.confirmPassword = "secret2"

	r.Update(r.submit()())

	if r.Err() != "Passwords do not match" {
		t.Errorf("expected mismatch message, got %q", r.Err())
	}
	if gw.calls != 0 {
		t.Errorf("expected no remote call, got %d", gw.calls)
	}
	if r.password != "" || r.confirmPassword != "" {
		t.Error("expected passwords cleared after failure")
	}
	if r.fullName != "Ada" {
		t.Error("expected name kept after failure")
	}
}

func TestRegisterSuccessPublishesUser(t *testing.T) {
	gw := &fakeGateway{}
	svc := newAuth(gw)
	r := NewRegister(context.Background(), svc)
	r.fullName = "Ada"
	r.email = "a@b.com"
	r.password = "secret1"
	r.confirmPassword = "secret1"

	r.Update(r.submit()())

	if r.Err() != "" {
		t.Errorf("unexpected error %q", r.Err())
	}
	if u := svc.State().Snapshot().User; u == nil || u.FullName != "Ada" {
		t.Errorf("expected registered user in state, got %+v", u)
	}
}

func TestRegisterEscGoesBack(t *testing.T) {
	r := NewRegister(context.Background(), newAuth(&fakeGateway{}))

	_, cmd := r.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected navigation command")
	}
	if _, ok := cmd().(nav.BackMsg); !ok {
		t.Errorf("expected BackMsg, got %T", cmd())
	}
}

func TestFormWidth(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, maxFormWidth},
		{40, 40},
		{200, maxFormWidth},
	}
	for _, tc := range tests {
		if got := formWidth(tc.in); got != tc.want {
			t.Errorf("formWidth(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
