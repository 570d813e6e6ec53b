// ABOUTME: Tests for the account commands
// ABOUTME: Runs login, register, logout, and whoami against a fake backend

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Zubimendi/neurostudy/cli/internal/auth"
	"github.com/Zubimendi/neurostudy/cli/internal/session"
)

func storedSession(t *testing.T, dir string) *session.Session {
	t.Helper()
	sess, err := session.NewFileStore(dir).Load(context.Background())
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	return sess
}

func TestLoginCommand_Success(t *testing.T) {
	fb := useBackend(t)

	var buf bytes.Buffer
	code := runLogin(context.Background(), &buf, "ada@example.com", "secret1")

	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Logged in as Ada (ada@example.com)") {
		t.Errorf("unexpected output %q", buf.String())
	}
	if sess := storedSession(t, fb.configDir); sess == nil || sess.Token != "t1" {
		t.Errorf("expected token t1 to be stored, got %+v", sess)
	}
}

func TestLoginCommand_EmptyPassword(t *testing.T) {
	fb := useBackend(t)

	var buf bytes.Buffer
	code := runLogin(context.Background(), &buf, "ada@example.com", "")

	if code != exitFailure {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "Please fill in all fields") {
		t.Errorf("unexpected output %q", buf.String())
	}
	if sess := storedSession(t, fb.configDir); sess != nil {
		t.Error("expected no stored session")
	}
}

func TestLoginCommand_Rejected(t *testing.T) {
	useBackend(t)

	var buf bytes.Buffer
	code := runLogin(context.Background(), &buf, "ada@example.com", "wrong")

	if code != exitFailure {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "invalid credentials") {
		t.Errorf("expected the backend message, got %q", buf.String())
	}
}

func TestLoginCommand_JSON(t *testing.T) {
	useBackend(t)
	jsonOutput = true

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf, "ada@example.com", "secret1"); code != exitOK {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	var user session.User
	if err := json.Unmarshal(buf.Bytes(), &user); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("expected user u1, got %+v", user)
	}
}

func TestRegisterCommand(t *testing.T) {
	tests := []struct {
		name  string
		input auth.RegisterInput
		code  int
		text  string
	}{
		{
			name:  "success",
			input: auth.RegisterInput{Email: "bo@example.com", Password: "secret1", ConfirmPassword: "secret1", FullName: "Bo"},
			code:  exitOK,
			text:  "Account created",
		},
		{
			name:  "mismatch",
			input: auth.RegisterInput{Email: "bo@example.com", Password: "secret1", ConfirmPassword: "secret2", FullName: "Bo"},
			code:  exitFailure,
			text:  "Passwords do not match",
		},
		{
			name:  "short password",
			input: auth.RegisterInput{Email: "bo@example.com", Password: "abc", ConfirmPassword: "abc", FullName: "Bo"},
			code:  exitFailure,
			text:  "at least 6 characters",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			useBackend(t)

			var buf bytes.Buffer
			if code := runRegister(context.Background(), &buf, tc.input); code != tc.code {
				t.Errorf("expected exit code %d, got %d: %s", tc.code, code, buf.String())
			}
			if !strings.Contains(buf.String(), tc.text) {
				t.Errorf("expected %q in output, got %q", tc.text, buf.String())
			}
		})
	}
}

func TestLogoutCommand(t *testing.T) {
	fb := useBackend(t)
	fb.login(t)

	var buf bytes.Buffer
	if code := runLogout(context.Background(), &buf); code != exitOK {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if sess := storedSession(t, fb.configDir); sess != nil {
		t.Error("expected the session to be cleared")
	}
}

func TestWhoamiCommand(t *testing.T) {
	fb := useBackend(t)

	var buf bytes.Buffer
	if code := runWhoami(context.Background(), &buf); code != exitFailure {
		t.Errorf("expected exit code 1 when logged out, got %d", code)
	}
	if !strings.Contains(buf.String(), "Not logged in") {
		t.Errorf("unexpected output %q", buf.String())
	}

	fb.login(t)
	buf.Reset()
	if code := runWhoami(context.Background(), &buf); code != exitOK {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(buf.String(), "ada@example.com") {
		t.Errorf("expected email in output, got %q", buf.String())
	}
}

func TestFormatUserHuman(t *testing.T) {
	user := &session.User{
		ID:        "u1",
		Email:     "ada@example.com",
		CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	out := formatUserHuman(user)
	for _, want := range []string{"Name:   -", "Email:  ada@example.com", "Joined: 2026-01-02"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}
