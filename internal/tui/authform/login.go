// ABOUTME: Login screen built on a huh form
// ABOUTME: Submits credentials to the auth service; the guard handles the redirect

package authform

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zubimendi/neurostudy/cli/internal/auth"
	"github.com/Zubimendi/neurostudy/cli/internal/guard"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/icons"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/nav"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/styles"
)

// maxFormWidth keeps the form readable on wide terminals
const maxFormWidth = 60

// loginResultMsg carries the outcome of a login attempt
type loginResultMsg struct {
	owner *Login
	err   error
}

// Login is the sign-in screen
type Login struct {
	ctx   context.Context
	auth  *auth.Service
	form  *huh.Form
	width int
	busy  bool
	err   string

	email    string
	password string
}

// NewLogin creates the sign-in screen; ctx is cancelled when the screen unmounts
func NewLogin(ctx context.Context, svc *auth.Service) *Login {
	l := &Login{ctx: ctx, auth: svc}
	l.form = l.createForm()
	return l
}

func (l *Login) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&l.email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&l.password),
		).Title("Welcome Back").
			Description("Sign in to continue learning"),
	).WithTheme(styles.FormTheme()).
		WithShowHelp(false).
		WithWidth(formWidth(l.width))
}

// Capturing reports that typed keys belong to the form
func (l *Login) Capturing() bool { return true }

// Busy reports whether a login request is in flight
func (l *Login) Busy() bool { return l.busy }

// Err returns the last user-facing error
func (l *Login) Err() string { return l.err }

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		if msg.owner != l {
			return l, nil
		}
		l.busy = false
		if msg.err != nil {
			l.err = auth.Message(msg.err)
			l.password = ""
			l.form = l.createForm()
			return l, l.form.Init()
		}
		return l, nil

	case tea.WindowSizeMsg:
		l.width = msg.Width
		l.form = l.form.WithWidth(formWidth(l.width))
		return l, nil

	case tea.KeyMsg:
		if l.busy {
			return l, nil
		}
		if msg.String() == "ctrl+n" {
			return l, nav.Push(guard.Register, nil)
		}
	}

	if l.busy {
		return l, nil
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}
	if l.form.State == huh.StateCompleted {
		return l, l.submit()
	}
	return l, cmd
}

func (l *Login) submit() tea.Cmd {
	l.busy = true
	l.err = ""
	ctx, svc := l.ctx, l.auth
	email, password := strings.TrimSpace(l.email), l.password
	return func() tea.Msg {
		_, err := svc.Login(ctx, email, password)
		return loginResultMsg{owner: l, err: err}
	}
}

// View implements tea.Model
func (l *Login) View() string {
	var sb strings.Builder
	sb.WriteString(brand())
	sb.WriteString("\n\n")

	if l.busy {
		sb.WriteString(styles.Subtitle.Render("Signing in..."))
		return sb.String()
	}

	sb.WriteString(l.form.View())
	if l.err != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Error.Render(icons.Critical.String() + " " + l.err))
	}
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("Don't have an account? " + styles.KeyStyle.Render("ctrl+n") + " Sign Up"))
	return sb.String()
}

// brand renders the logo line shared by both auth screens
func brand() string {
	return lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render(icons.App.String()+" NeuroStudy") +
		"  " + lipgloss.NewStyle().Foreground(styles.Muted).Render("Scan. Summarize. Study.")
}

// formWidth clamps the terminal width to a comfortable form width
func formWidth(width int) int {
	if width <= 0 || width > maxFormWidth {
		return maxFormWidth
	}
	return width
}
