// ABOUTME: Registration screen built on a huh form
// ABOUTME: Validation runs in the auth service before any request is sent

package authform

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Zubimendi/neurostudy/cli/internal/auth"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/icons"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/nav"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/styles"
)

// registerResultMsg carries the outcome of a registration attempt
type registerResultMsg struct {
	owner *Register
	err   error
}

// Register is the sign-up screen
type Register struct {
	ctx   context.Context
	auth  *auth.Service
	form  *huh.Form
	width int
	busy  bool
	err   string

	fullName        string
	email           string
	password        string
	confirmPassword string
}

// NewRegister creates the sign-up screen
func NewRegister(ctx context.Context, svc *auth.Service) *Register {
	r := &Register{ctx: ctx, auth: svc}
	r.form = r.createForm()
	return r
}

func (r *Register) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Full Name").
				Value(&r.fullName),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&r.email),
			huh.NewInput().
				Title("Password").
				Description("At least 6 characters").
				EchoMode(huh.EchoModePassword).
				Value(&r.password),
			huh.NewInput().
				Title("Confirm Password").
				EchoMode(huh.EchoModePassword).
				Value(&r.confirmPassword),
		).Title("Create Account").
			Description("Start your learning journey"),
	).WithTheme(styles.FormTheme()).
		WithShowHelp(false).
		WithWidth(formWidth(r.width))
}

// Capturing reports that typed keys belong to the form
func (r *Register) Capturing() bool { return true }

// Busy reports whether a registration request is in flight
func (r *Register) Busy() bool { return r.busy }

// Err returns the last user-facing error
func (r *Register) Err() string { return r.err }

// Init implements tea.Model
func (r *Register) Init() tea.Cmd {
	return r.form.Init()
}

// Update implements tea.Model
func (r *Register) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
		if msg.owner != r {
			return r, nil
		}
		r.busy = false
		if msg.err != nil {
			r.err = auth.Message(msg.err)
			r.password, r.confirmPassword = "", ""
			r.form = r.createForm()
			return r, r.form.Init()
		}
		return r, nil

	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.form = r.form.WithWidth(formWidth(r.width))
		return r, nil

	case tea.KeyMsg:
		if r.busy {
			return r, nil
		}
		if msg.String() == "esc" {
			return r, nav.Back
		}
	}

	if r.busy {
		return r, nil
	}

	form, cmd := r.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		r.form = f
	}
	if r.form.State == huh.StateCompleted {
		return r, r.submit()
	}
	return r, cmd
}

func (r *Register) submit() tea.Cmd {
	r.busy = true
	r.err = ""
	ctx, svc := r.ctx, r.auth
	in := auth.RegisterInput{
		Email:           strings.TrimSpace(r.email),
		Password:        r.password,
		ConfirmPassword: r.confirmPassword,
		FullName:        strings.TrimSpace(r.fullName),
	}
	return func() tea.Msg {
		_, err := svc.Register(ctx, in)
		return registerResultMsg{owner: r, err: err}
	}
}

// View implements tea.Model
func (r *Register) View() string {
	var sb strings.Builder
	sb.WriteString(brand())
	sb.WriteString("\n\n")

	if r.busy {
		sb.WriteString(styles.Subtitle.Render("Creating account..."))
		return sb.String()
	}

	sb.WriteString(r.form.View())
	if r.err != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Error.Render(icons.Critical.String() + " " + r.err))
	}
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("Already have an account? " + styles.KeyStyle.Render("esc") + " Sign In"))
	return sb.String()
}
