// ABOUTME: Settings tab with the profile, app info, and logout
// ABOUTME: Logout asks for confirmation with a huh form before clearing the session

package settings

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zubimendi/neurostudy/cli/internal/auth"
	"github.com/Zubimendi/neurostudy/cli/internal/session"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/icons"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/styles"
)

// Version is shown in the About section
const Version = "1.0.0"

type loggedOutMsg struct {
	owner *Settings
	err   error
}

// Settings is the settings tab
type Settings struct {
	ctx       context.Context
	auth      *auth.Service
	user      *session.User
	apiURL    string
	configDir string
	confirm   *huh.Form
	logout    bool
	err       string
}

// New creates the settings tab
func New(ctx context.Context, svc *auth.Service, user *session.User, apiURL, configDir string) *Settings {
	return &Settings{
		ctx:       ctx,
		auth:      svc,
		user:      user,
		apiURL:    apiURL,
		configDir: configDir,
	}
}

// Capturing reports whether the logout confirmation is open
func (s *Settings) Capturing() bool { return s.confirm != nil }

// Init implements tea.Model
func (s *Settings) Init() tea.Cmd { return nil }

func (s *Settings) createConfirm() *huh.Form {
	s.logout = false
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Logout").
				Description("Are you sure you want to logout?").
				Affirmative("Logout").
				Negative("Cancel").
				Value(&s.logout),
		),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

// Update implements tea.Model
func (s *Settings) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m, ok := msg.(loggedOutMsg); ok {
		if m.owner == s && m.err != nil {
			s.err = auth.Message(m.err)
		}
		return s, nil
	}

	if s.confirm != nil {
		return s.updateConfirm(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "l", "L":
			s.err = ""
			s.confirm = s.createConfirm()
			return s, s.confirm.Init()
		}
	}
	return s, nil
}

func (s *Settings) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		s.confirm = nil
		return s, nil
	}

	form, cmd := s.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.confirm = f
	}

	switch s.confirm.State {
	case huh.StateCompleted:
		s.confirm = nil
		if s.logout {
			return s, s.doLogout()
		}
		return s, nil
	case huh.StateAborted:
		s.confirm = nil
		return s, nil
	}
	return s, cmd
}

func (s *Settings) doLogout() tea.Cmd {
	ctx, svc := s.ctx, s.auth
	return func() tea.Msg {
		return loggedOutMsg{owner: s, err: svc.Logout(ctx)}
	}
}

// View implements tea.Model
func (s *Settings) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Settings.String() + " Settings"))
	sb.WriteString("\n")

	sb.WriteString(s.renderProfile())
	sb.WriteString("\n\n")

	sb.WriteString(heading("About"))
	sb.WriteString(row("Version", Version))
	sb.WriteString(row("Backend", s.apiURL))
	if s.configDir != "" {
		sb.WriteString(row("Config", s.configDir))
	}
	sb.WriteString("\n")

	if s.confirm != nil {
		sb.WriteString(s.confirm.View())
	} else {
		sb.WriteString(lipgloss.NewStyle().Foreground(styles.Danger).Bold(true).Render(icons.Logout.String() + " Logout"))
		sb.WriteString("  ")
		sb.WriteString(styles.Help.UnsetMarginTop().Render("press " + styles.KeyStyle.Render("l")))
	}

	if s.err != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Error.Render(icons.Critical.String() + " " + s.err))
	}
	return sb.String()
}

func (s *Settings) renderProfile() string {
	if s.user == nil {
		return styles.Subtitle.Render("Not signed in")
	}
	initial := "?"
	if name := strings.TrimSpace(s.user.FullName); name != "" {
		initial = strings.ToUpper(string([]rune(name)[0]))
	}
	avatar := lipgloss.NewStyle().
		Background(styles.Primary).
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true).
		Padding(0, 1).
		Render(initial)
	info := fmt.Sprintf("%s\n%s",
		styles.ValueStyle.Render(s.user.FullName),
		lipgloss.NewStyle().Foreground(styles.Muted).Render(s.user.Email))
	return styles.Card.Render(lipgloss.JoinHorizontal(lipgloss.Center, avatar, "  ", info))
}

func heading(text string) string {
	return lipgloss.NewStyle().Foreground(styles.Muted).Bold(true).Render(strings.ToUpper(text)) + "\n"
}

func row(label, value string) string {
	return fmt.Sprintf("  %-10s %s\n", label, styles.ValueStyle.Render(value))
}
