// ABOUTME: Screen registry mapping router locations to screen models
// ABOUTME: Also holds the splash and not-found screens

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zubimendi/neurostudy/cli/internal/guard"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/authform"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/dashboard"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/flashcards"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/history"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/icons"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/nav"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/processing"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/quiz"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/results"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/scan"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/settings"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenSplash Screen = iota
	ScreenLogin
	ScreenRegister
	ScreenHome
	ScreenScan
	ScreenHistory
	ScreenSettings
	ScreenProcessing
	ScreenResults
	ScreenFlashcards
	ScreenQuiz
	ScreenNotFound
)

var screenNames = map[Screen]string{
	ScreenSplash:     "splash",
	ScreenLogin:      "login",
	ScreenRegister:   "register",
	ScreenHome:       "home",
	ScreenScan:       "scan",
	ScreenHistory:    "history",
	ScreenSettings:   "settings",
	ScreenProcessing: "processing",
	ScreenResults:    "results",
	ScreenFlashcards: "flashcards",
	ScreenQuiz:       "quiz",
	ScreenNotFound:   "not-found",
}

func (s Screen) String() string {
	if name, ok := screenNames[s]; ok {
		return name
	}
	return "unknown"
}

// ScreenFor maps a location to the screen that renders it
func ScreenFor(loc guard.Location) Screen {
	switch {
	case loc.IsRoot():
		return ScreenSplash
	case loc.Equal(guard.Login):
		return ScreenLogin
	case loc.Equal(guard.Register):
		return ScreenRegister
	case loc.Equal(nav.HomeTab):
		return ScreenHome
	case loc.Equal(nav.ScanTab):
		return ScreenScan
	case loc.Equal(nav.HistoryTab):
		return ScreenHistory
	case loc.Equal(nav.SettingsTab):
		return ScreenSettings
	case loc.Equal(nav.Processing):
		return ScreenProcessing
	}

	if len(loc) == 2 && loc[1] != "" {
		switch loc[0] {
		case "results":
			return ScreenResults
		case "flashcards":
			return ScreenFlashcards
		case "quiz":
			return ScreenQuiz
		}
	}
	return ScreenNotFound
}

// build creates the model for screen; ctx is cancelled when it unmounts
func (a *App) build(ctx context.Context, screen Screen, entry nav.Entry) tea.Model {
	loc := entry.Location
	switch screen {
	case ScreenLogin:
		return authform.NewLogin(ctx, a.auth)
	case ScreenRegister:
		return authform.NewRegister(ctx, a.auth)
	case ScreenHome:
		return dashboard.New(ctx, a.study, a.auth.State().Snapshot().User)
	case ScreenScan:
		return scan.New(ctx, a.study, a.recentFiles, a.imagesDir)
	case ScreenHistory:
		return history.New(ctx, a.study)
	case ScreenSettings:
		return settings.New(ctx, a.auth, a.auth.State().Snapshot().User, a.apiURL, a.configDir)
	case ScreenProcessing:
		return processing.New(ctx, a.study, entry.Param(scan.ParamSessionID), entry.Param(scan.ParamImageURL))
	case ScreenResults:
		return results.New(ctx, a.study, loc[1])
	case ScreenFlashcards:
		return flashcards.New(ctx, a.study, loc[1])
	case ScreenQuiz:
		return quiz.New(ctx, a.study, loc[1])
	case ScreenNotFound:
		return &notFound{location: loc}
	}
	return newSplash()
}

// splash is shown at the root while the session check runs
type splash struct {
	spinner spinner.Model
}

func newSplash() *splash {
	return &splash{spinner: spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
	)}
}

func (s *splash) Init() tea.Cmd { return s.spinner.Tick }

func (s *splash) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *splash) View() string {
	return styles.Title.Render(icons.App.String()+" NeuroStudy") + "\n" +
		s.spinner.View() + " Loading..."
}

// notFound renders locations no screen handles
type notFound struct {
	location guard.Location
}

func (n *notFound) Init() tea.Cmd { return nil }

func (n *notFound) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "b", "esc":
			return n, nav.Back
		case "h":
			return n, nav.Replace(nav.HomeTab, nil)
		}
	}
	return n, nil
}

func (n *notFound) View() string {
	var sb strings.Builder
	sb.WriteString(styles.StatusWarning.Render(icons.Warning.String() + " This screen doesn't exist."))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(n.location.String()))
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render(styles.KeyStyle.Render("h") + " Go to home screen"))
	return sb.String()
}
