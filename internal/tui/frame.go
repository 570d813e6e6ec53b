// ABOUTME: Frame around every screen: header, home tab bar, and footer
// ABOUTME: Footer shortcuts depend on the mounted screen

package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Zubimendi/neurostudy/cli/internal/tui/icons"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/nav"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/styles"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/widgets"
)

// tabLabels follow the order of nav.Tabs
func tabLabels() []string {
	return []string{
		icons.Home.String() + " Home",
		icons.Camera.String() + " Scan",
		icons.History.String() + " History",
		icons.Settings.String() + " Settings",
	}
}

// shortcuts per screen, "key label" pairs
var shortcuts = map[Screen][]string{
	ScreenSplash:     {"ctrl+c Quit"},
	ScreenLogin:      {"Enter Next", "ctrl+n Sign Up", "ctrl+c Quit"},
	ScreenRegister:   {"Enter Next", "Esc Sign In", "ctrl+c Quit"},
	ScreenHome:       {"↑↓ Navigate", "Enter Open", "r Refresh", "Tab Switch", "q Quit"},
	ScreenScan:       {"↑↓ Navigate", "Enter Select", "p Process", "Tab Switch", "q Quit"},
	ScreenHistory:    {"↑↓ Navigate", "Enter Open", "r Refresh", "Tab Switch", "q Quit"},
	ScreenSettings:   {"l Logout", "Tab Switch", "q Quit"},
	ScreenProcessing: {"ctrl+c Quit"},
	ScreenResults:    {"←→ Tabs", "↑↓ Scroll", "f Flashcards", "t Quiz", "b Back"},
	ScreenFlashcards: {"Space Flip", "←→ Cards", "b Back"},
	ScreenQuiz:       {"a-d Answer", "Enter Next", "r Retry", "Esc Back"},
	ScreenNotFound:   {"h Home", "b Back", "q Quit"},
}

// lastUpdater is implemented by screens that show when their data was fetched
type lastUpdater interface {
	LastUpdate() time.Time
}

// View implements tea.Model
func (a *App) View() string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	if a.router.Location().InHomeGroup() {
		sb.WriteString(a.renderTabBar())
		sb.WriteString("\n\n")
	}
	if a.model != nil {
		sb.WriteString(lipgloss.NewStyle().PaddingLeft(1).Render(a.model.View()))
	}
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// frameWidth is the terminal width minus one column, clamped to the minimum
func (a *App) frameWidth() int {
	return max(minTerminalWidth, a.width-1)
}

// renderHeader creates the header bar with app branding and the signed-in user
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := " " + icons.App.String() + " " + titleStyle.Render("NeuroStudy") + " "

	rightText := ""
	if user := a.auth.State().Snapshot().User; user != nil {
		rightText = " " + contextStyle.Render(icons.User.String()+" "+user.Email) + " "
	}

	fillWidth := max(0, width-4-lipgloss.Width(leftText)-lipgloss.Width(rightText))
	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"

	return borderStyle.Render(header)
}

// renderTabBar highlights the active home tab
func (a *App) renderTabBar() string {
	loc := a.router.Location()
	labels := tabLabels()
	tabs := make([]string, len(nav.Tabs))
	for i, tab := range nav.Tabs {
		if tab.Equal(loc) {
			tabs[i] = styles.TabActive.Render(labels[i])
		} else {
			tabs[i] = styles.TabInactive.Render(labels[i])
		}
	}
	return " " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	keys := shortcuts[a.screen]
	styled := make([]string, 0, len(keys))
	for _, s := range keys {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styled = append(styled, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styled = append(styled, s)
		}
	}
	leftText := " " + strings.Join(styled, "  ") + " "

	rightText := ""
	if u, ok := a.model.(lastUpdater); ok && !u.LastUpdate().IsZero() {
		rightText = " " + statusStyle.Render("Updated "+widgets.TimeAgo(u.LastUpdate(), time.Now())) + " "
	}

	fillWidth := max(0, width-4-lipgloss.Width(leftText)-lipgloss.Width(rightText))
	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"

	return borderStyle.Render(footer)
}
