// ABOUTME: Compact stat block widget for the home screen
// ABOUTME: Icon and title in the top border, a bold value, and a muted caption

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Zubimendi/neurostudy/cli/internal/tui/icons"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/styles"
)

// DefaultBlockWidth fits three blocks side by side in 80 columns
const DefaultBlockWidth = 22

// StatBlock renders a bordered stat such as a session count
func StatBlock(icon icons.Icon, title, value, caption string, width int) string {
	if width <= 0 {
		width = DefaultBlockWidth
	}
	inner := width - 4

	titleText := truncate(fmt.Sprintf("%s %s", icon.String(), title), inner-1)
	titleWidth := lipgloss.Width(titleText)

	border := lipgloss.NewStyle().Foreground(styles.Muted)
	top := border.Render("┌─ ") +
		lipgloss.NewStyle().Foreground(styles.Primary).Render(titleText) +
		border.Render(" "+strings.Repeat("─", max(0, inner-titleWidth-1))+"┐")

	return strings.Join([]string{
		top,
		line(lipgloss.NewStyle().Foreground(styles.Text).Bold(true).Render(truncate(value, inner)), inner),
		line(lipgloss.NewStyle().Foreground(styles.Muted).Render(truncate(caption, inner)), inner),
		border.Render("└" + strings.Repeat("─", width-2) + "┘"),
	}, "\n")
}

// line pads styled content to inner width between side borders
func line(content string, inner int) string {
	border := lipgloss.NewStyle().Foreground(styles.Muted)
	pad := max(0, inner-lipgloss.Width(content))
	return border.Render("│  ") + content + strings.Repeat(" ", pad) + border.Render("│")
}

// truncate shortens s to maxLen runes with an ellipsis
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:max(0, maxLen)])
	}
	return string(r[:maxLen-3]) + "..."
}
