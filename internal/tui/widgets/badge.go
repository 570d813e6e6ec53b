// ABOUTME: Status badge widgets for sessions and scores
// ABOUTME: Provides colored inline badges and status indicators

package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Zubimendi/neurostudy/cli/internal/tui/icons"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/styles"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Color returns the level's foreground color
func (l StatusLevel) Color() lipgloss.Color {
	switch l {
	case StatusOK:
		return styles.Success
	case StatusWarning:
		return styles.Warning
	case StatusCritical:
		return styles.Danger
	case StatusInfo:
		return styles.Secondary
	default:
		return styles.Muted
	}
}

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	fg := lipgloss.Color("#FFFFFF")
	if level == StatusWarning || level == StatusInfo {
		fg = lipgloss.Color("#000000")
	}
	return lipgloss.NewStyle().
		Background(level.Color()).
		Foreground(fg).
		Padding(0, 1).
		Bold(true).
		Render(text)
}

// SessionLevel maps a study session status to a level
func SessionLevel(status string) StatusLevel {
	switch status {
	case "completed":
		return StatusOK
	case "processing", "pending", "uploaded":
		return StatusWarning
	case "failed", "error":
		return StatusCritical
	case "":
		return StatusNeutral
	default:
		return StatusInfo
	}
}

// SessionBadge renders a badge for a study session status
func SessionBadge(status string) string {
	if status == "" {
		status = "unknown"
	}
	return Badge(status, SessionLevel(status))
}

// ScoreLevel maps a quiz percentage to a level
func ScoreLevel(percent float64) StatusLevel {
	switch {
	case percent >= 80:
		return StatusOK
	case percent >= 60:
		return StatusWarning
	default:
		return StatusCritical
	}
}

// StatusIcon returns the icon for a status level
func StatusIcon(level StatusLevel) string {
	var icon string
	switch level {
	case StatusOK:
		icon = icons.CheckOK.String()
	case StatusWarning:
		icon = icons.Warning.String()
	case StatusCritical:
		icon = icons.Critical.String()
	case StatusInfo:
		icon = icons.Info.String()
	default:
		icon = "•"
	}
	return lipgloss.NewStyle().Foreground(level.Color()).Render(icon)
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	return fmt.Sprintf("%s %s", StatusIcon(level), lipgloss.NewStyle().Foreground(level.Color()).Render(text))
}
