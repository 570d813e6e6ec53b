// ABOUTME: Progress bars for processing steps and quiz scores
// ABOUTME: Score bars color by the same thresholds as the quiz verdict

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Zubimendi/neurostudy/cli/internal/tui/styles"
)

// ProgressBar renders a bracketed bar filled to percent
func ProgressBar(percent float64, width int, filled, empty lipgloss.Color) string {
	if width <= 0 {
		width = 20
	}
	percent = clamp(percent)
	n := int(percent / 100.0 * float64(width))

	var bar strings.Builder
	bar.WriteString("[")
	bar.WriteString(lipgloss.NewStyle().Foreground(filled).Render(strings.Repeat("█", n)))
	bar.WriteString(lipgloss.NewStyle().Foreground(empty).Render(strings.Repeat("░", width-n)))
	bar.WriteString("]")
	return bar.String()
}

// ProgressBarWithLabel appends the rounded percentage
func ProgressBarWithLabel(percent float64, width int) string {
	bar := ProgressBar(percent, width, styles.Primary, styles.Surface)
	label := lipgloss.NewStyle().Foreground(styles.Secondary).Render(fmt.Sprintf("%3.0f%%", clamp(percent)))
	return bar + " " + label
}

// ScoreBar renders a compact bar colored by quiz score
func ScoreBar(percent float64, width int) string {
	if width <= 0 {
		width = 10
	}
	percent = clamp(percent)
	n := int(percent / 100.0 * float64(width))

	color := ScoreLevel(percent).Color()
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("▓", n)) +
		lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("░", width-n))
}

func clamp(percent float64) float64 {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
