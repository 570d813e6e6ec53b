// ABOUTME: Sparkline widget renders mini trend charts using block characters
// ABOUTME: Used for the study activity strip on the home screen

package widgets

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// SparklineBlocks are the Unicode block characters for different heights
var SparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values scaled between zero and their maximum.
// Values shorter than width are left-padded with zeros.
func Sparkline(values []float64, width int, color lipgloss.Color) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	sampled := sampleValues(values, width)
	peak := 0.0
	for _, v := range sampled {
		peak = max(peak, v)
	}

	out := make([]rune, len(sampled))
	for i, v := range sampled {
		out[i] = valueToBlock(v, peak)
	}

	style := lipgloss.NewStyle()
	if color != "" {
		style = style.Foreground(color)
	}
	return style.Render(string(out))
}

// DailyCounts buckets timestamps into per-day counts for the days ending
// on now's day, oldest first. Timestamps outside the window are ignored.
func DailyCounts(times []time.Time, days int, now time.Time) []float64 {
	if days <= 0 {
		return nil
	}
	counts := make([]float64, days)
	today := startOfDay(now)
	for _, t := range times {
		if t.IsZero() {
			continue
		}
		age := int(today.Sub(startOfDay(t.In(now.Location()))).Hours() / 24)
		if age < 0 || age >= days {
			continue
		}
		counts[days-1-age]++
	}
	return counts
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// sampleValues resamples the values slice to the target width
func sampleValues(values []float64, width int) []float64 {
	if len(values) == width {
		return values
	}

	result := make([]float64, width)
	if len(values) < width {
		copy(result[width-len(values):], values)
		return result
	}

	ratio := float64(len(values)) / float64(width)
	for i := range result {
		idx := min(int(float64(i)*ratio), len(values)-1)
		result[i] = values[idx]
	}
	return result
}

// valueToBlock maps zero to the lowest block and peak to the highest
func valueToBlock(value, peak float64) rune {
	if peak <= 0 {
		return SparklineBlocks[0]
	}
	idx := int(value / peak * float64(len(SparklineBlocks)-1))
	idx = max(0, min(idx, len(SparklineBlocks)-1))
	return SparklineBlocks[idx]
}
