package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a Unicode progress bar with a done/total counter.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %d/%d", bar, done, total)
}

// Panel frames lines in a bordered box using the current theme.
func Panel(lines []string) string {
	return Frame(strings.Join(lines, "\n"))
}

// Frame wraps already-rendered content in the themed border.
func Frame(inner string) string {
	border := lipgloss.NormalBorder()
	if current.Rounded {
		border = lipgloss.RoundedBorder()
	}
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(current.Border).
		Padding(0, 1).
		Render(inner)
}
