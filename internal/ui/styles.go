package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// ------- minimal styling helpers (Lip Gloss) -------

func TitleStyle() lipgloss.Style   { return lipgloss.NewStyle().Bold(true).Foreground(current.Title) }
func SuccessStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(current.Success) }
func PendingStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(current.Pending) }
func AccentStyle() lipgloss.Style  { return lipgloss.NewStyle().Foreground(current.Accent) }
func MutedStyle() lipgloss.Style   { return lipgloss.NewStyle().Faint(true).Foreground(current.Muted) }
func ErrorStyle() lipgloss.Style   { return lipgloss.NewStyle().Bold(true).Foreground(current.Danger) }
func HelpStyle() lipgloss.Style    { return lipgloss.NewStyle().Faint(true) }
func SelectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Reverse(true)
}
func DoneStyle() lipgloss.Style { return lipgloss.NewStyle().Faint(true).Strikethrough(true) }

func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, SuccessStyle().Render(current.SymDone+" "+msg))
}

func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, ErrorStyle().Render(current.SymFail+" "+msg))
}
