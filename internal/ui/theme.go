package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + glyphs. All renderers pull from `current`.
type Theme struct {
	Name                                  string
	Title, Muted, Accent, Success, Danger lipgloss.TerminalColor
	Pending, Border                       lipgloss.TerminalColor
	BoxUnchecked, BoxChecked, Info        string
	SymDone, SymPending, SymFail          string
	Rounded                               bool
}

var current = themeFor("classic")

func SetTheme(name string) {
	current = themeFor(name)
}

func Current() Theme { return current }

// Themes lists the accepted theme names.
func Themes() []string { return []string{"classic", "neon", "mono"} }

func themeFor(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neon":
		return Theme{
			Name:  "neon",
			Title: lipgloss.Color("13"), Muted: lipgloss.Color("8"), Accent: lipgloss.Color("14"),
			Success: lipgloss.Color("10"), Danger: lipgloss.Color("9"), Pending: lipgloss.Color("11"),
			Border:       lipgloss.Color("13"),
			BoxUnchecked: "◻", BoxChecked: "◼", Info: "ℹ",
			SymDone: "✔", SymPending: "•", SymFail: "✖",
			Rounded: true,
		}
	case "mono":
		return Theme{
			Name:  "mono",
			Title: lipgloss.NoColor{}, Muted: lipgloss.NoColor{}, Accent: lipgloss.NoColor{},
			Success: lipgloss.NoColor{}, Danger: lipgloss.NoColor{}, Pending: lipgloss.NoColor{},
			Border:       lipgloss.NoColor{},
			BoxUnchecked: "[ ]", BoxChecked: "[x]", Info: "(i)",
			SymDone: "x", SymPending: "-", SymFail: "!",
		}
	default: // classic
		return Theme{
			Name:  "classic",
			Title: lipgloss.NoColor{}, Muted: lipgloss.Color("8"), Accent: lipgloss.Color("12"),
			Success: lipgloss.Color("42"), Danger: lipgloss.Color("9"), Pending: lipgloss.Color("214"),
			Border:       lipgloss.Color("8"),
			BoxUnchecked: "☐", BoxChecked: "☑", Info: "ℹ",
			SymDone: "✔", SymPending: "•", SymFail: "✖",
			Rounded: true,
		}
	}
}
