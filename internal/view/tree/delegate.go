package tree

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo-sidebar/internal/ui"
)

// nodeDelegate renders each node on a single line.
type nodeDelegate struct{}

func (d nodeDelegate) Height() int                               { return 1 }
func (d nodeDelegate) Spacing() int                              { return 0 }
func (d nodeDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d nodeDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	n, ok := item.(Node)
	if !ok {
		return
	}
	fmt.Fprint(w, renderNode(n, index == m.Index()))
}

func glyph(icon string) string {
	th := ui.Current()
	switch icon {
	case IconDone:
		return th.BoxChecked
	case IconInfo:
		return th.Info
	default:
		return th.BoxUnchecked
	}
}

func renderNode(n Node, selected bool) string {
	box := ui.MutedStyle().Render(glyph(n.Icon))
	text := n.Label
	switch {
	case !n.Actionable():
		text = ui.MutedStyle().Render(text)
	case n.Completed:
		box = ui.SuccessStyle().Render(glyph(n.Icon))
		text = ui.DoneStyle().Render(text)
	}
	prefix := "  "
	if selected {
		prefix = ui.SelectedStyle().Render("> ")
	}
	return prefix + box + " " + text
}
