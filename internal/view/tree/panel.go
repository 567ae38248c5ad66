package tree

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo-sidebar/internal/badge"
	"github.com/idilsaglam/todo-sidebar/internal/model"
)

// Panel runs the structured-list Model as a Bubble Tea program and feeds it
// list and badge updates from the host loop.
type Panel struct {
	prog *tea.Program
}

func NewPanel(intents Intents, opts ...tea.ProgramOption) *Panel {
	return &Panel{prog: tea.NewProgram(New(intents), opts...)}
}

// Render implements view.Adapter.
func (p *Panel) Render(items []model.Item) {
	p.prog.Send(ItemsMsg{Items: items})
}

// SetBadge implements badge.Display.
func (p *Panel) SetBadge(b *badge.Badge) {
	p.prog.Send(BadgeMsg{Badge: b})
}

// Run blocks until the user quits.
func (p *Panel) Run() error {
	_, err := p.prog.Run()
	return err
}
