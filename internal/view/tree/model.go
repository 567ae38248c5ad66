package tree

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo-sidebar/internal/badge"
	"github.com/idilsaglam/todo-sidebar/internal/model"
	"github.com/idilsaglam/todo-sidebar/internal/ui"
)

// Intents receives the user's actions. The panel never mutates items itself.
type Intents interface {
	Add(title string)
	Toggle(id string)
	Delete(id string)
}

// ItemsMsg replaces the whole list shown by the panel.
type ItemsMsg struct{ Items []model.Item }

// BadgeMsg updates (or clears, when nil) the title badge.
type BadgeMsg struct{ Badge *badge.Badge }

type keyMap struct {
	toggle key.Binding
	delete key.Binding
	add    key.Binding
	quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		toggle: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("space", "toggle")),
		delete: key.NewBinding(key.WithKeys("d", "delete", "x"), key.WithHelp("d", "delete")),
		add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is the Bubble Tea model of the structured-list panel.
type Model struct {
	list    list.Model
	intents Intents
	keys    keyMap
	badge   *badge.Badge

	// Inline add
	adding bool
	ti     textinput.Model
	addErr string

	width, height int
}

func New(intents Intents) Model {
	keys := defaultKeys()

	l := list.New(listItems(Nodes(nil)), nodeDelegate{}, 0, 0)
	l.Title = panelTitle(nil)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.TitleStyle()
	l.Styles.HelpStyle = ui.HelpStyle()
	l.Styles.PaginationStyle = ui.HelpStyle()
	l.FilterInput.Prompt = "/ "
	// q is ours; esc stays with the filter.
	l.KeyMap.Quit.SetEnabled(false)
	extra := func() []key.Binding { return []key.Binding{keys.toggle, keys.delete, keys.add, keys.quit} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Enter TODO"
	ti.CharLimit = 200

	return Model{
		list:    l,
		intents: intents,
		keys:    keys,
		ti:      ti,
		width:   80,
		height:  24,
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ItemsMsg:
		// Full replace; no incremental patching.
		cmd := m.list.SetItems(listItems(Nodes(msg.Items)))
		return m, cmd
	case BadgeMsg:
		m.badge = msg.Badge
		m.list.Title = panelTitle(m.badge)
		return m, nil
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(m.width-4, max(m.height-4, 1))
		return m, nil
	}

	if m.adding {
		return m.updateAdding(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(k, m.keys.quit):
			return m, tea.Quit
		case key.Matches(k, m.keys.toggle):
			if n, ok := m.selected(); ok && n.Command != nil && n.Command.Name == CommandToggle {
				m.intents.Toggle(n.ID)
			}
			return m, nil
		case key.Matches(k, m.keys.delete):
			if n, ok := m.selected(); ok && n.Actionable() {
				m.intents.Delete(n.ID)
			}
			return m, nil
		case key.Matches(k, m.keys.add):
			m.adding = true
			m.addErr = ""
			m.ti.SetValue("")
			return m, m.ti.Focus()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			title := strings.TrimSpace(m.ti.Value())
			if title == "" {
				m.addErr = "Title cannot be empty"
				return m, nil
			}
			m.intents.Add(title)
			m.stopAdding()
			return m, nil
		case "esc", "ctrl+g":
			m.stopAdding()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) stopAdding() {
	m.adding = false
	m.addErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m Model) selected() (Node, bool) {
	n, ok := m.list.SelectedItem().(Node)
	return n, ok
}

// Nodes returns the nodes currently shown, in order.
func (m Model) Nodes() []Node {
	items := m.list.Items()
	out := make([]Node, 0, len(items))
	for _, it := range items {
		if n, ok := it.(Node); ok {
			out = append(out, n)
		}
	}
	return out
}

// Badge returns the badge currently shown in the title.
func (m Model) Badge() *badge.Badge { return m.badge }

func (m Model) View() string {
	listHeight := m.height - 4
	if m.adding {
		listHeight = m.height - 8
	}
	m.list.SetSize(m.width-4, max(listHeight, 1))

	content := m.list.View()
	if m.adding {
		title := "Add TODO"
		if m.addErr != "" {
			title += "  " + ui.ErrorStyle().Render(m.addErr)
		}
		content += "\n" + ui.Frame(title+"\n"+m.ti.View())
	}
	return ui.Frame(content)
}

func panelTitle(b *badge.Badge) string {
	if b == nil {
		return "TODOs"
	}
	return fmt.Sprintf("TODOs (%d) · %s", b.Value, b.Tooltip)
}

func listItems(nodes []Node) []list.Item {
	out := make([]list.Item, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n)
	}
	return out
}
