package tree

import "github.com/idilsaglam/todo-sidebar/internal/model"

const (
	IconDone    = "check"
	IconPending = "circle-large-outline"
	IconInfo    = "info"

	ContextItem  = "todoItem"
	ContextEmpty = "empty"

	CommandAdd    = "todoSidebar.addTodo"
	CommandToggle = "todoSidebar.toggleTodo"
	CommandDelete = "todoSidebar.deleteTodo"

	PlaceholderLabel = "No TODOs yet"
)

// Command is what activating a node invokes.
type Command struct {
	Name  string
	Title string
	Args  []string
}

// Node is one row of the structured list.
type Node struct {
	ID           string
	Label        string
	Icon         string
	ContextValue string
	Completed    bool
	Command      *Command
}

// FilterValue implements list.Item.
func (n Node) FilterValue() string { return n.Label }

// Actionable reports whether the node stands for a real item.
func (n Node) Actionable() bool { return n.ContextValue == ContextItem }

// Nodes projects items onto list nodes. An empty list becomes a single
// placeholder node with no command.
func Nodes(items []model.Item) []Node {
	if len(items) == 0 {
		return []Node{{
			Label:        PlaceholderLabel,
			Icon:         IconInfo,
			ContextValue: ContextEmpty,
		}}
	}
	out := make([]Node, 0, len(items))
	for _, it := range items {
		icon := IconPending
		if it.Completed {
			icon = IconDone
		}
		out = append(out, Node{
			ID:           it.ID,
			Label:        it.Title,
			Icon:         icon,
			ContextValue: ContextItem,
			Completed:    it.Completed,
			Command: &Command{
				Name:  CommandToggle,
				Title: "Toggle TODO",
				Args:  []string{it.ID},
			},
		})
	}
	return out
}
