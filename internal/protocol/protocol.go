// Package protocol defines the message vocabulary between the todo host and
// an interactive surface.
package protocol

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/idilsaglam/todo-sidebar/internal/badge"
	"github.com/idilsaglam/todo-sidebar/internal/model"
)

type Command string

// Inbound (surface -> host).
const (
	AddTodo    Command = "addTodo"
	ToggleTodo Command = "toggleTodo"
	DeleteTodo Command = "deleteTodo"
	GetTodos   Command = "getTodos"
)

// Outbound (host -> surface).
const (
	UpdateTodos Command = "updateTodos"
	UpdateBadge Command = "updateBadge"
)

// Inbound is a user intent sent by a surface.
type Inbound struct {
	Command Command `json:"command"`
	Title   string  `json:"title,omitempty"`
	ID      string  `json:"id,omitempty"`
}

// TodosMessage replaces the whole list on the receiving side.
type TodosMessage struct {
	Command Command      `json:"command"`
	Todos   []model.Item `json:"todos"`
}

// BadgeMessage carries the badge; a null badge clears it.
type BadgeMessage struct {
	Command Command      `json:"command"`
	Badge   *badge.Badge `json:"badge"`
}

func NewTodosMessage(items []model.Item) TodosMessage {
	if items == nil {
		items = []model.Item{}
	}
	return TodosMessage{Command: UpdateTodos, Todos: items}
}

func NewBadgeMessage(b *badge.Badge) BadgeMessage {
	return BadgeMessage{Command: UpdateBadge, Badge: b}
}

// Decode parses and validates one inbound frame.
func Decode(data []byte) (Inbound, error) {
	var in Inbound
	if err := json.Unmarshal(data, &in); err != nil {
		return Inbound{}, fmt.Errorf("decode message: %w", err)
	}
	if err := in.Validate(); err != nil {
		return Inbound{}, err
	}
	return in, nil
}

func (in Inbound) Validate() error {
	switch in.Command {
	case AddTodo, GetTodos:
		return nil
	case ToggleTodo, DeleteTodo:
		if strings.TrimSpace(in.ID) == "" {
			return fmt.Errorf("%s: missing id", in.Command)
		}
		return nil
	case "":
		return fmt.Errorf("missing command")
	default:
		return fmt.Errorf("unknown command: %s", in.Command)
	}
}
