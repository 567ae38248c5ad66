// Package host runs the single event loop that owns the todo store at
// runtime. Views enqueue intents; the loop applies them one at a time and
// fans the resulting list and badge out to every attached view.
package host

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todo-sidebar/internal/badge"
	"github.com/idilsaglam/todo-sidebar/internal/protocol"
	"github.com/idilsaglam/todo-sidebar/internal/todo"
	"github.com/idilsaglam/todo-sidebar/internal/view"
)

const queueSize = 64

type intent struct {
	msg   protocol.Inbound
	reply func(any)
}

type Host struct {
	store    *todo.Store
	reporter *badge.Reporter
	log      *log.Logger

	intents chan intent
	done    chan struct{}
}

// New wires the badge reporter to store. Attach views before calling Run.
func New(store *todo.Store, logger *log.Logger) *Host {
	if logger == nil {
		logger = log.Default()
	}
	h := &Host{
		store:    store,
		reporter: badge.NewReporter(),
		log:      logger.WithPrefix("host"),
		intents:  make(chan intent, queueSize),
		done:     make(chan struct{}),
	}
	store.Subscribe(h.reporter.Update)
	return h
}

// Attach subscribes a view to list updates. Views that also implement
// badge.Display receive badge updates.
func (h *Host) Attach(a view.Adapter) {
	if d, ok := a.(badge.Display); ok {
		h.reporter.Attach(d)
	}
	h.store.Subscribe(a.Render)
}

// AttachBadge adds a badge-only display.
func (h *Host) AttachBadge(d badge.Display) {
	h.reporter.Attach(d)
}

// Run publishes the initial list and badge, then applies intents until ctx
// is done.
func (h *Host) Run(ctx context.Context) error {
	defer close(h.done)
	h.store.Publish()
	for {
		select {
		case <-ctx.Done():
			return nil
		case it := <-h.intents:
			h.handle(it)
		}
	}
}

// Dispatch enqueues an inbound message. reply, when non-nil, receives the
// direct answer to getTodos; it is called on the loop goroutine and must not
// block.
func (h *Host) Dispatch(in protocol.Inbound, reply func(any)) {
	select {
	case h.intents <- intent{msg: in, reply: reply}:
	case <-h.done:
	}
}

func (h *Host) Add(title string) {
	h.Dispatch(protocol.Inbound{Command: protocol.AddTodo, Title: title}, nil)
}

func (h *Host) Toggle(id string) {
	h.Dispatch(protocol.Inbound{Command: protocol.ToggleTodo, ID: id}, nil)
}

func (h *Host) Delete(id string) {
	h.Dispatch(protocol.Inbound{Command: protocol.DeleteTodo, ID: id}, nil)
}

func (h *Host) handle(it intent) {
	in := it.msg
	switch in.Command {
	case protocol.AddTodo:
		if _, ok := h.store.Add(in.Title); !ok {
			h.log.Debug("ignored blank title")
		}
	case protocol.ToggleTodo:
		if !h.store.Toggle(in.ID) {
			h.log.Debug("toggle: no such todo", "id", in.ID)
		}
	case protocol.DeleteTodo:
		if !h.store.Delete(in.ID) {
			h.log.Debug("delete: no such todo", "id", in.ID)
		}
	case protocol.GetTodos:
		if it.reply != nil {
			it.reply(protocol.NewTodosMessage(h.store.List()))
		}
	default:
		h.log.Warn("unknown command", "command", in.Command)
	}
}
