// Package view holds the presentation contract shared by the panel variants.
package view

import "github.com/idilsaglam/todo-sidebar/internal/model"

// Adapter renders the list it was last given. Implementations are pure
// renderers: they keep no state of their own beyond that snapshot and must
// not block the caller.
type Adapter interface {
	Render(items []model.Item)
}

// AdapterFunc adapts a plain function to Adapter.
type AdapterFunc func(items []model.Item)

func (f AdapterFunc) Render(items []model.Item) { f(items) }
