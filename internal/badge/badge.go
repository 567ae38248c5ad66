// Package badge derives the pending-count indicator from the todo list.
package badge

import (
	"fmt"

	"github.com/idilsaglam/todo-sidebar/internal/model"
)

// Badge is the numeric indicator shown next to the panel title.
// A nil *Badge means no indicator.
type Badge struct {
	Value   int    `json:"value"`
	Tooltip string `json:"tooltip"`
}

// For returns the badge for items, or nil when nothing is pending.
func For(items []model.Item) *Badge {
	n := model.Pending(items)
	if n == 0 {
		return nil
	}
	return &Badge{Value: n, Tooltip: Tooltip(n)}
}

func Tooltip(n int) string {
	if n == 1 {
		return "1 incomplete TODO"
	}
	return fmt.Sprintf("%d incomplete TODOs", n)
}

// Display is anything that can show (or clear, on nil) a badge.
type Display interface {
	SetBadge(b *Badge)
}

// DisplayFunc adapts a plain function to Display.
type DisplayFunc func(b *Badge)

func (f DisplayFunc) SetBadge(b *Badge) { f(b) }

// Reporter pushes the current badge to every attached display.
type Reporter struct {
	displays []Display
}

func NewReporter(displays ...Display) *Reporter {
	return &Reporter{displays: displays}
}

// Attach adds a display; it receives the next update.
func (r *Reporter) Attach(d Display) {
	r.displays = append(r.displays, d)
}

// Update recomputes the badge from items. Subscribe it to the store so it
// runs after every mutation.
func (r *Reporter) Update(items []model.Item) {
	b := For(items)
	for _, d := range r.displays {
		if b == nil {
			d.SetBadge(nil)
			continue
		}
		cp := *b
		d.SetBadge(&cp)
	}
}
