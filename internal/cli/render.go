package cli

import (
	"fmt"

	"github.com/idilsaglam/todo-sidebar/internal/badge"
	"github.com/idilsaglam/todo-sidebar/internal/model"
	"github.com/idilsaglam/todo-sidebar/internal/ui"
)

const maxTitle = 80

// renderList draws the header, progress bar, items and badge in a panel.
func renderList(items []model.Item, group bool) string {
	th := ui.Current()
	pending := model.Pending(items)
	done := len(items) - pending

	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.TitleStyle().Render("Todos"),
		ui.SuccessStyle().Render(th.SymDone), done,
		ui.PendingStyle().Render(th.SymPending), pending,
		ui.AccentStyle().Render("Total"), len(items),
	)

	lines := []string{
		header,
		ui.MutedStyle().Render(ui.ProgressBar(done, len(items), 28)),
		"",
	}
	if group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items, 0)...)
	}
	lines = append(lines, "")
	if b := badge.For(items); b != nil {
		lines = append(lines, ui.PendingStyle().Render(th.SymPending+" "+b.Tooltip))
	} else {
		lines = append(lines, ui.MutedStyle().Render("Tip: add with `todo add \"Buy milk\"`"))
	}
	return ui.Panel(lines)
}

// flatLines numbers items starting at offset+1 so indexes stay valid for
// toggle and rm.
func flatLines(items []model.Item, offset int) []string {
	if len(items) == 0 {
		return []string{ui.MutedStyle().Render("no items")}
	}
	th := ui.Current()
	out := make([]string, 0, len(items))
	for i, it := range items {
		idx := ui.HelpStyle().Render(fmt.Sprintf("%2d.", offset+i+1))
		box := ui.MutedStyle().Render(th.BoxUnchecked)
		title := truncate(it.Title, maxTitle)
		if it.Completed {
			box = ui.SuccessStyle().Render(th.BoxChecked)
			title = ui.DoneStyle().Render(title)
		}
		out = append(out, fmt.Sprintf("%s %s %s %s", idx, box, title, ui.MutedStyle().Render(it.ID)))
	}
	return out
}

type indexed struct {
	at   int
	item model.Item
}

func groupLines(items []model.Item) []string {
	var pend, done []indexed
	for i, it := range items {
		if it.Completed {
			done = append(done, indexed{i, it})
		} else {
			pend = append(pend, indexed{i, it})
		}
	}
	var lines []string
	lines = append(lines, ui.AccentStyle().Render("Pending"))
	lines = append(lines, section(pend)...)
	lines = append(lines, "")
	lines = append(lines, ui.AccentStyle().Render("Done"))
	lines = append(lines, section(done)...)
	return lines
}

func section(entries []indexed) []string {
	if len(entries) == 0 {
		return []string{ui.MutedStyle().Render("(none)")}
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, flatLines([]model.Item{e.item}, e.at)...)
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
