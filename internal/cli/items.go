package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo-sidebar/internal/badge"
	"github.com/idilsaglam/todo-sidebar/internal/model"
	"github.com/idilsaglam/todo-sidebar/internal/todo"
	"github.com/idilsaglam/todo-sidebar/internal/ui"
)

// mutate opens the store, runs fn, and reports the outcome with the
// resulting badge.
func (a *App) mutate(cmd *cobra.Command, fn func(st *todo.Store) (string, error)) error {
	st, closeStore, err := a.openStore(cmd.Context(), a.log)
	if err != nil {
		return err
	}
	defer closeStore()

	var last *badge.Badge
	reporter := badge.NewReporter(badge.DisplayFunc(func(b *badge.Badge) { last = b }))
	st.Subscribe(reporter.Update)

	msg, err := fn(st)
	if err != nil {
		return err
	}
	if err := st.Err(); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	ui.OK(out, msg)
	printBadge(out, last)
	return nil
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a todo (title may be multiple words)",
		Args:  minArgs(1, "usage: todo add <title...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			return app.mutate(cmd, func(st *todo.Store) (string, error) {
				it, ok := st.Add(title)
				if !ok {
					return "", usagef("add: empty title")
				}
				return fmt.Sprintf("added %s %q", it.ID, it.Title), nil
			})
		},
	}
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id|index>",
		Aliases: []string{"done"},
		Short:   "Flip a todo between pending and completed",
		Args:    exactArgs(1, "usage: todo toggle <id|index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.mutate(cmd, func(st *todo.Store) (string, error) {
				it, err := resolve(st.List(), args[0])
				if err != nil {
					return "", err
				}
				st.Toggle(it.ID)
				if it.Completed {
					return fmt.Sprintf("reopened %q", it.Title), nil
				}
				return fmt.Sprintf("completed %q", it.Title), nil
			})
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id|index>",
		Aliases: []string{"delete"},
		Short:   "Remove a todo",
		Args:    exactArgs(1, "usage: todo rm <id|index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.mutate(cmd, func(st *todo.Store) (string, error) {
				it, err := resolve(st.List(), args[0])
				if err != nil {
					return "", err
				}
				st.Delete(it.ID)
				return fmt.Sprintf("removed %q", it.Title), nil
			})
		},
	}
}

func newListCmd(app *App) *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos",
		Args:    exactArgs(0, "usage: todo ls [--group]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeStore, err := app.openStore(cmd.Context(), app.log)
			if err != nil {
				return err
			}
			defer closeStore()
			fmt.Fprintln(cmd.OutOrStdout(), renderList(st.List(), group))
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "Group output by pending/done")
	return cmd
}

// resolve accepts either an item id or a 1-based index into items.
func resolve(items []model.Item, arg string) (model.Item, error) {
	arg = strings.TrimSpace(arg)
	for _, it := range items {
		if it.ID == arg {
			return it, nil
		}
	}
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(items) {
		return items[n-1], nil
	}
	return model.Item{}, usagef("no such todo: %s (run `todo ls` to see ids and indexes)", arg)
}

func printBadge(w io.Writer, b *badge.Badge) {
	if b == nil {
		fmt.Fprintln(w, ui.MutedStyle().Render("nothing pending"))
		return
	}
	fmt.Fprintln(w, ui.PendingStyle().Render(ui.Current().SymPending+" "+b.Tooltip))
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError{msg: usage}
		}
		return nil
	}
}

func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usageError{msg: usage}
		}
		return nil
	}
}
