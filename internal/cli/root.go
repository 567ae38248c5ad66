// Package cli is the cobra command surface of the todo binary.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo-sidebar/internal/config"
	"github.com/idilsaglam/todo-sidebar/internal/logging"
	"github.com/idilsaglam/todo-sidebar/internal/store/jsonstore"
	"github.com/idilsaglam/todo-sidebar/internal/store/sqlitestore"
	"github.com/idilsaglam/todo-sidebar/internal/todo"
	"github.com/idilsaglam/todo-sidebar/internal/ui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type App struct {
	ConfigPath string
	Backend    string
	DataPath   string
	LogLevel   string
	LogFormat  string
	Theme      string

	cfg config.Config
	log *log.Logger
}

// usageError marks errors that should exit with ExitUsage.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// Run executes the command line and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitOK
	}
	ui.Fail(stderr, err.Error())
	if isUsage(err) {
		return ExitUsage
	}
	return ExitError
}

func isUsage(err error) bool {
	var ue usageError
	if errors.As(err, &ue) {
		return true
	}
	// cobra reports unknown subcommands as plain errors.
	return strings.HasPrefix(err.Error(), "unknown command")
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "A tiny TODO panel: CLI, terminal sidebar and browser surface",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  todo add "Buy milk"
  todo ls --group
  todo done 1
  todo rm 1
  todo tree
  todo serve --addr 127.0.0.1:7357 --tree
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return usagef("missing subcommand")
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd.ErrOrStderr())
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{msg: err.Error()}
	})

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to config.toml (default: $"+config.EnvConfig+" or ~/.todo-sidebar/config.toml)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Storage backend (json|sqlite)")
	cmd.PersistentFlags().StringVar(&app.DataPath, "data", "", "Path to the todo data file")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&app.LogFormat, "log-format", "", "Log format (text|json|logfmt)")
	cmd.PersistentFlags().StringVar(&app.Theme, "theme", "", "Color theme ("+strings.Join(ui.Themes(), "|")+")")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newToggleCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newTreeCmd(app))
	cmd.AddCommand(newServeCmd(app))

	return cmd
}

// setup resolves configuration: defaults, then file, then env, then flags.
func (a *App) setup(stderr io.Writer) error {
	path, err := config.Path(a.ConfigPath)
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	override(&cfg.Storage.Backend, a.Backend)
	if strings.TrimSpace(a.DataPath) != "" {
		cfg.Storage.Path = config.Abs(a.DataPath)
	}
	override(&cfg.Log.Level, a.LogLevel)
	override(&cfg.Log.Format, a.LogFormat)
	override(&cfg.Theme, a.Theme)
	if err := cfg.Validate(); err != nil {
		return usageError{msg: err.Error()}
	}

	a.cfg = cfg
	a.log = logging.New(stderr, cfg.Log.Level, cfg.Log.Format)
	ui.SetTheme(cfg.Theme)
	return nil
}

func override(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

// openStore opens the configured slot backend and loads the list.
func (a *App) openStore(ctx context.Context, logger *log.Logger) (*todo.Store, func() error, error) {
	var (
		slot    todo.Slot
		closeFn = func() error { return nil }
	)
	path := a.cfg.DataPath()
	switch a.cfg.Storage.Backend {
	case config.BackendSQLite:
		db, err := sqlitestore.Open(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		slot, closeFn = db, db.Close
	default:
		slot = jsonstore.Open(path)
	}
	logger.Debug("opened storage", "backend", a.cfg.Storage.Backend, "path", path)

	st := todo.New(slot, todo.WithLogger(logger.WithPrefix("store")))
	if _, err := st.Load(); err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	return st, closeFn, nil
}
