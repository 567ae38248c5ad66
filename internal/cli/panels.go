package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo-sidebar/internal/config"
	"github.com/idilsaglam/todo-sidebar/internal/host"
	"github.com/idilsaglam/todo-sidebar/internal/logging"
	"github.com/idilsaglam/todo-sidebar/internal/view/surface"
	"github.com/idilsaglam/todo-sidebar/internal/view/tree"
)

func newTreeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Open the interactive sidebar panel",
		Args:  exactArgs(0, "usage: todo tree"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runPanels(cmd.Context(), false, true, "")
		},
	}
}

func newServeCmd(app *App) *cobra.Command {
	var (
		addr     string
		withTree bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive browser surface",
		Args:  exactArgs(0, "usage: todo serve [--addr host:port] [--tree]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runPanels(cmd.Context(), true, withTree, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, "+config.DefaultAddr+")")
	cmd.Flags().BoolVar(&withTree, "tree", false, "Also open the sidebar panel in this terminal")
	return cmd
}

// runPanels runs the host loop with the requested views until the panel
// quits or the process is interrupted.
func (a *App) runPanels(parent context.Context, withSurface, withTree bool, addr string) error {
	logger := a.log
	if withTree {
		// The panel owns the screen; send logs to a file instead.
		f, err := openLogFile(a.cfg.LogPath())
		if err != nil {
			return err
		}
		defer f.Close()
		logger = logging.New(f, a.cfg.Log.Level, a.cfg.Log.Format)
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	st, closeStore, err := a.openStore(ctx, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	h := host.New(st, logger)

	var srv *surface.Server
	if withSurface {
		override(&a.cfg.Surface.Addr, addr)
		srv, err = surface.NewServer(surface.ServerConfig{
			Addr:  a.cfg.Surface.Addr,
			Title: a.cfg.Surface.Title,
		}, h, logger)
		if err != nil {
			return err
		}
		h.Attach(srv)
	}

	var panel *tree.Panel
	if withTree {
		panel = tree.NewPanel(h, tea.WithAltScreen(), tea.WithContext(ctx))
		h.Attach(panel)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		runErrs []error
	)
	record := func(err error) {
		if err == nil {
			return
		}
		mu.Lock()
		runErrs = append(runErrs, err)
		mu.Unlock()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		record(h.Run(ctx))
	}()

	if srv != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer cancel()
			record(srv.ListenAndServe(ctx))
		}()
	}

	if panel != nil {
		err := panel.Run()
		cancel()
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			record(fmt.Errorf("panel: %w", err))
		}
	} else {
		<-ctx.Done()
	}
	wg.Wait()

	if err := st.Err(); err != nil {
		record(err)
	}
	logger.Debug("stopped")
	return errors.Join(runErrs...)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}
