// Package surface serves the interactive HTML variant of the todo panel and
// bridges its WebSocket message channel to the host loop.
package surface

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todo-sidebar/internal/badge"
	"github.com/idilsaglam/todo-sidebar/internal/model"
	"github.com/idilsaglam/todo-sidebar/internal/protocol"
)

//go:embed templates/*.html static/*.css static/*.js
var assetsFS embed.FS

// Dispatcher accepts inbound intents. reply is used for direct answers.
type Dispatcher interface {
	Dispatch(in protocol.Inbound, reply func(any))
}

type ServerConfig struct {
	Addr  string
	Title string
}

type Server struct {
	cfg  ServerConfig
	tmpl *template.Template
	disp Dispatcher
	log  *log.Logger
	hub  *hub
}

func NewServer(cfg ServerConfig, disp Dispatcher, logger *log.Logger) (*Server, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, errors.New("surface: missing addr")
	}
	if disp == nil {
		return nil, errors.New("surface: missing dispatcher")
	}
	if strings.TrimSpace(cfg.Title) == "" {
		cfg.Title = "TODOs"
	}
	if logger == nil {
		logger = log.Default()
	}
	tmpl, err := template.ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:  cfg,
		tmpl: tmpl,
		disp: disp,
		log:  logger.WithPrefix("surface"),
		hub:  newHub(),
	}, nil
}

func (s *Server) Addr() string {
	return strings.TrimSpace(s.cfg.Addr)
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /static/app.css", s.handleStatic("static/app.css", "text/css; charset=utf-8"))
	mux.HandleFunc("GET /static/app.js", s.handleStatic("static/app.js", "text/javascript; charset=utf-8"))

	return mux
}

// Render implements view.Adapter: every connected surface gets the full list.
func (s *Server) Render(items []model.Item) {
	s.hub.broadcast(protocol.NewTodosMessage(items))
}

// SetBadge implements badge.Display. The last badge is replayed to surfaces
// that connect later.
func (s *Server) SetBadge(b *badge.Badge) {
	s.hub.setBadge(protocol.NewBadgeMessage(b))
}

// Clients reports how many surfaces are connected.
func (s *Server) Clients() int { return s.hub.size() }

// ListenAndServe serves until ctx is done, then shuts down and drops every
// open surface.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Info("listening", "addr", "http://"+s.Addr())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.hub.closeAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type indexVM struct {
	Title string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", indexVM{Title: s.cfg.Title}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleStatic(path, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := assetsFS.ReadFile(path)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(b)
	}
}
