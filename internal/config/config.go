// Package config handles configuration loading and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultDirName   = ".todo-sidebar"
	DefaultFileName  = "config.toml"
	DefaultBackend   = BackendJSON
	DefaultAddr      = "127.0.0.1:7357"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultTheme     = "classic"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Environment overrides.
const (
	EnvConfig    = "TODO_SIDEBAR_CONFIG"
	EnvBackend   = "TODO_SIDEBAR_BACKEND"
	EnvData      = "TODO_SIDEBAR_DATA"
	EnvAddr      = "TODO_SIDEBAR_ADDR"
	EnvLogLevel  = "TODO_SIDEBAR_LOG_LEVEL"
	EnvLogFormat = "TODO_SIDEBAR_LOG_FORMAT"
	EnvTheme     = "TODO_SIDEBAR_THEME"
)

// Config holds the full configuration.
type Config struct {
	Theme   string  `toml:"theme"`
	Storage Storage `toml:"storage"`
	Surface Surface `toml:"surface"`
	Log     Log     `toml:"log"`

	// Dir is the config file's directory; relative storage.path and log.file
	// resolve against it (computed).
	Dir string `toml:"-"`
}

type Storage struct {
	Backend string `toml:"backend"` // json or sqlite
	Path    string `toml:"path"`    // empty: <dir>/todos.json or <dir>/todos.db
}

type Surface struct {
	Addr  string `toml:"addr"`
	Title string `toml:"title"`
}

type Log struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text, json, logfmt
	File   string `toml:"file"`   // used while the terminal panel owns the screen
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Theme:   DefaultTheme,
		Storage: Storage{Backend: DefaultBackend},
		Surface: Surface{Addr: DefaultAddr, Title: "TODOs"},
		Log:     Log{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// DefaultDir returns ~/.todo-sidebar.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, DefaultDirName), nil
}

// Path resolves the config file location: explicit path, then
// $TODO_SIDEBAR_CONFIG, then ~/.todo-sidebar/config.toml.
func Path(explicit string) (string, error) {
	if p := strings.TrimSpace(explicit); p != "" {
		return p, nil
	}
	if p := strings.TrimSpace(os.Getenv(EnvConfig)); p != "" {
		return p, nil
	}
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultFileName), nil
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	cfg.Dir = filepath.Dir(path)
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays TODO_SIDEBAR_* environment variables.
func (c *Config) ApplyEnv() {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.Storage.Backend, EnvBackend)
	if v := strings.TrimSpace(os.Getenv(EnvData)); v != "" {
		c.Storage.Path = Abs(v)
	}
	set(&c.Surface.Addr, EnvAddr)
	set(&c.Log.Level, EnvLogLevel)
	set(&c.Log.Format, EnvLogFormat)
	set(&c.Theme, EnvTheme)
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("storage.backend: unknown backend %q (json|sqlite)", c.Storage.Backend)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "warning", "error"}, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	if !slices.Contains([]string{"text", "json", "logfmt"}, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	if !slices.Contains([]string{"classic", "neon", "mono"}, strings.ToLower(c.Theme)) {
		return fmt.Errorf("theme: unknown theme %q", c.Theme)
	}
	if strings.TrimSpace(c.Surface.Addr) == "" {
		return errors.New("surface.addr: empty")
	}
	return nil
}

// DataPath returns the storage file for the configured backend.
func (c Config) DataPath() string {
	if p := strings.TrimSpace(c.Storage.Path); p != "" {
		return c.resolve(p)
	}
	name := "todos.json"
	if c.Storage.Backend == BackendSQLite {
		name = "todos.db"
	}
	return filepath.Join(c.Dir, name)
}

// LogPath returns the log file used while the terminal panel is running.
func (c Config) LogPath() string {
	if p := strings.TrimSpace(c.Log.File); p != "" {
		return c.resolve(p)
	}
	return filepath.Join(c.Dir, "todo-sidebar.log")
}

func (c Config) resolve(p string) string {
	p = expandHome(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// Abs resolves a command-line or environment path against the working
// directory, expanding a leading ~.
func Abs(p string) string {
	p = expandHome(strings.TrimSpace(p))
	if a, err := filepath.Abs(p); err == nil {
		return a
	}
	return p
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
