package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idilsaglam/todo-sidebar/internal/model"
)

type env struct {
	dir  string
	data string
}

func newEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TODO_SIDEBAR_CONFIG", filepath.Join(dir, "config.toml"))
	for _, k := range []string{"TODO_SIDEBAR_BACKEND", "TODO_SIDEBAR_DATA", "TODO_SIDEBAR_ADDR", "TODO_SIDEBAR_LOG_LEVEL", "TODO_SIDEBAR_LOG_FORMAT", "TODO_SIDEBAR_THEME"} {
		t.Setenv(k, "")
	}
	return env{dir: dir, data: filepath.Join(dir, "todos.json")}
}

func (e env) run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errb bytes.Buffer
	code = Run(append([]string{"--theme", "mono"}, args...), &out, &errb)
	return code, out.String(), errb.String()
}

func (e env) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	code, out, errOut := e.run(t, args...)
	if code != ExitOK {
		t.Fatalf("todo %v: exit %d\nstderr: %s\nstdout: %s", args, code, errOut, out)
	}
	return out
}

func (e env) items(t *testing.T) []model.Item {
	t.Helper()
	b, err := os.ReadFile(e.data)
	if err != nil {
		t.Fatalf("read data: %v", err)
	}
	var doc struct {
		Todos []model.Item `json:"todos"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	return doc.Todos
}

func TestAddToggleRemove(t *testing.T) {
	e := newEnv(t)

	out := e.mustRun(t, "add", "Buy", "milk")
	if !strings.Contains(out, `"Buy milk"`) || !strings.Contains(out, "1 incomplete TODO") {
		t.Fatalf("unexpected add output: %q", out)
	}
	items := e.items(t)
	if len(items) != 1 || items[0].Title != "Buy milk" || items[0].Completed {
		t.Fatalf("unexpected items: %+v", items)
	}

	out = e.mustRun(t, "done", "1")
	if !strings.Contains(out, "completed") || !strings.Contains(out, "nothing pending") {
		t.Fatalf("unexpected toggle output: %q", out)
	}
	if items = e.items(t); !items[0].Completed {
		t.Fatalf("expected completed: %+v", items)
	}

	// Toggle again by id.
	e.mustRun(t, "toggle", items[0].ID)
	if items = e.items(t); items[0].Completed {
		t.Fatalf("expected pending again: %+v", items)
	}

	e.mustRun(t, "rm", items[0].ID)
	if items = e.items(t); len(items) != 0 {
		t.Fatalf("expected empty list: %+v", items)
	}
}

func TestUsageErrors(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "add", "one")

	tests := []struct {
		name string
		args []string
	}{
		{"no subcommand", nil},
		{"unknown subcommand", []string{"launch"}},
		{"blank title", []string{"add", "   "}},
		{"missing title", []string{"add"}},
		{"missing id", []string{"toggle", "999"}},
		{"bad index", []string{"rm", "0"}},
		{"unknown flag", []string{"ls", "--nope"}},
		{"unknown backend", []string{"--backend", "redis", "ls"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := e.run(t, tt.args...)
			if code != ExitUsage {
				t.Fatalf("exit %d, want %d (stderr %q)", code, ExitUsage, errOut)
			}
		})
	}
	if items := e.items(t); len(items) != 1 {
		t.Fatalf("usage errors must not change the list: %+v", items)
	}
}

func TestList(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "add", "first")
	e.mustRun(t, "add", "second")
	e.mustRun(t, "done", "1")

	out := e.mustRun(t, "ls")
	for _, want := range []string{"first", "second", "1/2", "1 incomplete TODO"} {
		if !strings.Contains(out, want) {
			t.Fatalf("ls output missing %q:\n%s", want, out)
		}
	}

	out = e.mustRun(t, "ls", "--group")
	pend, done := strings.Index(out, "Pending"), strings.Index(out, "Done")
	if pend < 0 || done < 0 || pend > done {
		t.Fatalf("expected Pending then Done sections:\n%s", out)
	}
	// Grouped rows keep their list index.
	if !strings.Contains(out, " 2. [ ] second") {
		t.Fatalf("expected original index for second:\n%s", out)
	}
}

func TestSQLiteBackend(t *testing.T) {
	e := newEnv(t)
	db := filepath.Join(e.dir, "todos.db")

	e.mustRun(t, "--backend", "sqlite", "--data", db, "add", "persisted")
	out := e.mustRun(t, "--backend", "sqlite", "--data", db, "ls")
	if !strings.Contains(out, "persisted") {
		t.Fatalf("expected item from sqlite:\n%s", out)
	}
	if _, err := os.Stat(e.data); !os.IsNotExist(err) {
		t.Fatalf("json file should not be created, stat err=%v", err)
	}
}

func TestConfigFileSelectsDataPath(t *testing.T) {
	e := newEnv(t)
	custom := filepath.Join(e.dir, "elsewhere.json")
	cfg := "[storage]\npath = \"" + filepath.ToSlash(custom) + "\"\n"
	if err := os.WriteFile(filepath.Join(e.dir, "config.toml"), []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	e.mustRun(t, "add", "configured")
	if _, err := os.Stat(custom); err != nil {
		t.Fatalf("expected data at %s: %v", custom, err)
	}
}

func TestRuntimeErrorExitCode(t *testing.T) {
	e := newEnv(t)
	if err := os.WriteFile(e.data, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	code, _, errOut := e.run(t, "ls")
	if code != ExitError {
		t.Fatalf("exit %d, want %d (stderr %q)", code, ExitError, errOut)
	}
}
