package sqlitestore

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/idilsaglam/todo-sidebar/internal/model"
)

func openTest(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGet_MissingKeyIsNotFound(t *testing.T) {
	s := openTest(t, filepath.Join(t.TempDir(), DefaultFileName))
	var items []model.Item
	found, err := s.Get("todos", &items)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatalf("expected not found")
	}
}

func TestUpdateGet_RoundTripAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", DefaultFileName)
	want := []model.Item{
		{ID: "1", Title: "Buy milk", Completed: true},
		{ID: "2", Title: "Walk dog"},
	}

	s := openTest(t, path)
	if err := s.Update("todos", []model.Item{{ID: "0", Title: "old"}}); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if err := s.Update("todos", want); err != nil {
		t.Fatalf("second update: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := openTest(t, path)
	var got []model.Item
	found, err := reopened.Get("todos", &got)
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip:\n got: %+v\nwant: %+v", got, want)
	}
}
