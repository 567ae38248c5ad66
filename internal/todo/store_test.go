package todo

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/idilsaglam/todo-sidebar/internal/model"
)

// memSlot round-trips values through JSON like a real host slot would.
type memSlot struct {
	data    map[string][]byte
	writes  int
	failErr error
}

func newMemSlot() *memSlot { return &memSlot{data: map[string][]byte{}} }

func (m *memSlot) Get(key string, dst any) (bool, error) {
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (m *memSlot) Update(key string, value any) error {
	if m.failErr != nil {
		return m.failErr
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	m.writes++
	return nil
}

func frozenClock() func() time.Time {
	t := time.UnixMilli(1700000000000)
	return func() time.Time { return t }
}

func newTestStore(t *testing.T, slot *memSlot) *Store {
	t.Helper()
	s := New(slot, WithClock(frozenClock()))
	if _, err := s.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func TestLoad_EmptySlotYieldsEmptyList(t *testing.T) {
	s := New(newMemSlot())
	items, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", items)
	}
}

func TestLoad_UndecodableValueIsAnError(t *testing.T) {
	slot := newMemSlot()
	slot.data[StateKey] = []byte(`{"not":"a list"}`)
	if _, err := New(slot).Load(); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestAdd_AppendsTrimmedPendingItem(t *testing.T) {
	slot := newMemSlot()
	s := newTestStore(t, slot)

	it, ok := s.Add("  Buy milk \t")
	if !ok {
		t.Fatalf("expected add to succeed")
	}
	if it.Title != "Buy milk" || it.Completed || it.ID == "" {
		t.Fatalf("unexpected item: %+v", it)
	}
	got := s.List()
	if len(got) != 1 || got[0] != it {
		t.Fatalf("unexpected list: %+v", got)
	}
	if slot.writes != 1 {
		t.Fatalf("expected 1 write, got %d", slot.writes)
	}
}

func TestAdd_BlankTitleIsNoop(t *testing.T) {
	slot := newMemSlot()
	s := newTestStore(t, slot)
	s.Add("keep")

	notified := 0
	s.Subscribe(func([]model.Item) { notified++ })

	for _, title := range []string{"", "   ", "\n\t"} {
		if _, ok := s.Add(title); ok {
			t.Fatalf("expected %q to be rejected", title)
		}
	}
	if n := len(s.List()); n != 1 {
		t.Fatalf("expected 1 item, got %d", n)
	}
	if notified != 0 || slot.writes != 1 {
		t.Fatalf("blank add must not persist or notify: notified=%d writes=%d", notified, slot.writes)
	}
}

func TestAdd_IDsUniqueUnderFrozenClock(t *testing.T) {
	s := newTestStore(t, newMemSlot())
	seen := map[string]bool{}
	prev := ""
	for i := 0; i < 100; i++ {
		it, _ := s.Add("x")
		if seen[it.ID] {
			t.Fatalf("duplicate id %s", it.ID)
		}
		if prev != "" && len(it.ID) == len(prev) && it.ID <= prev {
			t.Fatalf("ids not increasing: %s after %s", it.ID, prev)
		}
		seen[it.ID] = true
		prev = it.ID
	}
}

func TestToggle_FlipsOnlyTarget(t *testing.T) {
	s := newTestStore(t, newMemSlot())
	a, _ := s.Add("a")
	b, _ := s.Add("b")
	c, _ := s.Add("c")

	if !s.Toggle(b.ID) {
		t.Fatalf("expected toggle to find %s", b.ID)
	}
	want := []model.Item{a, {ID: b.ID, Title: "b", Completed: true}, c}
	if got := s.List(); !reflect.DeepEqual(got, want) {
		t.Fatalf("after toggle:\n got: %+v\nwant: %+v", got, want)
	}

	s.Toggle(b.ID)
	if s.List()[1].Completed {
		t.Fatalf("expected second toggle to flip back")
	}
}

func TestToggle_UnknownIDIsNoop(t *testing.T) {
	slot := newMemSlot()
	s := newTestStore(t, slot)
	s.Add("a")
	before := s.List()

	if s.Toggle("nope") {
		t.Fatalf("expected toggle of unknown id to report false")
	}
	if !reflect.DeepEqual(before, s.List()) || slot.writes != 1 {
		t.Fatalf("unknown toggle changed state")
	}
}

func TestDelete_RemovesExactlyOneAndIsIdempotent(t *testing.T) {
	s := newTestStore(t, newMemSlot())
	a, _ := s.Add("a")
	b, _ := s.Add("b")
	c, _ := s.Add("c")

	if !s.Delete(b.ID) {
		t.Fatalf("expected delete to find %s", b.ID)
	}
	once := s.List()
	if s.Delete(b.ID) {
		t.Fatalf("expected second delete to report false")
	}
	if !reflect.DeepEqual(once, s.List()) {
		t.Fatalf("second delete changed state")
	}
	if want := []model.Item{a, c}; !reflect.DeepEqual(once, want) {
		t.Fatalf("after delete:\n got: %+v\nwant: %+v", once, want)
	}
}

func TestList_ReturnsSnapshot(t *testing.T) {
	s := newTestStore(t, newMemSlot())
	s.Add("a")
	snap := s.List()
	snap[0].Title = "mutated"
	if s.List()[0].Title != "a" {
		t.Fatalf("List must not expose internal state")
	}
}

func TestRoundTrip_AcrossRestart(t *testing.T) {
	slot := newMemSlot()
	s := newTestStore(t, slot)
	a, _ := s.Add("a")
	b, _ := s.Add("b")
	s.Add("c")
	s.Toggle(a.ID)
	s.Delete(b.ID)
	want := s.List()

	restarted := New(slot, WithClock(frozenClock()))
	got, err := restarted.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip:\n got: %+v\nwant: %+v", got, want)
	}

	// A restarted store never reissues a persisted id.
	d, _ := restarted.Add("d")
	for _, it := range want {
		if it.ID == d.ID {
			t.Fatalf("reissued id %s", d.ID)
		}
	}
}

func TestSubscribe_NotifiedInOrderAndCancellable(t *testing.T) {
	s := newTestStore(t, newMemSlot())
	var calls []string
	s.Subscribe(func(items []model.Item) { calls = append(calls, "first") })
	cancel := s.Subscribe(func(items []model.Item) { calls = append(calls, "second") })

	s.Add("a")
	cancel()
	s.Add("b")

	want := []string{"first", "second", "first"}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("calls: got %v want %v", calls, want)
	}
}

func TestCommit_PersistFailureIsRecorded(t *testing.T) {
	slot := newMemSlot()
	s := newTestStore(t, slot)
	slot.failErr = errors.New("disk full")

	if _, ok := s.Add("a"); !ok {
		t.Fatalf("add should still apply in memory")
	}
	if err := s.Err(); err == nil || !errors.Is(err, slot.failErr) {
		t.Fatalf("expected recorded persistence error, got %v", err)
	}
	if len(s.List()) != 1 {
		t.Fatalf("expected in-memory list to keep the item")
	}
}
