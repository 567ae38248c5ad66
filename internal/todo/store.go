package todo

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todo-sidebar/internal/model"
)

// StateKey is the slot key the whole list is written under.
const StateKey = "todos"

// Slot is the host-provided key-value persistence slot.
// Get reports found=false (and leaves dst untouched) when the key was never written.
type Slot interface {
	Get(key string, dst any) (found bool, err error)
	Update(key string, value any) error
}

// Store owns the ordered todo list. It is not safe for concurrent use:
// drive it from a single goroutine (the host loop or a one-shot command).
type Store struct {
	slot   Slot
	log    *log.Logger
	ids    *idSource
	items  []model.Item
	subs   []subscriber
	nextID int
	err    error
}

type subscriber struct {
	id int
	fn func([]model.Item)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock replaces the wall clock ids are derived from.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.ids.now = now }
}

func New(slot Slot, opts ...Option) *Store {
	s := &Store{
		slot:  slot,
		log:   log.Default(),
		ids:   newIDSource(time.Now),
		items: []model.Item{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load reads the persisted list. A slot that was never written yields an empty list.
func (s *Store) Load() ([]model.Item, error) {
	var items []model.Item
	found, err := s.slot.Get(StateKey, &items)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", StateKey, err)
	}
	if !found || items == nil {
		items = []model.Item{}
	}
	s.items = items
	for _, it := range items {
		s.ids.observe(it.ID)
	}
	return s.List(), nil
}

// Add appends a new item. Blank titles are ignored and reported as false.
func (s *Store) Add(title string) (model.Item, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Item{}, false
	}
	it := model.Item{ID: s.ids.next(), Title: title}
	s.items = append(s.items, it)
	s.commit()
	return it, true
}

// Toggle flips Completed on the item with the given id.
func (s *Store) Toggle(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.items[i].Completed = !s.items[i].Completed
	s.commit()
	return true
}

// Delete removes the item with the given id.
func (s *Store) Delete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.commit()
	return true
}

// List returns a copy of the current list in insertion order.
func (s *Store) List() []model.Item {
	return slices.Clone(s.items)
}

// Subscribe registers fn to receive a snapshot after every mutation.
func (s *Store) Subscribe(fn func([]model.Item)) (cancel func()) {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
	}
}

// Publish pushes the current snapshot to every subscriber without mutating.
func (s *Store) Publish() {
	for _, sub := range s.subs {
		sub.fn(s.List())
	}
}

// Err returns the last persistence failure, if any.
func (s *Store) Err() error { return s.err }

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.items, func(it model.Item) bool { return it.ID == id })
}

func (s *Store) commit() {
	if err := s.slot.Update(StateKey, s.items); err != nil {
		s.err = fmt.Errorf("save %s: %w", StateKey, err)
		s.log.Error("persist failed", "key", StateKey, "err", err)
	}
	s.Publish()
}
