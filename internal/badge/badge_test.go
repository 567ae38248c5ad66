package badge

import (
	"testing"

	"github.com/idilsaglam/todo-sidebar/internal/model"
)

func TestFor(t *testing.T) {
	tests := []struct {
		name  string
		items []model.Item
		want  *Badge
	}{
		{name: "empty", items: nil, want: nil},
		{name: "all done", items: []model.Item{{ID: "1", Completed: true}}, want: nil},
		{
			name:  "singular",
			items: []model.Item{{ID: "1"}, {ID: "2", Completed: true}},
			want:  &Badge{Value: 1, Tooltip: "1 incomplete TODO"},
		},
		{
			name:  "plural",
			items: []model.Item{{ID: "1"}, {ID: "2"}, {ID: "3"}},
			want:  &Badge{Value: 3, Tooltip: "3 incomplete TODOs"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := For(tt.items)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("For: got %+v want %+v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Fatalf("For: got %+v want %+v", *got, *tt.want)
			}
		})
	}
}

func TestReporter_UpdatesEveryDisplay(t *testing.T) {
	var a, b []*Badge
	r := NewReporter(DisplayFunc(func(x *Badge) { a = append(a, x) }))
	r.Attach(DisplayFunc(func(x *Badge) { b = append(b, x) }))

	r.Update([]model.Item{{ID: "1"}, {ID: "2"}})
	r.Update([]model.Item{{ID: "1", Completed: true}})

	for name, got := range map[string][]*Badge{"a": a, "b": b} {
		if len(got) != 2 {
			t.Fatalf("%s: expected 2 updates, got %d", name, len(got))
		}
		if got[0] == nil || got[0].Value != 2 || got[0].Tooltip != "2 incomplete TODOs" {
			t.Fatalf("%s: unexpected first badge %+v", name, got[0])
		}
		if got[1] != nil {
			t.Fatalf("%s: expected cleared badge, got %+v", name, got[1])
		}
	}
}
