package lists

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/duedate"
	todolists "tableflip.dev/todo/pkg/lists"
	"tableflip.dev/todo/pkg/printers"
	"tableflip.dev/todo/pkg/store"
)

func TestListsCounts(t *testing.T) {
	tests := map[string]struct {
		fields    []store.Fields
		completed []int
		all       []todolists.Entry
		done      []todolists.Entry
		total     int
	}{
		"empty": {},
		"dated and undated": {
			fields: []store.Fields{
				{Title: "a", Month: "2", Year: "2024"},
				{Title: "b", Month: "1", Year: "2024"},
				{Title: "c"},
			},
			completed: []int{2},
			all: []todolists.Entry{
				{Scope: todolists.ScopeAll, Date: duedate.NoDueDate, Count: 1},
				{Scope: todolists.ScopeAll, Date: "1/2024", Count: 1},
				{Scope: todolists.ScopeAll, Date: "2/2024", Count: 1},
			},
			done: []todolists.Entry{
				{Scope: todolists.ScopeCompleted, Date: "1/2024", Count: 1},
			},
			total: 3,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			p, err := store.Load(store.Settings{Path: t.TempDir()})
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			for _, f := range tc.fields {
				if _, err := p.Create(ctx, f); err != nil {
					t.Fatalf("create: %v", err)
				}
			}
			for _, id := range tc.completed {
				if _, err := p.ToggleCompleted(ctx, id); err != nil {
					t.Fatalf("toggle: %v", err)
				}
			}

			var buf bytes.Buffer
			l := Lists{
				Service: app.NewService(p),
				Printer: printers.Printer{Format: printers.FormatJSON, Out: &buf},
			}
			if err := l.Do(ctx); err != nil {
				t.Fatalf("lists: %v", err)
			}
			var got todolists.Lists
			if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
				t.Fatalf("decode %q: %v", buf.String(), err)
			}
			if got.All.Total() != tc.total {
				t.Fatalf("all total = %d, want %d", got.All.Total(), tc.total)
			}
			if !sameEntries(got.All.Entries, tc.all) {
				t.Fatalf("all entries = %+v, want %+v", got.All.Entries, tc.all)
			}
			if !sameEntries(got.Completed.Entries, tc.done) {
				t.Fatalf("completed entries = %+v, want %+v", got.Completed.Entries, tc.done)
			}
		})
	}
}

func TestListsWithoutService(t *testing.T) {
	l := Lists{}
	if err := l.Do(context.Background()); err == nil {
		t.Fatalf("expected error without persistence")
	}
}

func sameEntries(got, want []todolists.Entry) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
