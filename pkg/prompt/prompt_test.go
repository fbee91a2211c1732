package prompt

import (
	"testing"

	"tableflip.dev/todo/pkg/duedate"
	"tableflip.dev/todo/pkg/lists"
	"tableflip.dev/todo/pkg/todo"
)

func TestChoices(t *testing.T) {
	l := lists.Build([]*todo.Todo{
		{ID: 1, Title: "a", Month: "1", Year: "2024"},
		{ID: 2, Title: "b", Month: "1", Year: "2024", Completed: true},
		{ID: 3, Title: "c"},
	})
	got := choices(l)

	want := []struct {
		scope  lists.Scope
		name   string
		count  int
		header bool
	}{
		{lists.ScopeAll, duedate.AllTodos, 3, true},
		{lists.ScopeAll, duedate.NoDueDate, 1, false},
		{lists.ScopeAll, "1/24", 2, false},
		{lists.ScopeCompleted, duedate.Completed, 1, true},
		{lists.ScopeCompleted, "1/24", 1, false},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d choices, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		c := got[i]
		if c.Scope != w.scope || c.Name != w.name || c.Count != w.count || c.Header != w.header {
			t.Fatalf("choice %d = %+v, want %+v", i, c, w)
		}
	}
	if got[2].Date != "1/2024" {
		t.Fatalf("choices must keep the full label, got %q", got[2].Date)
	}
}
