package selection

import (
	"encoding/json"
	"testing"

	"tableflip.dev/todo/pkg/duedate"
	"tableflip.dev/todo/pkg/lists"
	"tableflip.dev/todo/pkg/todo"
)

func build(records ...*todo.Todo) lists.Lists {
	return lists.Build(records)
}

func newTodo(id int, month, year string, completed bool) *todo.Todo {
	return &todo.Todo{ID: id, Month: month, Year: year, Completed: completed}
}

func TestZeroValueIsNone(t *testing.T) {
	var s Selection
	if s.Active() {
		t.Fatalf("zero selection should be none")
	}
	if s.String() != "none" {
		t.Fatalf("String() = %q", s.String())
	}
}

func TestSelectReplaces(t *testing.T) {
	s := Select(lists.ScopeAll, "1/2024")
	s = Select(lists.ScopeCompleted, "2/2024")
	if !s.Is(lists.ScopeCompleted, "2/2024") {
		t.Fatalf("expected completed/2/2024, got %s", s)
	}
	if s.Is(lists.ScopeAll, "1/2024") {
		t.Fatalf("previous selection should be replaced")
	}
}

func TestReconcileNoneStaysNone(t *testing.T) {
	got := Reconcile(None(), build(newTodo(1, "1", "2024", false)))
	if got.Active() {
		t.Fatalf("expected none, got %s", got)
	}
}

func TestReconcileKeepsSurvivingList(t *testing.T) {
	s := Select(lists.ScopeAll, "1/2024")
	got := Reconcile(s, build(newTodo(1, "1", "2024", false), newTodo(2, "2", "2024", false)))
	if got != s {
		t.Fatalf("expected %s to survive, got %s", s, got)
	}
}

func TestReconcileDropsVanishedList(t *testing.T) {
	s := Select(lists.ScopeAll, "3/2024")
	got := Reconcile(s, build(newTodo(1, "1", "2024", false)))
	if got.Active() {
		t.Fatalf("expected none, got %s", got)
	}
}

func TestReconcileDropsEmptiedCompletedList(t *testing.T) {
	s := Select(lists.ScopeCompleted, "1/2024")
	if got := Reconcile(s, build(newTodo(1, "1", "2024", true))); got != s {
		t.Fatalf("expected %s to survive while a completed todo remains, got %s", s, got)
	}
	if got := Reconcile(s, build(newTodo(1, "1", "2024", false))); got.Active() {
		t.Fatalf("expected none once the last completed todo is toggled, got %s", got)
	}
}

func TestReconcileNeverJumpsScopes(t *testing.T) {
	// 2/2024 exists in the all section but not in the completed section.
	s := Select(lists.ScopeCompleted, "2/2024")
	got := Reconcile(s, build(newTodo(1, "2", "2024", false)))
	if got.Active() {
		t.Fatalf("expected none, got %s", got)
	}
}

func TestReconcileKeepsHeaders(t *testing.T) {
	for _, s := range []Selection{
		Select(lists.ScopeAll, duedate.AllTodos),
		Select(lists.ScopeCompleted, duedate.Completed),
	} {
		if got := Reconcile(s, build()); got != s {
			t.Fatalf("header selection %s should always survive, got %s", s, got)
		}
	}
}

func TestJSON(t *testing.T) {
	b, err := json.Marshal(Select(lists.ScopeCompleted, "1/2024"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"scope":"completedLists","date":"1/2024"}` {
		t.Fatalf("unexpected json %s", b)
	}

	var back Selection
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Is(lists.ScopeCompleted, "1/2024") {
		t.Fatalf("round trip gave %s", back)
	}

	b, _ = json.Marshal(None())
	if string(b) != "null" {
		t.Fatalf("none should marshal to null, got %s", b)
	}
	if err := json.Unmarshal([]byte("null"), &back); err != nil || back.Active() {
		t.Fatalf("null should unmarshal to none, got %s, %v", back, err)
	}
}
