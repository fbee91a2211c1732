package lists

import (
	"reflect"
	"testing"

	"tableflip.dev/todo/pkg/duedate"
	"tableflip.dev/todo/pkg/todo"
)

func newTodo(id int, month, year string, completed bool) *todo.Todo {
	return &todo.Todo{ID: id, Title: "todo", Month: month, Year: year, Completed: completed}
}

func scenario() []*todo.Todo {
	return []*todo.Todo{
		newTodo(1, "1", "2024", false),
		newTodo(2, "1", "2024", true),
		newTodo(3, "2", "2024", false),
	}
}

func sum(entries []Entry) int {
	n := 0
	for _, e := range entries {
		n += e.Count
	}
	return n
}

func TestBuildScenario(t *testing.T) {
	got := Build(scenario())

	wantAll := []Entry{
		{Scope: ScopeAll, Date: "1/2024", Count: 2},
		{Scope: ScopeAll, Date: "2/2024", Count: 1},
	}
	if !reflect.DeepEqual(got.All.Entries, wantAll) {
		t.Fatalf("All.Entries = %+v, want %+v", got.All.Entries, wantAll)
	}

	wantCompleted := []Entry{{Scope: ScopeCompleted, Date: "1/2024", Count: 1}}
	if !reflect.DeepEqual(got.Completed.Entries, wantCompleted) {
		t.Fatalf("Completed.Entries = %+v, want %+v", got.Completed.Entries, wantCompleted)
	}

	if got.All.Header != (Entry{Scope: ScopeAll, Date: duedate.AllTodos, Count: 3}) {
		t.Fatalf("All.Header = %+v", got.All.Header)
	}
	if got.Completed.Header != (Entry{Scope: ScopeCompleted, Date: duedate.Completed, Count: 1}) {
		t.Fatalf("Completed.Header = %+v", got.Completed.Header)
	}
}

func TestBuildPrunesEmptyCompletedSection(t *testing.T) {
	records := scenario()
	records[1].Completed = false

	got := Build(records)
	if len(got.Completed.Entries) != 0 {
		t.Fatalf("expected completed entries to be pruned, got %+v", got.Completed.Entries)
	}
	if got.Completed.Total() != 0 {
		t.Fatalf("Completed.Total = %d, want 0", got.Completed.Total())
	}
	if len(got.All.Entries) != 2 {
		t.Fatalf("all entries should not be pruned, got %+v", got.All.Entries)
	}
}

func TestBuildCountsMatchRecords(t *testing.T) {
	records := []*todo.Todo{
		newTodo(1, "", "", true),
		newTodo(2, "3", "2024", false),
		newTodo(3, "3", "2024", true),
		newTodo(4, "11", "2023", true),
		newTodo(5, "11", "2023", true),
		newTodo(6, "1", "2025", false),
	}
	got := Build(records)

	if n := sum(got.All.Entries); n != len(records) {
		t.Fatalf("sum of all counts = %d, want %d", n, len(records))
	}
	if n := sum(got.Completed.Entries); n != len(todo.FilterCompleted(records)) {
		t.Fatalf("sum of completed counts = %d, want %d", n, len(todo.FilterCompleted(records)))
	}
	for _, e := range got.Completed.Entries {
		if e.Count == 0 {
			t.Fatalf("completed entry %q has count 0", e.Date)
		}
	}
	if got.All.Entries[0].Date != duedate.NoDueDate {
		t.Fatalf("expected %q first, got %q", duedate.NoDueDate, got.All.Entries[0].Date)
	}
	if got.All.Total() != 6 || got.Completed.Total() != 4 {
		t.Fatalf("totals = %d/%d, want 6/4", got.All.Total(), got.Completed.Total())
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	records := scenario()
	if !reflect.DeepEqual(Build(records), Build(records)) {
		t.Fatalf("two builds of the same records differ")
	}
}

func TestBuildEmpty(t *testing.T) {
	got := Build(nil)
	if len(got.All.Entries) != 0 || len(got.Completed.Entries) != 0 {
		t.Fatalf("expected empty sections, got %+v", got)
	}
	if _, ok := got.All.Find(duedate.AllTodos); !ok {
		t.Fatalf("header should always be present")
	}
}

func TestSectionFind(t *testing.T) {
	got := Build(scenario())

	if e, ok := got.Section(ScopeAll).Find("2/2024"); !ok || e.Count != 1 {
		t.Fatalf("Find(2/2024) = %+v, %v", e, ok)
	}
	if _, ok := got.Section(ScopeCompleted).Find("2/2024"); ok {
		t.Fatalf("2/2024 has no completed todos and should not be found")
	}
	if e, ok := got.Section(ScopeCompleted).Find(duedate.Completed); !ok || e.Scope != ScopeCompleted {
		t.Fatalf("Find(Completed) = %+v, %v", e, ok)
	}
	if _, ok := got.Section(ScopeCompleted).Find(duedate.AllTodos); ok {
		t.Fatalf("header of another section should not be found")
	}
}

func TestParseScope(t *testing.T) {
	tests := map[string]Scope{
		"all":            ScopeAll,
		"allLists":       ScopeAll,
		"":               ScopeAll,
		"completed":      ScopeCompleted,
		"completedLists": ScopeCompleted,
	}
	for in, want := range tests {
		got, err := ParseScope(in)
		if err != nil || got != want {
			t.Fatalf("ParseScope(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseScope("done"); err == nil {
		t.Fatalf("expected error for unknown scope")
	}
}
