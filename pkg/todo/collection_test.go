package todo

import (
	"reflect"
	"testing"

	"tableflip.dev/todo/pkg/duedate"
)

func newTodo(id int, month, year string, completed bool) *Todo {
	return &Todo{ID: id, Title: "todo", Month: month, Year: year, Completed: completed}
}

func ids(records []*Todo) []int {
	out := make([]int, 0, len(records))
	for _, t := range records {
		out = append(out, t.ID)
	}
	return out
}

func scenario() []*Todo {
	return []*Todo{
		newTodo(1, "1", "2024", false),
		newTodo(2, "1", "2024", true),
		newTodo(3, "2", "2024", false),
	}
}

func TestDistinctDueDates(t *testing.T) {
	got := DistinctDueDates(scenario())
	want := []string{"1/2024", "2/2024"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DistinctDueDates = %v, want %v", got, want)
	}
}

func TestDistinctDueDatesNoDueDateFirst(t *testing.T) {
	records := []*Todo{
		newTodo(1, "3", "2024", false),
		newTodo(2, "1", "2023", false),
		newTodo(3, "", "", false),
		newTodo(4, "3", "2024", true),
	}
	got := DistinctDueDates(records)
	want := []string{duedate.NoDueDate, "1/2023", "3/2024"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DistinctDueDates = %v, want %v", got, want)
	}
}

func TestDistinctDueDatesEmpty(t *testing.T) {
	if got := DistinctDueDates(nil); len(got) != 0 {
		t.Fatalf("expected no dates, got %v", got)
	}
}

func TestFilterByDate(t *testing.T) {
	records := scenario()
	if got := ids(FilterByDate(records, "1/2024")); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("FilterByDate(1/2024) = %v", got)
	}
	if got := ids(FilterByDate(records, "2/2024")); !reflect.DeepEqual(got, []int{3}) {
		t.Fatalf("FilterByDate(2/2024) = %v", got)
	}
	if got := FilterByDate(records, "3/2024"); len(got) != 0 {
		t.Fatalf("FilterByDate(3/2024) = %v", ids(got))
	}
	for _, pseudo := range []string{duedate.AllTodos, duedate.Completed} {
		if got := ids(FilterByDate(records, pseudo)); !reflect.DeepEqual(got, []int{1, 2, 3}) {
			t.Fatalf("FilterByDate(%q) = %v", pseudo, got)
		}
	}
}

func TestFilterByDateIsExactMatch(t *testing.T) {
	records := []*Todo{newTodo(1, "1", "2024", false), newTodo(2, "01", "2024", false)}
	if got := ids(FilterByDate(records, "1/2024")); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("FilterByDate = %v", got)
	}
}

func TestFilterCompleted(t *testing.T) {
	if got := ids(FilterCompleted(scenario())); !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("FilterCompleted = %v", got)
	}
}

func TestSortForDisplay(t *testing.T) {
	records := []*Todo{
		newTodo(5, "", "", true),
		newTodo(4, "", "", false),
		newTodo(1, "", "", true),
		newTodo(3, "", "", false),
		newTodo(2, "", "", false),
	}
	sorted := SortForDisplay(records)
	if got, want := ids(sorted), []int{2, 3, 4, 1, 5}; !reflect.DeepEqual(got, want) {
		t.Fatalf("SortForDisplay = %v, want %v", got, want)
	}
	if ids(records)[0] != 5 {
		t.Fatalf("SortForDisplay must not reorder its input")
	}

	seenCompleted := false
	for _, td := range sorted {
		if td.Completed {
			seenCompleted = true
		} else if seenCompleted {
			t.Fatalf("incomplete todo %d after a completed one", td.ID)
		}
	}

	again := SortForDisplay(sorted)
	if !reflect.DeepEqual(ids(again), ids(sorted)) {
		t.Fatalf("SortForDisplay not idempotent: %v then %v", ids(sorted), ids(again))
	}
}

func TestCollectionUpsertAndRemove(t *testing.T) {
	c := NewCollection(scenario())
	before := c.All()

	c.Upsert(newTodo(2, "1", "2024", false))
	c.Upsert(newTodo(4, "", "", false))
	c.Sort()

	if got, want := ids(c.All()), []int{1, 2, 3, 4}; !reflect.DeepEqual(got, want) {
		t.Fatalf("after upsert = %v, want %v", got, want)
	}
	if got, want := ids(before), []int{1, 3, 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("previous slice changed: %v, want %v", got, want)
	}

	if td, ok := c.Get(2); !ok || td.Completed {
		t.Fatalf("expected todo 2 to be replaced, got %+v", td)
	}

	if !c.Remove(3) {
		t.Fatalf("expected todo 3 to be removed")
	}
	if c.Remove(3) {
		t.Fatalf("removing twice should report false")
	}
	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
	if _, ok := c.Get(3); ok {
		t.Fatalf("todo 3 still present")
	}
}
