package todo

import (
	"sort"

	"tableflip.dev/todo/pkg/duedate"
)

// DistinctDueDates returns every due-date label present in records once, in
// ascending due-date order.
func DistinctDueDates(records []*Todo) []string {
	seen := make(map[string]struct{}, len(records))
	dates := make([]string, 0, len(records))
	for _, t := range records {
		d := t.DueDate()
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}
	duedate.Sort(dates)
	return dates
}

// FilterByDate returns the records due on label. The header labels
// duedate.AllTodos and duedate.Completed return records unchanged.
func FilterByDate(records []*Todo, label string) []*Todo {
	if duedate.IsPseudo(label) {
		return records
	}
	out := make([]*Todo, 0, len(records))
	for _, t := range records {
		if t.DueDate() == label {
			out = append(out, t)
		}
	}
	return out
}

// FilterCompleted returns the completed records.
func FilterCompleted(records []*Todo) []*Todo {
	out := make([]*Todo, 0, len(records))
	for _, t := range records {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// SortForDisplay returns a new slice with incomplete records first, each group
// ordered by ascending id.
func SortForDisplay(records []*Todo) []*Todo {
	out := make([]*Todo, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Completed != out[j].Completed {
			return !out[i].Completed
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Collection is the in-memory record set the views are derived from.
type Collection struct {
	records []*Todo
}

// NewCollection copies records into a collection in display order.
func NewCollection(records []*Todo) *Collection {
	return &Collection{records: SortForDisplay(records)}
}

// All returns the records. Callers must not modify the slice.
func (c *Collection) All() []*Todo {
	return c.records
}

// Sort restores display order after records were added or changed.
func (c *Collection) Sort() {
	c.records = SortForDisplay(c.records)
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.records)
}

// Get returns the record with id.
func (c *Collection) Get(id int) (*Todo, bool) {
	for _, t := range c.records {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// Upsert replaces the record with the same id, or appends it. The previous
// slice returned by All is left untouched.
func (c *Collection) Upsert(t *Todo) {
	next := make([]*Todo, 0, len(c.records)+1)
	replaced := false
	for _, existing := range c.records {
		if existing.ID == t.ID {
			next = append(next, t)
			replaced = true
			continue
		}
		next = append(next, existing)
	}
	if !replaced {
		next = append(next, t)
	}
	c.records = next
}

// Remove drops the record with id. It reports whether a record was removed.
func (c *Collection) Remove(id int) bool {
	next := make([]*Todo, 0, len(c.records))
	for _, existing := range c.records {
		if existing.ID != id {
			next = append(next, existing)
		}
	}
	removed := len(next) != len(c.records)
	c.records = next
	return removed
}
