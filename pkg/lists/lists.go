// Package lists derives the navigable due-date lists from a set of todos.
//
// A build produces two parallel sections. The "all" section has one entry per
// distinct due date counting every todo due then; the "completed" section has
// one entry per due date counting the completed todos, with empty entries
// dropped. Each section also carries a header entry (AllTodos or Completed)
// that is always present and counts the whole section.
package lists

import (
	"fmt"

	"tableflip.dev/todo/pkg/duedate"
	"tableflip.dev/todo/pkg/todo"
)

// Scope names the section an entry belongs to.
type Scope string

const (
	// ScopeAll is the section counting every todo.
	ScopeAll Scope = "allLists"
	// ScopeCompleted is the section counting completed todos only.
	ScopeCompleted Scope = "completedLists"
)

// Scopes returns the sections in display order.
func Scopes() []Scope {
	return []Scope{ScopeAll, ScopeCompleted}
}

// ParseScope accepts the scope names and the short forms "all" and
// "completed".
func ParseScope(raw string) (Scope, error) {
	switch raw {
	case string(ScopeAll), "all", "":
		return ScopeAll, nil
	case string(ScopeCompleted), "completed":
		return ScopeCompleted, nil
	default:
		return "", fmt.Errorf("lists: unknown scope %q", raw)
	}
}

// Header returns the header label of the scope's section.
func (s Scope) Header() string {
	if s == ScopeCompleted {
		return duedate.Completed
	}
	return duedate.AllTodos
}

// Entry is one list: a due date and the number of todos it holds.
type Entry struct {
	Scope Scope  `json:"scope" yaml:"scope"`
	Date  string `json:"date" yaml:"date"`
	Count int    `json:"count" yaml:"count"`
}

// Section groups the entries of one scope under its header.
type Section struct {
	Scope   Scope   `json:"scope" yaml:"scope"`
	Header  Entry   `json:"header" yaml:"header"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Find returns the entry labelled date, including the header.
func (s Section) Find(date string) (Entry, bool) {
	if s.Header.Date == date {
		return s.Header, true
	}
	for _, e := range s.Entries {
		if e.Date == date {
			return e, true
		}
	}
	return Entry{}, false
}

// Total is the number of todos counted by the section.
func (s Section) Total() int {
	return s.Header.Count
}

// Lists is the result of a build.
type Lists struct {
	All       Section `json:"allLists" yaml:"allLists"`
	Completed Section `json:"completedLists" yaml:"completedLists"`
}

// Section returns the section for scope.
func (l Lists) Section(scope Scope) Section {
	if scope == ScopeCompleted {
		return l.Completed
	}
	return l.All
}

// Build groups records into the all and completed sections, ordered by
// ascending due date.
func Build(records []*todo.Todo) Lists {
	all := Section{Scope: ScopeAll, Entries: []Entry{}}
	completed := Section{Scope: ScopeCompleted, Entries: []Entry{}}

	var allTotal, completedTotal int
	for _, date := range todo.DistinctDueDates(records) {
		allTodos := todo.FilterByDate(records, date)
		completedTodos := todo.FilterCompleted(allTodos)

		all.Entries = append(all.Entries, Entry{Scope: ScopeAll, Date: date, Count: len(allTodos)})
		completed.Entries = append(completed.Entries, Entry{Scope: ScopeCompleted, Date: date, Count: len(completedTodos)})

		allTotal += len(allTodos)
		completedTotal += len(completedTodos)
	}
	completed.Entries = removeEmpty(completed.Entries)

	all.Header = Entry{Scope: ScopeAll, Date: ScopeAll.Header(), Count: allTotal}
	completed.Header = Entry{Scope: ScopeCompleted, Date: ScopeCompleted.Header(), Count: completedTotal}

	return Lists{All: all, Completed: completed}
}

func removeEmpty(entries []Entry) []Entry {
	out := entries[:0]
	for _, e := range entries {
		if e.Count > 0 {
			out = append(out, e)
		}
	}
	return out
}
