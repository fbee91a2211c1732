// Package visibility computes which todos the active list shows.
package visibility

import (
	"tableflip.dev/todo/pkg/lists"
	"tableflip.dev/todo/pkg/selection"
	"tableflip.dev/todo/pkg/todo"
)

// Result is the visible subset of records and its size.
type Result struct {
	Todos []*todo.Todo `json:"todos" yaml:"todos"`
	Count int          `json:"count" yaml:"count"`
}

// Visible returns the records shown for sel. Nothing is visible without an
// active list. The completed scope only shows completed records.
func Visible(records []*todo.Todo, sel selection.Selection) Result {
	if !sel.Active() {
		return Result{Todos: []*todo.Todo{}}
	}
	base := todo.FilterByDate(records, sel.Date())
	if sel.Scope() == lists.ScopeCompleted {
		base = todo.FilterCompleted(base)
	}
	out := make([]*todo.Todo, len(base))
	copy(out, base)
	return Result{Todos: out, Count: len(out)}
}
