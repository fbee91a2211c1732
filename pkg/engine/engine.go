// Package engine runs the derivation pipeline that turns the current todos and
// the active selection into what a client shows.
//
// Every change goes through the same steps in the same order: sort the
// records, rebuild the lists, reconcile the selection against the new lists,
// recompute the visible todos. Nothing is patched incrementally.
package engine

import (
	"tableflip.dev/todo/pkg/duedate"
	"tableflip.dev/todo/pkg/lists"
	"tableflip.dev/todo/pkg/selection"
	"tableflip.dev/todo/pkg/todo"
	"tableflip.dev/todo/pkg/visibility"
)

// State is one complete derivation.
type State struct {
	Records   []*todo.Todo        `json:"-" yaml:"-"`
	Lists     lists.Lists         `json:"lists" yaml:"lists"`
	Selection selection.Selection `json:"active" yaml:"active"`
	Visible   visibility.Result   `json:"visible" yaml:"visible"`
}

// Heading is the name of the active list, or "" when none is active.
func (s State) Heading() string {
	return s.Selection.Date()
}

// Derive runs the pipeline over records with sel as the previous selection.
// It is a pure function of its inputs.
func Derive(records []*todo.Todo, sel selection.Selection) State {
	sorted := todo.SortForDisplay(records)
	built := lists.Build(sorted)
	sel = selection.Reconcile(sel, built)
	return State{
		Records:   sorted,
		Lists:     built,
		Selection: sel,
		Visible:   visibility.Visible(sorted, sel),
	}
}

// Engine owns the record set and the selection. Feed it the confirmed result
// of each store mutation; it is not safe for concurrent use.
type Engine struct {
	records *todo.Collection
	state   State
}

// Option configures a new Engine.
type Option func(*Engine)

// WithSelection starts the engine with sel active.
func WithSelection(scope lists.Scope, date string) Option {
	return func(e *Engine) {
		e.state.Selection = selection.Select(scope, date)
	}
}

// New returns an engine with no records.
func New(opts ...Option) *Engine {
	e := &Engine{records: todo.NewCollection(nil)}
	for _, opt := range opts {
		opt(e)
	}
	e.run()
	return e
}

// State returns the latest derivation.
func (e *Engine) State() State {
	return e.state
}

// Todo returns the record with id.
func (e *Engine) Todo(id int) (*todo.Todo, bool) {
	return e.records.Get(id)
}

// Load replaces every record, as on first load.
func (e *Engine) Load(records []*todo.Todo) State {
	e.records = todo.NewCollection(records)
	return e.run()
}

// Created adds a newly stored todo and activates the AllTodos list.
func (e *Engine) Created(t *todo.Todo) State {
	e.records.Upsert(t)
	e.state.Selection = selection.Select(lists.ScopeAll, duedate.AllTodos)
	return e.run()
}

// Updated replaces an edited todo.
func (e *Engine) Updated(t *todo.Todo) State {
	e.records.Upsert(t)
	return e.run()
}

// Toggled replaces a todo whose completed flag flipped.
func (e *Engine) Toggled(t *todo.Todo) State {
	e.records.Upsert(t)
	return e.run()
}

// Deleted drops the todo with id.
func (e *Engine) Deleted(id int) State {
	e.records.Remove(id)
	return e.run()
}

// Select activates a list and recomputes what is visible. The target is not
// validated; callers pick it from the current lists.
func (e *Engine) Select(scope lists.Scope, date string) State {
	e.state.Selection = selection.Select(scope, date)
	e.state.Visible = visibility.Visible(e.state.Records, e.state.Selection)
	return e.state
}

// Deselect clears the active list.
func (e *Engine) Deselect() State {
	e.state.Selection = selection.None()
	e.state.Visible = visibility.Visible(e.state.Records, e.state.Selection)
	return e.state
}

func (e *Engine) run() State {
	e.records.Sort()
	e.state = Derive(e.records.All(), e.state.Selection)
	return e.state
}
