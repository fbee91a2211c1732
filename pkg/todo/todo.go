// Package todo defines the todo record and the pure queries over a set of
// records that the list views are derived from.
package todo

import (
	"fmt"

	"tableflip.dev/todo/pkg/duedate"
)

// Todo is a single to-do record. IDs are assigned by the store.
type Todo struct {
	ID          int    `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Day         string `json:"day,omitempty" yaml:"day,omitempty"`
	Month       string `json:"month,omitempty" yaml:"month,omitempty"`
	Year        string `json:"year,omitempty" yaml:"year,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Completed   bool   `json:"completed" yaml:"completed"`
}

// DueDate returns the label the todo is grouped under.
func (t *Todo) DueDate() string {
	return duedate.Label(t.Month, t.Year)
}

// Saved reports whether the store has assigned an id.
func (t *Todo) Saved() bool {
	return t.ID > 0
}

func (t *Todo) String() string {
	check := " "
	if t.Completed {
		check = "x"
	}
	return fmt.Sprintf("[%s] %s - %s", check, t.Title, duedate.Shorten(t.DueDate()))
}
