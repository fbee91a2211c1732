// Package remove provides the runner logic for deleting todos.
package remove

import (
	"context"
	"errors"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/lists"
	"tableflip.dev/todo/pkg/printers"
)

// Remove deletes a todo. Scope and Date name the list shown afterwards; it
// is dropped when the delete empties it.
type Remove struct {
	ID      int
	Scope   lists.Scope
	Date    string
	Service *app.Service
	Printer printers.Printer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete, no persistence")
	}
	if _, err := n.Service.Load(ctx); err != nil {
		return err
	}
	if n.Date != "" {
		n.Service.Select(n.Scope, n.Date)
	}
	st, err := n.Service.Delete(ctx, n.ID)
	if err != nil {
		return err
	}
	return n.Printer.State(st)
}
