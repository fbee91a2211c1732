// Package edit provides the runner logic for editing todos.
package edit

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/printers"
	"tableflip.dev/todo/pkg/store"
)

// Edit replaces the fields of an existing todo. Merge receives the stored
// fields and returns the ones to save.
type Edit struct {
	ID      int
	Merge   func(store.Fields) (store.Fields, error)
	Service *app.Service
	Printer printers.Printer
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no persistence")
	}
	if _, err := n.Service.Load(ctx); err != nil {
		return err
	}
	current, ok := n.Service.Todo(n.ID)
	if !ok {
		return fmt.Errorf("todo %d: %w", n.ID, store.ErrNotFound)
	}
	fields := store.FieldsOf(current)
	if n.Merge != nil {
		var err error
		if fields, err = n.Merge(fields); err != nil {
			return err
		}
	}
	t, st, err := n.Service.Update(ctx, n.ID, fields)
	if err != nil {
		return err
	}
	return n.Printer.Changed(t, st)
}
