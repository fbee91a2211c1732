// Package add provides the runner logic for creating todos.
package add

import (
	"context"
	"errors"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/printers"
	"tableflip.dev/todo/pkg/store"
)

// Add stores a new todo and shows the All Todos list it lands in.
type Add struct {
	Fields  store.Fields
	Service *app.Service
	Printer printers.Printer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no persistence")
	}
	if _, err := n.Service.Load(ctx); err != nil {
		return err
	}
	t, st, err := n.Service.Create(ctx, n.Fields)
	if err != nil {
		return err
	}
	return n.Printer.Changed(t, st)
}
