// Package complete provides the runner logic for marking todos complete.
package complete

import (
	"context"
	"errors"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/lists"
	"tableflip.dev/todo/pkg/printers"
)

// Complete marks a todo as completed. Completing a completed todo is a no-op.
type Complete struct {
	ID      int
	Scope   lists.Scope
	Date    string
	Service *app.Service
	Printer printers.Printer
}

// Do executes the completion operation for the configured todo ID.
func (n *Complete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not complete, no persistence")
	}
	if _, err := n.Service.Load(ctx); err != nil {
		return err
	}
	if n.Date != "" {
		n.Service.Select(n.Scope, n.Date)
	}
	t, st, err := n.Service.Complete(ctx, n.ID)
	if err != nil {
		return err
	}
	return n.Printer.Changed(t, st)
}
