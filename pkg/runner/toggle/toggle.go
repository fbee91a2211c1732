// Package toggle provides the runner logic for flipping a todo's completed
// flag.
package toggle

import (
	"context"
	"errors"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/lists"
	"tableflip.dev/todo/pkg/printers"
)

// Toggle flips a todo between open and completed. Scope and Date name the
// list shown afterwards.
type Toggle struct {
	ID      int
	Scope   lists.Scope
	Date    string
	Service *app.Service
	Printer printers.Printer
}

func (n *Toggle) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not toggle, no persistence")
	}
	if _, err := n.Service.Load(ctx); err != nil {
		return err
	}
	if n.Date != "" {
		n.Service.Select(n.Scope, n.Date)
	}
	t, st, err := n.Service.Toggle(ctx, n.ID)
	if err != nil {
		return err
	}
	return n.Printer.Changed(t, st)
}
