// Package lists provides the runner logic for printing the due-date lists.
package lists

import (
	"context"
	"errors"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/printers"
)

// Lists prints both sections with their counts.
type Lists struct {
	Service *app.Service
	Printer printers.Printer
}

func (n *Lists) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list, no persistence")
	}
	st, err := n.Service.Load(ctx)
	if err != nil {
		return err
	}
	return n.Printer.Lists(st)
}
