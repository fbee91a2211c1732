// Package show provides the runner logic for printing one list.
package show

import (
	"context"
	"errors"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/lists"
	"tableflip.dev/todo/pkg/printers"
	"tableflip.dev/todo/pkg/prompt"
)

// Show selects a list and prints its todos. With a Prompter set, the list is
// picked interactively instead.
type Show struct {
	Scope    lists.Scope
	Date     string
	Prompter *prompt.Prompter
	Service  *app.Service
	Printer  printers.Printer
}

func (n *Show) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show, no persistence")
	}
	st, err := n.Service.Load(ctx)
	if err != nil {
		return err
	}

	scope, date := n.Scope, n.Date
	if n.Prompter != nil {
		picked, err := n.Prompter.PickList(st.Lists, 0)
		if err != nil {
			return err
		}
		scope, date = picked.Scope, picked.Date
	}
	if date == "" {
		date = scope.Header()
	}

	return n.Printer.State(n.Service.Select(scope, date))
}
