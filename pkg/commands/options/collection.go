// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/lists"
)

// ListOptions selects one list: a section and a due-date label.
type ListOptions struct {
	Scope string
	Date  string
}

// AddListArgs wires list selection flags on the provided command.
func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().StringVar(&o.Scope, "scope", "all",
		"Section of the list: all or completed.")
	cmd.Flags().StringVar(&o.Date, "list", "",
		`Due date of the list, example: --list="1/2024". Defaults to the section header.`)
	_ = cmd.RegisterFlagCompletionFunc("scope", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"all", "completed"}, cobra.ShellCompDirectiveNoFileComp
	})
}

// Parse returns the selected scope and date. A blank date selects the
// section header.
func (o *ListOptions) Parse() (lists.Scope, string, error) {
	scope, err := lists.ParseScope(o.Scope)
	if err != nil {
		return "", "", err
	}
	date := o.Date
	if date == "" {
		date = scope.Header()
	}
	return scope, date, nil
}
