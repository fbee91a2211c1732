package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/printers"
	"tableflip.dev/todo/pkg/runner/complete"
	"tableflip.dev/todo/pkg/store"
)

func addComplete(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	lso := &options.ListOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "complete <todo id>",
		Aliases: []string{"done"},
		Short:   "Mark a todo as completed",
		Example: `
todo complete 3
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return io.ParseID(args)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope, date, err := lso.Parse()
			if err != nil {
				return oo.HandleError(err)
			}
			err = withService(cmd.Context(), func(svc *app.Service, _ store.Config) error {
				s := complete.Complete{
					ID:      io.ID,
					Scope:   scope,
					Date:    date,
					Service: svc,
					Printer: printers.Printer{Format: oo.Format(), ShowID: io.ShowID, Out: cmd.OutOrStdout()},
				}
				return s.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	options.AddListArgs(cmd, lso)
	registerListCompletion(cmd)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
