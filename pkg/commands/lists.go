package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/printers"
	"tableflip.dev/todo/pkg/runner/lists"
	"tableflip.dev/todo/pkg/store"
)

func addLists(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Print the All Todos and Completed lists with their counts",
		Example: `
todo lists
todo lists -o yaml
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(svc *app.Service, _ store.Config) error {
				s := lists.Lists{
					Service: svc,
					Printer: printers.Printer{Format: oo.Format(), Out: cmd.OutOrStdout()},
				}
				return s.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
