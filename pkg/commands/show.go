package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/printers"
	"tableflip.dev/todo/pkg/prompt"
	"tableflip.dev/todo/pkg/runner/show"
	"tableflip.dev/todo/pkg/store"
)

func addShow(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	lso := &options.ListOptions{}
	oo := &options.OutputOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "show [list]",
		Short: "Print the todos of one list",
		Example: `
todo show
todo show 1/2024
todo show --scope completed
todo show -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) > 0 {
				lso.Date = strings.Join(args, " ")
			}
			return nil
		},
		ValidArgsFunction: func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return listCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope, date, err := lso.Parse()
			if err != nil {
				return oo.HandleError(err)
			}
			err = withService(cmd.Context(), func(svc *app.Service, _ store.Config) error {
				s := show.Show{
					Scope:   scope,
					Date:    date,
					Service: svc,
					Printer: printers.Printer{Format: oo.Format(), ShowID: io.ShowID, Out: cmd.OutOrStdout()},
				}
				if i.Interactive {
					s.Prompter = &prompt.Prompter{}
				}
				return s.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	options.AddListArgs(cmd, lso)
	registerListCompletion(cmd)
	options.InteractiveArgs(cmd, i)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
