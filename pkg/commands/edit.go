package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/printers"
	"tableflip.dev/todo/pkg/prompt"
	"tableflip.dev/todo/pkg/runner/edit"
	"tableflip.dev/todo/pkg/store"
)

func addEdit(topLevel *cobra.Command) {
	to := &options.TodoOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "edit <todo id>",
		Short: "Change the title, due date or description of a todo",
		Example: `
todo edit 3 --title "buy oat milk"
todo edit 3 --due 2/2024
todo edit 3 -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return io.ParseID(args)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := withService(cmd.Context(), func(svc *app.Service, _ store.Config) error {
				s := edit.Edit{
					ID: io.ID,
					Merge: func(f store.Fields) (store.Fields, error) {
						f, err := to.Merge(cmd, f)
						if err != nil || !i.Interactive {
							return f, err
						}
						return (prompt.Prompter{}).Fields(f)
					},
					Service: svc,
					Printer: printers.Printer{Format: oo.Format(), ShowID: io.ShowID, Out: cmd.OutOrStdout()},
				}
				return s.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	cmd.Flags().StringVarP(&to.Title, "title", "t", "",
		"New title of the todo.")
	options.AddTodoArgs(cmd, to)
	options.InteractiveArgs(cmd, i)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
