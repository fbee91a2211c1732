package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/printers"
	"tableflip.dev/todo/pkg/prompt"
	"tableflip.dev/todo/pkg/runner/add"
	"tableflip.dev/todo/pkg/store"
)

func addAdd(topLevel *cobra.Command) {
	to := &options.TodoOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a todo",
		Example: `
todo add buy milk --due 1/2024
todo add file taxes --month 4 --year 2024 -d "state and federal"
todo add -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				if i.Interactive {
					return nil
				}
				return errors.New("requires a title")
			}
			to.Title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := to.Fields()
			if err != nil {
				return oo.HandleError(err)
			}
			if i.Interactive {
				if f, err = (prompt.Prompter{}).Fields(f); err != nil {
					return oo.HandleError(err)
				}
			}
			err = withService(cmd.Context(), func(svc *app.Service, _ store.Config) error {
				s := add.Add{
					Fields:  f,
					Service: svc,
					Printer: printers.Printer{Format: oo.Format(), ShowID: io.ShowID, Out: cmd.OutOrStdout()},
				}
				return s.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	options.AddTodoArgs(cmd, to)
	options.InteractiveArgs(cmd, i)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
