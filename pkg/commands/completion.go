package commands

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/lists"
	"tableflip.dev/todo/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(todo completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(todo completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(cmd.OutOrStdout())
		},
	}

	topLevel.AddCommand(cmd)
}

func registerListCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("list", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return listCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

// listCompletions returns the quoted labels of the lists starting with
// toComplete.
func listCompletions(toComplete string) []string {
	var out []string
	_ = withService(context.Background(), func(svc *app.Service, _ store.Config) error {
		st, err := svc.Load(context.Background())
		if err != nil {
			return err
		}
		for _, scope := range lists.Scopes() {
			section := st.Lists.Section(scope)
			for _, e := range append([]lists.Entry{section.Header}, section.Entries...) {
				if strings.HasPrefix(e.Date, toComplete) && !slices.Contains(out, strconv.Quote(e.Date)) {
					out = append(out, strconv.Quote(e.Date))
				}
			}
		}
		return nil
	})
	return out
}
