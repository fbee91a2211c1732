package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/runner/ui"
	"tableflip.dev/todo/pkg/store"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
todo ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return withService(cmd.Context(), func(svc *app.Service, cfg store.Config) error {
				level := lo.Level
				if level == "" {
					level = cfg.LogLevel()
				}
				i := ui.UI{
					Service:  svc,
					LogDir:   cfg.BasePath(),
					LogLevel: level,
				}
				return i.Do(cmd.Context())
			})
		},
	}

	topLevel.AddCommand(cmd)
}
