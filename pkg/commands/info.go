package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/runner/info"
	"tableflip.dev/todo/pkg/store"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configured store and its lists.",
		Example: `
todo info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withService(cmd.Context(), func(svc *app.Service, cfg store.Config) error {
				s := info.Info{
					Config:  cfg,
					Service: svc,
					Out:     cmd.OutOrStdout(),
				}
				return s.Do(cmd.Context())
			})
		},
	}

	topLevel.AddCommand(cmd)
}
