package commands

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/runner/serve"
	"tableflip.dev/todo/pkg/server"
	"tableflip.dev/todo/pkg/store"
)

func addServe(topLevel *cobra.Command) {
	addr := "127.0.0.1:3000"

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the local todos over the HTTP API",
		Long: `Serve the configured local store as a JSON API so that other todo
clients can use it with driver "http".`,
		Example: `
todo serve
todo serve --addr :3000
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withService(cmd.Context(), func(svc *app.Service, cfg store.Config) error {
				if cfg.Driver() == store.DriverHTTP {
					return fmt.Errorf("serve needs a local store, driver is %q", cfg.Driver())
				}
				s := serve.Serve{
					Persistence: svc.Persistence,
					Addr:        addr,
					OnListening: func(a net.Addr) {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving todos on http://%s%s\n", a, server.RootPath)
					},
				}
				return s.Do(cmd.Context())
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", addr, "address to listen on")

	topLevel.AddCommand(cmd)
}
