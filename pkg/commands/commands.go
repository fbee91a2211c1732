package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/client"
	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/logging"
	"tableflip.dev/todo/pkg/store"
)

var (
	lo = &options.LogOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "todo",
		Short: base.Wrap80("Todo lists grouped by due month, on the command line."),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddLogArgs(cmd, lo)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addToggle(topLevel)
	addComplete(topLevel)
	addLists(topLevel)
	addShow(topLevel)
	addUI(topLevel)
	addServe(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

func initLogging() error {
	level := lo.Level
	if level == "" {
		if cfg, err := store.LoadConfig(); err == nil {
			level = cfg.LogLevel()
		}
	}
	_, err := logging.Init(logging.Options{Level: level, JSON: lo.JSON})
	return err
}

// openService resolves the configured driver into a service. The returned
// func releases the backing store.
func openService(ctx context.Context) (*app.Service, store.Config, func(), error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	var p store.Persistence
	switch cfg.Driver() {
	case store.DriverHTTP:
		p, err = client.New(cfg.Endpoint(), nil)
	default:
		p, err = store.Open(ctx, cfg)
	}
	if err != nil {
		return nil, cfg, nil, err
	}
	slog.Debug("opened store", "driver", cfg.Driver(), "path", cfg.BasePath())

	release := func() {
		if c, ok := p.(io.Closer); ok {
			if err := c.Close(); err != nil {
				slog.Warn("closing store", "err", err)
			}
		}
	}
	return app.NewService(p), cfg, release, nil
}

// withService runs fn against the configured store.
func withService(ctx context.Context, fn func(svc *app.Service, cfg store.Config) error) error {
	svc, cfg, release, err := openService(ctx)
	if err != nil {
		return err
	}
	defer release()
	return fn(svc, cfg)
}
