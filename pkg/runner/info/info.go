package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/store"
)

type Info struct {
	Config  store.Config
	Service *app.Service
	Out     io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("TODO_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "TODO_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(out, "TODO_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Config.path:    ", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.driver:  ", n.Config.Driver())
	if n.Config.Driver() == store.DriverHTTP {
		_, _ = fmt.Fprintln(out, "Config.endpoint:", n.Config.Endpoint())
	}

	if n.Service == nil {
		return fmt.Errorf("failed to create persistence object")
	}

	st, err := n.Service.Load(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Todos:     %d\n", st.Lists.All.Total())
	_, _ = fmt.Fprintf(out, "Completed: %d\n", st.Lists.Completed.Total())
	_, _ = fmt.Fprintf(out, "Lists:\n")
	if len(st.Lists.All.Entries) == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", "no lists")
	}
	for _, e := range st.Lists.All.Entries {
		_, _ = fmt.Fprintf(out, "  %s (%d)\n", e.Date, e.Count)
	}

	return nil
}
