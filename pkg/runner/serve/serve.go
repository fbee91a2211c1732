// Package serve provides the runner that exposes a local store over the
// todo HTTP API.
package serve

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"tableflip.dev/todo/pkg/server"
	"tableflip.dev/todo/pkg/store"
)

type Serve struct {
	Persistence store.Persistence
	Addr        string
	Logger      *slog.Logger
	OnListening func(net.Addr)
}

func (n *Serve) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not serve, no persistence")
	}
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	srv, err := server.New(n.Persistence, logger)
	if err != nil {
		return err
	}
	addr := n.Addr
	if addr == "" {
		addr = "127.0.0.1:3000"
	}
	return srv.ListenAndServe(ctx, addr, func(a net.Addr) {
		logger.Info("serving todos", "addr", a.String(), "root", server.RootPath)
		if n.OnListening != nil {
			n.OnListening(a)
		}
	})
}
