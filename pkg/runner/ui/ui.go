// Package ui provides the runner for the interactive terminal UI.
package ui

import (
	"context"
	"errors"
	"log/slog"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/logging"
	"tableflip.dev/todo/pkg/tui"
)

type UI struct {
	Service *app.Service
	// LogDir receives todo.log while the UI owns the terminal. Empty leaves
	// logging alone.
	LogDir   string
	LogLevel string

	// run is replaced in tests.
	run func(context.Context, *app.Service) error
}

func (d *UI) Do(ctx context.Context) error {
	if d.Service == nil {
		return errors.New("can not open ui, no persistence")
	}

	if d.LogDir != "" {
		f, err := logging.OpenFile(d.LogDir)
		if err != nil {
			return err
		}
		defer f.Close()

		previous := slog.Default()
		if _, err := logging.Init(logging.Options{Level: d.LogLevel, Writer: f, Prefix: "ui"}); err != nil {
			return err
		}
		defer slog.SetDefault(previous)
	}

	run := d.run
	if run == nil {
		run = tui.Run
	}
	slog.Debug("starting ui")
	return run(ctx, d.Service)
}
