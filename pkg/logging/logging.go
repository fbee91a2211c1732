// Package logging builds the process logger: log/slog on top of a
// charmbracelet/log handler.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Options holds configuration for the process logger.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// JSON switches to one JSON object per line.
	JSON bool
	// Writer receives log lines. Nil means stderr.
	Writer io.Writer
	// Prefix is printed before every message.
	Prefix string
}

// New returns a logger for opts.
func New(opts Options) (*slog.Logger, error) {
	level := log.InfoLevel
	if s := strings.TrimSpace(opts.Level); s != "" {
		var err error
		if level, err = log.ParseLevel(s); err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
	}
	formatter := log.TextFormatter
	if opts.JSON {
		formatter = log.JSONFormatter
	}
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: opts.JSON,
		Prefix:          opts.Prefix,
	})
	return slog.New(handler), nil
}

// Init builds the logger for opts and installs it as the slog default.
func Init(opts Options) (*slog.Logger, error) {
	logger, err := New(opts)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}

// OpenFile opens <dir>/todo.log for appending, for commands that own the
// terminal.
func OpenFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "todo.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
