package options

import (
	"github.com/spf13/cobra"
)

// LogOptions
type LogOptions struct {
	Level string
	JSON  bool
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.PersistentFlags().StringVar(&o.Level, "log-level", "",
		"Log level: debug, info, warn or error. Defaults to log_level from the config, $TODO_LOG_LEVEL or info.")
	cmd.PersistentFlags().BoolVar(&o.JSON, "log-json", false,
		"Write logs as JSON.")
}
