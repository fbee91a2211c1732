package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// DriverDiskv keeps one JSON file per todo under the base path.
	DriverDiskv = "diskv"
	// DriverSQLite keeps todos in a sqlite database under the base path.
	DriverSQLite = "sqlite"
	// DriverHTTP talks to a remote todo server at Endpoint.
	DriverHTTP = "http"
)

type Config interface {
	BasePath() string
	Driver() string
	Endpoint() string
	LogLevel() string
}

// LoadConfig reads .todo.yaml from $TODO_CONFIG_PATH or the working
// directory. Every key can be overridden with a TODO_ prefixed variable.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.todo")
	viper.SetDefault("driver", DriverDiskv)
	viper.SetDefault("endpoint", "http://localhost:3000")
	viper.SetDefault("log_level", "info")
	viper.SetConfigName(".todo") // .yaml is implicit
	viper.SetEnvPrefix("TODO")
	viper.AutomaticEnv()

	if override := os.Getenv("TODO_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	cfg := Settings{
		Path:  path,
		Store: viper.GetString("driver"),
		URL:   viper.GetString("endpoint"),
		Level: viper.GetString("log_level"),
	}
	switch cfg.Store {
	case DriverDiskv, DriverSQLite, DriverHTTP:
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Store)
	}
	return cfg, nil
}

// Settings is a Config with fixed values.
type Settings struct {
	Path  string `json:"path"`
	Store string `json:"driver"`
	URL   string `json:"endpoint"`
	Level string `json:"log_level"`
}

func (c Settings) BasePath() string { return c.Path }
func (c Settings) Driver() string   { return c.Store }
func (c Settings) Endpoint() string { return c.URL }
func (c Settings) LogLevel() string { return c.Level }
