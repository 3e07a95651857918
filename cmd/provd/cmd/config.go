package cmd

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix of environment variables overriding config keys.
	EnvPrefix = "PROVD"

	configName = "provd"

	FlagHome        = "home"
	FlagLogLevel    = "log-level"
	FlagLogFormat   = "log-format"
	FlagMetricsPort = "metrics-port"
)

// DefaultNodeHome is the default provd home directory.
var DefaultNodeHome = defaultHome()

func defaultHome() string {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return ".provd"
	}
	return filepath.Join(userHome, ".provd")
}

// Config is the resolved provd configuration.
type Config struct {
	Home        string `mapstructure:"home"`
	LogLevel    string `mapstructure:"log-level"`
	LogFormat   string `mapstructure:"log-format"`
	MetricsPort int    `mapstructure:"metrics-port"`
}

// loadConfig merges flags, PROVD_ environment variables and provd.toml in the
// home directory, in that order of precedence.
func loadConfig(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	home := v.GetString(FlagHome)
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath(home)
	v.AddConfigPath(filepath.Join(home, "config"))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewLogger builds the process logger from the configured level and format.
func (c *Config) NewLogger(w io.Writer) (log.Logger, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := []log.Option{log.LevelOption(level)}
	switch c.LogFormat {
	case "", "plain":
	case "json":
		opts = append(opts, log.OutputJSONOption())
	default:
		return nil, errors.New("log format must be plain or json")
	}
	return log.NewLogger(w, opts...), nil
}
