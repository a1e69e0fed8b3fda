// Package config loads resdump settings from defaults, an optional file,
// RESDUMP_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/enovales/winres/errors"
	"github.com/enovales/winres/langpref"
)

// EnvPrefix prefixes every environment override, e.g. RESDUMP_LOG_LEVEL.
const EnvPrefix = "RESDUMP"

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Log formats.
const (
	LogConsole = "console"
	LogJSON    = "json"
)

// Config holds resdump settings.
type Config struct {
	Log       LogConfig `mapstructure:"log"`
	Output    string    `mapstructure:"output"`
	Languages []string  `mapstructure:"languages"`
}

// LogConfig selects the zap logger built by NewLogger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "warn",
			Format: LogConsole,
		},
		Output:    OutputText,
		Languages: []string{},
	}
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
	"output":     "output",
	"lang":       "languages",
}

// Load reads settings. path may be empty, in which case only defaults,
// environment and flags apply. flags may be nil; flags that were not set
// on the command line do not override lower layers.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("output", def.Output)
	v.SetDefault("languages", def.Languages)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "read "+path)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "bind --"+name)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "decode settings")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log.level")
	}
	if !slices.Contains([]string{LogConsole, LogJSON}, c.Log.Format) {
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("log.format %q: want console or json", c.Log.Format))
	}
	if !slices.Contains([]string{OutputText, OutputJSON, OutputYAML}, c.Output) {
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("output %q: want text, json or yaml", c.Output))
	}
	return langpref.Validate(c.Languages)
}

// NewLogger builds the logger described by c.Log. Logs go to stderr so
// they never mix with command output.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log.level")
	}

	var zc zap.Config
	if c.Log.Format == LogJSON {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}
