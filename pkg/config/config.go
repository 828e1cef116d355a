// Package config resolves viewer settings from defaults, an optional
// config file, MONDRIAN_ environment variables and command-line flags,
// in rising order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is everything the commands need beyond their positional args.
type Config struct {
	Width   int    `mapstructure:"width"`
	Height  int    `mapstructure:"height"`
	FontDir string `mapstructure:"font_dir"`
	Log     Log    `mapstructure:"log"`
}

// Log selects the logger's verbosity and encoding.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads the configuration. cfgFile names an explicit config file;
// when empty, ./mondrian.yaml is used if present. flags may be nil;
// changed flags override everything else.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("width", 800)
	v.SetDefault("height", 600)
	v.SetDefault("font_dir", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("mondrian")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("MONDRIAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		bind := func(key, name string) {
			if f := flags.Lookup(name); f != nil {
				_ = v.BindPFlag(key, f)
			}
		}
		bind("width", "width")
		bind("height", "height")
		bind("font_dir", "font-dir")
		bind("log.level", "log-level")
		bind("log.format", "log-format")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("viewport %dx%d: width and height must be positive", cfg.Width, cfg.Height)
	}
	return &cfg, nil
}
