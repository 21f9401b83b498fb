// Package config reads the optional .ccsmt.yaml settings file: cosmetic
// CLI knobs only (log level, log format), never solver behavior — there is
// no per-run timeout or resource limit to configure, since the engine's
// concurrency model has no cancellation to offer.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the settings .ccsmt.yaml (or equivalent flags/env vars) may
// override.
type Config struct {
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string
	// LogJSON switches the logger's encoding from the default console
	// format to structured JSON.
	LogJSON bool
}

// Default returns the config as it stands with no file or flags applied.
func Default() Config {
	return Config{LogLevel: "info"}
}

// Load reads .ccsmt.yaml from the current directory (parent directories are
// not searched) if present, falling back to Default() untouched when no file
// exists — an absent config file is not an error. CCSMT_-prefixed
// environment variables override either.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName(".ccsmt")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("CCSMT")
	v.AutomaticEnv()

	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Config{}, fmt.Errorf("read .ccsmt.yaml: %w", err)
		}
	}

	cfg := Config{
		LogLevel: strings.ToLower(v.GetString("log_level")),
		LogJSON:  v.GetBool("log_json"),
	}
	return cfg, nil
}
