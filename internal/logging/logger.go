// Package logging builds the single *zap.Logger the CLI threads through
// every package that accepts one (pkg/cc, pkg/tseitin, cmd/ccsmt itself).
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-configured zap logger at the given level
// ("debug", "info", "warn" or "warning", or "error", in any letter case;
// anything else falls back to info),
// gating verbosity once at startup before any subcommand runs. jsonFormat
// selects structured JSON encoding over the default console encoding, per
// the .ccsmt.yaml log_json setting.
func New(level string, jsonFormat bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if !jsonFormat {
		cfg.Encoding = "console"
	}
	cfg.EncoderConfig.TimeKey = "" // CNF/propagation traces don't need wall-clock noise
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
