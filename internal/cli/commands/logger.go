package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aki/strex/internal/cli/ui"
	"github.com/aki/strex/internal/core/config"
	"github.com/aki/strex/internal/core/logger"
)

// logFlags holds the global logging flags. Empty values defer to the
// configuration file.
type logFlags struct {
	level  string
	format string
}

// RegisterLoggerFlags registers global logging flags
func RegisterLoggerFlags(cmd *cobra.Command, f *logFlags) {
	cmd.PersistentFlags().StringVar(&f.level, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&f.format, "log-format", "", "Log format (text, json)")
}

// CreateLogger creates a stderr logger from the flags, falling back to cfg
func CreateLogger(f logFlags, cfg config.LogConfig) (logger.Logger, error) {
	levelName := cfg.Level
	if f.level != "" {
		levelName = f.level
	}
	level, err := logger.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	formatName := cfg.Format
	if f.format != "" {
		formatName = f.format
	}
	format, err := logger.ParseFormat(formatName)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-format: %w", err)
	}

	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(ui.Stderr()),
	), nil
}
