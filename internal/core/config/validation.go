package config

import (
	"fmt"

	"github.com/aki/strex/internal/core/browser"
	"github.com/aki/strex/internal/core/logger"
)

// ValidateConfig validates the entire configuration
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("config is nil")
	}

	if _, err := browser.ParseSortOrder(config.Sort); err != nil {
		return fmt.Errorf("invalid sort: %w", err)
	}

	if config.SearchWorkers < 0 {
		return fmt.Errorf("searchWorkers must not be negative")
	}

	if err := ValidateLogConfig(&config.Log); err != nil {
		return fmt.Errorf("invalid log configuration: %w", err)
	}

	return nil
}

// ValidateLogConfig validates the logging section
func ValidateLogConfig(config *LogConfig) error {
	if _, err := logger.ParseLevel(config.Level); err != nil {
		return err
	}
	if _, err := logger.ParseFormat(config.Format); err != nil {
		return err
	}
	return nil
}
