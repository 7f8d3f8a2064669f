// Package config provides configuration management for strex.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	// AppDir is the directory name for strex files under the user config dir
	AppDir = "strex"
	// ConfigFile is the filename for the strex configuration
	ConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. STREX_SHOW_HIDDEN
	EnvPrefix = "STREX"
)

// Manager handles the strex configuration file
type Manager struct {
	configPath string
}

// NewManager creates a configuration manager for the file at configPath.
// An empty path selects DefaultPath.
func NewManager(configPath string) (*Manager, error) {
	if configPath == "" {
		var err error
		configPath, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return &Manager{configPath: configPath}, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/strex/config.yaml or the platform equivalent
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, AppDir, ConfigFile), nil
}

// Load reads the configuration. A missing file yields the defaults.
// Environment variables override file values.
func (m *Manager) Load() (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(m.configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", m.configPath, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	applyDefaults(config)

	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save writes the configuration to disk
func (m *Manager) Save(config *Config) error {
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// IsInitialized checks if a configuration file exists
func (m *Manager) IsInitialized() bool {
	_, err := os.Stat(m.configPath)
	return err == nil
}

// GetConfigPath returns the configuration file path
func (m *Manager) GetConfigPath() string {
	return m.configPath
}

// GetStateDir returns the directory holding session state for config
func (m *Manager) GetStateDir(config *Config) string {
	if config != nil && config.StateDir != "" {
		return config.StateDir
	}
	return filepath.Join(filepath.Dir(m.configPath), "state")
}

// applyDefaults fills values the file and environment left empty
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "1.0"
	}

	if cfg.Sort == "" {
		cfg.Sort = "name"
	}
}
