package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the strex configuration file
type Config struct {
	Version string `yaml:"version" ignored:"true"`
	// StartPath is the directory a fresh session opens in. Empty means the
	// user's home directory.
	StartPath      string    `yaml:"startPath,omitempty" envconfig:"start_path"`
	ShowHidden     bool      `yaml:"showHidden" envconfig:"show_hidden"`
	Sort           string    `yaml:"sort,omitempty" envconfig:"sort"`
	FollowSymlinks bool      `yaml:"followSymlinks" envconfig:"follow_symlinks"`
	SearchWorkers  int       `yaml:"searchWorkers,omitempty" envconfig:"search_workers"`
	Opener         Command   `yaml:"opener,omitempty" envconfig:"opener"`
	StateDir       string    `yaml:"stateDir,omitempty" envconfig:"state_dir"`
	Log            LogConfig `yaml:"log" envconfig:"log"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level  string `yaml:"level,omitempty" envconfig:"level"`
	Format string `yaml:"format,omitempty" envconfig:"format"`
}

// Command is a program invocation written either as a single string
// ("code --wait") or as an argv array (["code", "--wait"]).
type Command struct {
	Single string
	Array  []string
}

// Argv returns the command as an argument vector
func (c Command) Argv() []string {
	if len(c.Array) > 0 {
		return c.Array
	}
	return strings.Fields(c.Single)
}

// IsEmpty reports whether no command is configured
func (c Command) IsEmpty() bool {
	return len(c.Argv()) == 0
}

// UnmarshalYAML implements yaml.Unmarshaler
func (c *Command) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		c.Single = node.Value
		c.Array = nil
		return nil
	case yaml.SequenceNode:
		var argv []string
		if err := node.Decode(&argv); err != nil {
			return err
		}
		c.Single = ""
		c.Array = argv
		return nil
	default:
		return fmt.Errorf("command must be a string or a list of strings")
	}
}

// MarshalYAML implements yaml.Marshaler
func (c Command) MarshalYAML() (interface{}, error) {
	if len(c.Array) > 0 {
		return c.Array, nil
	}
	return c.Single, nil
}

// Decode implements envconfig.Decoder; the environment value is a single string
func (c *Command) Decode(value string) error {
	c.Single = value
	c.Array = nil
	return nil
}

// DefaultConfig returns the default strex configuration
func DefaultConfig() *Config {
	return &Config{
		Version:    "1.0",
		ShowHidden: true,
		Sort:       "name",
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}
