// Package config loads tool configuration for the quill CLI from
// quill.yml/quill.yaml and the environment.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the quill CLI configuration
type Config struct {
	Derive DeriveConfig `mapstructure:"derive"`
	Output OutputConfig `mapstructure:"output"`
}

// DeriveConfig configures default derive behavior
type DeriveConfig struct {
	// Target is the default derive target when --target is not given
	Target string `mapstructure:"target"`
	// Metadata controls whether synthesis metadata is emitted alongside code
	Metadata bool `mapstructure:"metadata"`
}

// OutputConfig configures CLI output
type OutputConfig struct {
	// NoColor disables colorized error output
	NoColor bool `mapstructure:"no_color"`
	// JSON switches error reporting to machine-parseable JSON
	JSON bool `mapstructure:"json"`
}

// Load loads the configuration from quill.yml or quill.yaml in the current
// directory, falling back to defaults when no config file exists.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("derive.target", "builder")
	v.SetDefault("derive.metadata", false)
	v.SetDefault("output.no_color", false)
	v.SetDefault("output.json", false)

	v.SetConfigName("quill")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("QUILL")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validate(config *Config) error {
	switch config.Derive.Target {
	case "builder", "debug":
		return nil
	default:
		return fmt.Errorf("invalid derive.target %q: must be \"builder\" or \"debug\"", config.Derive.Target)
	}
}
