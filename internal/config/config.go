// Package config loads aictx settings from the per-user YAML settings file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quietfold/aictx/internal/guard"
)

// Config holds user-tunable settings.
type Config struct {
	// Model is the chat completion model queries are sent to.
	Model string `yaml:"model"`

	// TokenLimit is the pre-send budget applied to assembled system text.
	TokenLimit int `yaml:"token_limit"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Model:      "gpt-4o",
		TokenLimit: guard.DefaultTokenLimit,
		LogLevel:   "info",
	}
}

// LoadResult contains the loaded configuration and any non-fatal errors.
type LoadResult struct {
	Config *Config
	Errors []error
}

// LoadFromFile loads configuration from a YAML file. A missing file returns
// defaults with no error; a malformed file returns defaults plus a non-fatal
// parse error in Errors.
func LoadFromFile(path string) (*LoadResult, error) {
	result := &LoadResult{
		Config: DefaultConfig(),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal over the defaults so absent keys keep their default values.
	if err := yaml.Unmarshal(data, result.Config); err != nil {
		result.Config = DefaultConfig()
		result.Errors = append(result.Errors, fmt.Errorf("parse error: %w", err))
		return result, nil
	}

	if result.Config.Model == "" {
		result.Config.Model = DefaultConfig().Model
	}
	if result.Config.TokenLimit <= 0 {
		result.Config.TokenLimit = guard.DefaultTokenLimit
	}
	if result.Config.LogLevel == "" {
		result.Config.LogLevel = DefaultConfig().LogLevel
	}

	return result, nil
}
