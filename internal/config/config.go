// Package config loads gco configuration from YAML files and environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for gco.
type Config struct {
	// TargetLanguage is the synthesis target. Only "c" is supported.
	TargetLanguage string `yaml:"target_language" env:"GCO_TARGET_LANGUAGE"`

	// OutputDir receives generated sources and oracle files.
	OutputDir string `yaml:"output_dir" env:"GCO_OUTPUT_DIR"`

	// EntryDepth is the depth value main passes to the entry function of a
	// synthesized program.
	EntryDepth int `yaml:"entry_depth" env:"GCO_ENTRY_DEPTH"`

	// Workers bounds batch pipeline concurrency.
	Workers int `yaml:"workers" env:"GCO_WORKERS"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose" env:"GCO_VERBOSE"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		TargetLanguage: "c",
		OutputDir:      "gen",
		EntryDepth:     6,
		Workers:        4,
		Verbose:        false,
	}
}

// globalConfigFilePath returns the global config file path (~/.gco/config.yaml)
func globalConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gco/config.yaml"
	}
	return filepath.Join(home, ".gco", "config.yaml")
}

// projectConfigFilePath returns the project-level config file path (./.gco/config.yaml)
func projectConfigFilePath() string {
	return ".gco/config.yaml"
}

// Load reads configuration with the following priority (highest to lowest):
// 1. Environment variables
// 2. Project-level config (./.gco/config.yaml)
// 3. Global config (~/.gco/config.yaml)
// 4. Defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	globalConfigPath := globalConfigFilePath()
	if data, err := os.ReadFile(globalConfigPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", globalConfigPath, err)
		}
	}

	projectConfigPath := projectConfigFilePath()
	if data, err := os.ReadFile(projectConfigPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", projectConfigPath, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile reads configuration from a specific YAML file path.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if data, err := os.ReadFile(path); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified YAML file path, creating
// parent directories if they don't exist.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

// GlobalPath returns the path Save should use for a user-wide config.
func GlobalPath() string {
	return globalConfigFilePath()
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GCO_TARGET_LANGUAGE"); v != "" {
		cfg.TargetLanguage = v
	}
	if v := os.Getenv("GCO_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("GCO_ENTRY_DEPTH"); v != "" {
		if i := parseInt(v); i > 0 {
			cfg.EntryDepth = i
		}
	}
	if v := os.Getenv("GCO_WORKERS"); v != "" {
		if i := parseInt(v); i > 0 {
			cfg.Workers = i
		}
	}
	if v := os.Getenv("GCO_VERBOSE"); v != "" {
		cfg.Verbose = v == "true" || v == "1" || v == "yes"
	}
}

// Validate checks that the configuration has valid required fields.
func (c *Config) Validate() error {
	if c.TargetLanguage != "c" {
		return fmt.Errorf("invalid target_language: %s (only 'c' is supported)", c.TargetLanguage)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.EntryDepth <= 0 {
		return fmt.Errorf("entry_depth must be positive")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	return nil
}

// parseInt attempts to parse a string as int.
func parseInt(s string) int {
	var i int
	if _, err := fmt.Sscanf(s, "%d", &i); err != nil {
		return 0
	}
	return i
}
