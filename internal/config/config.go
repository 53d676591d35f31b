package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultLogLevel = "info"

// Config aggregates runtime configuration of the shell around the store.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	// LogLevel controls shell log verbosity (debug, info, warn, error).
	LogLevel string
	// Overrides is an optional properties file merged into the store at startup.
	Overrides string
	// Quiet raises the log threshold so only errors are reported.
	Quiet bool
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	LogLevel  string `yaml:"log_level"`
	Overrides string `yaml:"overrides"`
	Quiet     *bool  `yaml:"quiet"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile string
	LogLevel   *string
	Overrides  *string
	Quiet      *bool
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Apply environment variables
	applyEnvConfig(&cfg)

	// Load from YAML file if specified (overrides environment)
	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(&cfg, yamlCfg)
	}

	// Apply CLI overrides (highest precedence)
	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	// Validate final configuration
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		LogLevel: defaultLogLevel,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) {
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	if yamlCfg.Overrides != "" {
		cfg.Overrides = yamlCfg.Overrides
	}

	if yamlCfg.Quiet != nil {
		cfg.Quiet = *yamlCfg.Quiet
	}
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) {
	if level := strings.TrimSpace(os.Getenv("PROPSTORE_LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	if path := strings.TrimSpace(os.Getenv("PROPSTORE_OVERRIDES")); path != "" {
		cfg.Overrides = path
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}

	if overrides.Overrides != nil && *overrides.Overrides != "" {
		cfg.Overrides = *overrides.Overrides
	}

	if overrides.Quiet != nil {
		cfg.Quiet = *overrides.Quiet
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("log level must be one of debug, info, warn, error; got %q", cfg.LogLevel)
	}
}
