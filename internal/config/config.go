// Package config assembles the CLI configuration: defaults, then an
// optional YAML file, then UZDB_* environment variables. Command-line flags
// are applied last by the CLI itself.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/logging"
)

// Config is the full runtime configuration.
type Config struct {
	DataDir   string `yaml:"data_dir"`
	Memory    bool   `yaml:"memory"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogFile   string `yaml:"log_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir:   "uzdb_data",
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// Load builds a Config from the defaults, the YAML file at path (skipped
// when path is empty) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	if v := os.Getenv("UZDB_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("UZDB_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("UZDB_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("UZDB_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if strings.EqualFold(os.Getenv("UZDB_MEMORY"), "true") {
		c.Memory = true
	}
}

// Validate checks the fields a session cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if !c.Memory && strings.TrimSpace(c.DataDir) == "" {
		errs = append(errs, errors.New("data_dir is required unless memory is set"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Logging converts the log fields into a logging.Config.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		OutputPath: c.LogFile,
	}
}
