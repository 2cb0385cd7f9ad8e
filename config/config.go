// Package config provides configuration management for the rosterbot CLI and
// server. It supports loading configuration from a YAML file, environment
// variables, and command-line flags, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	rberrors "github.com/rosterbot/rosterbot/pkg/errors"
	"github.com/rosterbot/rosterbot/pkg/logging"
)

// LogFormat selects how log output is rendered.
type LogFormat string

const (
	// LogFormatAuto picks console output when stderr is a terminal,
	// JSON otherwise.
	LogFormatAuto LogFormat = "auto"
	// LogFormatJSON forces JSON log lines.
	LogFormatJSON LogFormat = "json"
	// LogFormatConsole forces human-readable console output.
	LogFormatConsole LogFormat = "console"
)

// Default configuration values.
const (
	DefaultListenAddress = ":8080"
	DefaultOutputPath    = "users.xlsx"
	DefaultConfigDir     = ".rosterbot"
	DefaultConfigFile    = "config.yaml"
)

// Config holds the rosterbot configuration settings.
type Config struct {
	// ListenAddress is the HTTP session host's bind address (host:port).
	ListenAddress string `yaml:"listen_address"`

	// LogLevel sets the minimum log level (debug, info, warn, error).
	LogLevel logging.Level `yaml:"log_level"`

	// LogFormat selects the log rendering (auto, json, console).
	LogFormat LogFormat `yaml:"log_format"`

	// OutputPath is where the extract command writes a spreadsheet result.
	OutputPath string `yaml:"output_path"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		ListenAddress: DefaultListenAddress,
		LogLevel:      logging.LevelInfo,
		LogFormat:     LogFormatAuto,
		OutputPath:    DefaultOutputPath,
	}
}

// ConfigDir returns the configuration directory path.
// Uses $ROSTER_CONFIG_DIR if set, otherwise ~/.rosterbot
func ConfigDir() (string, error) {
	if dir := os.Getenv("ROSTER_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, DefaultConfigDir), nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigFile), nil
}

// LoadConfig loads the configuration from file and environment variables.
// Configuration is loaded in this order (later sources override earlier):
// 1. Default values
// 2. Config file (~/.rosterbot/config.yaml or $ROSTER_CONFIG_DIR/config.yaml)
// 3. Environment variables (ROSTER_LISTEN_ADDRESS, ROSTER_LOG_LEVEL, ...)
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	configPath, err := ConfigPath()
	if err != nil {
		return nil, fmt.Errorf("getting config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if fileCfg.ListenAddress != "" {
		cfg.ListenAddress = fileCfg.ListenAddress
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.LogFormat != "" {
		cfg.LogFormat = fileCfg.LogFormat
	}
	if fileCfg.OutputPath != "" {
		cfg.OutputPath = fileCfg.OutputPath
	}

	return nil
}

// loadFromEnv overlays environment variables onto the configuration.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("ROSTER_LISTEN_ADDRESS"); v != "" {
		cfg.ListenAddress = v
	}
	if v := os.Getenv("ROSTER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = logging.Level(v)
	}
	if v := os.Getenv("ROSTER_LOG_FORMAT"); v != "" {
		cfg.LogFormat = LogFormat(v)
	}
	if v := os.Getenv("ROSTER_OUTPUT_PATH"); v != "" {
		cfg.OutputPath = v
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.ListenAddress == "" {
		return fmt.Errorf("listen_address is required: %w", rberrors.ErrValidation)
	}

	switch c.LogLevel {
	case logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError:
	default:
		return fmt.Errorf("invalid log_level %q (must be debug, info, warn, or error): %w", c.LogLevel, rberrors.ErrValidation)
	}

	switch c.LogFormat {
	case LogFormatAuto, LogFormatJSON, LogFormatConsole:
	default:
		return fmt.Errorf("invalid log_format %q (must be auto, json, or console): %w", c.LogFormat, rberrors.ErrValidation)
	}

	return nil
}

// ResolveJSONFormat maps the configured log format to a concrete choice.
// LogFormatAuto picks console output when stderr is a terminal.
func (c *Config) ResolveJSONFormat() bool {
	switch c.LogFormat {
	case LogFormatJSON:
		return true
	case LogFormatConsole:
		return false
	default:
		return !term.IsTerminal(int(os.Stderr.Fd()))
	}
}

// NewLogger builds a logger from the configuration.
func (c *Config) NewLogger(serviceName string) logging.Logger {
	return logging.NewLogger(&logging.Config{
		Level:       c.LogLevel,
		ServiceName: serviceName,
		JSONFormat:  c.ResolveJSONFormat(),
	})
}
