// Package config loads the application configuration from a YAML file with
// environment variable overrides. A missing file is not an error; the defaults
// describe a working CSV-backed setup in ./data.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Supported storage engines.
const (
	EngineCSV      = "csv"
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
)

// Environment variables that override the file values.
const (
	EnvDataDir     = "LIBRARIUM_DATA_DIR"
	EnvEngine      = "LIBRARIUM_ENGINE"
	EnvDSN         = "LIBRARIUM_DSN"
	EnvOverdueDays = "LIBRARIUM_OVERDUE_DAYS"
	EnvLogLevel    = "LIBRARIUM_LOG_LEVEL"
)

// Config holds all librarium configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Lending LendingConfig `yaml:"lending"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig selects and parameterizes the storage engine.
type StorageConfig struct {
	Engine  string `yaml:"engine"`   // csv, sqlite, postgres
	DataDir string `yaml:"data_dir"` // csv: directory of the table files
	DSN     string `yaml:"dsn"`      // sqlite: file path or :memory:; postgres: connection string
}

// LendingConfig holds the lending policy knobs.
type LendingConfig struct {
	OverdueDays int `yaml:"overdue_days"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the configuration used when no file and no
// environment overrides are present.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Engine:  EngineCSV,
			DataDir: "data",
			DSN:     "librarium.db",
		},
		Lending: LendingConfig{
			OverdueDays: 7,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration from path, falling back to defaults when the
// file does not exist, and applies environment overrides on top.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		c.Storage.DataDir = dir
	}

	if engine := os.Getenv(EnvEngine); engine != "" {
		c.Storage.Engine = engine
	}

	if dsn := os.Getenv(EnvDSN); dsn != "" {
		c.Storage.DSN = dsn
	}

	if days := os.Getenv(EnvOverdueDays); days != "" {
		if parsed, err := strconv.Atoi(days); err == nil {
			c.Lending.OverdueDays = parsed
		}
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
}

// Validate checks the configuration for values no engine or handler can work with.
func (c *Config) Validate() error {
	switch c.Storage.Engine {
	case EngineCSV, EngineSQLite, EnginePostgres:
	default:
		return fmt.Errorf("unsupported storage engine: %q", c.Storage.Engine)
	}

	if c.Storage.Engine == EngineCSV && c.Storage.DataDir == "" {
		return fmt.Errorf("storage.data_dir must not be empty for the csv engine")
	}

	if c.Storage.Engine != EngineCSV && c.Storage.DSN == "" {
		return fmt.Errorf("storage.dsn must not be empty for the %s engine", c.Storage.Engine)
	}

	if c.Lending.OverdueDays <= 0 {
		return fmt.Errorf("lending.overdue_days must be positive, got %d", c.Lending.OverdueDays)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	return nil
}

// SlogLevel translates the configured level name into a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unsupported log level: %q", c.Logging.Level)
	}

	return level, nil
}
