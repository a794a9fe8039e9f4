package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every variable name, e.g. FARS_DATA_DIR.
const EnvPrefix = "FARS"

// MaxWorkers caps the number of years loaded in parallel.
const MaxWorkers = 32

// Config holds all settings, populated from environment variables.
type Config struct {
	DataDir   string `envconfig:"DATA_DIR" default:"."`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	// Workers is the number of yearly files loaded concurrently. 1 keeps the
	// loads sequential.
	Workers int `envconfig:"WORKERS" default:"1"`

	// CacheSize is how many parsed yearly tables are kept in memory.
	CacheSize int `envconfig:"CACHE_SIZE" default:"8"`

	// Map rendering.
	MapOutput string  `envconfig:"MAP_OUTPUT" default:"accidents_map.png"`
	MapWidth  float64 `envconfig:"MAP_WIDTH" default:"6"`  // inches
	MapHeight float64 `envconfig:"MAP_HEIGHT" default:"6"` // inches

	// MetricsFile receives a Prometheus textfile dump after each command.
	// Empty disables it.
	MetricsFile string `envconfig:"METRICS_FILE"`
}

// Load reads configuration from environment variables, applying defaults where
// unset. A .env file in the working directory is read first if present;
// variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges. Error messages name the offending variable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("FARS_DATA_DIR must not be empty")
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("FARS_LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	if c.Workers < 1 || c.Workers > MaxWorkers {
		return fmt.Errorf("FARS_WORKERS must be between 1 and %d, got %d", MaxWorkers, c.Workers)
	}
	if c.CacheSize < 1 {
		return fmt.Errorf("FARS_CACHE_SIZE must be at least 1, got %d", c.CacheSize)
	}
	if c.MapWidth <= 0 || c.MapHeight <= 0 {
		return errors.New("FARS_MAP_WIDTH and FARS_MAP_HEIGHT must be positive")
	}
	switch strings.ToLower(filepath.Ext(c.MapOutput)) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg":
	default:
		return fmt.Errorf("FARS_MAP_OUTPUT must end in .png, .svg, .pdf or .jpg, got %q", c.MapOutput)
	}
	return nil
}
