// Package config loads the server configuration from defaults, an optional
// YAML file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// EnvPrefix prefixes the environment variables read by Load. Levels are
// separated by a double underscore: TRACKER_SERVER__ADDR sets server.addr.
const EnvPrefix = "TRACKER_"

// PathEnvVar is the environment variable overriding the config file path.
const PathEnvVar = "TRACKER_CONFIG"

// DefaultPaths lists the config files searched when no path is given.
var DefaultPaths = []string{"config.yaml", "config.yml"}

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config is the server configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Log        LogConfig        `koanf:"log"`
	Storage    StorageConfig    `koanf:"storage"`
	Pagination PaginationConfig `koanf:"pagination"`
	Projection ProjectionConfig `koanf:"projection"`
	Circuit    CircuitConfig    `koanf:"circuit"`
	CORS       CORSConfig       `koanf:"cors"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LogConfig configures zerolog.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json or console
}

// StorageConfig selects the storage backend.
type StorageConfig struct {
	Driver string `koanf:"driver"`
	DSN    string `koanf:"dsn"`
	// Dataset is an optional JSON file seeded at startup.
	Dataset string `koanf:"dataset"`
}

// PaginationConfig bounds the page parameters.
type PaginationConfig struct {
	DefaultSize int `koanf:"default_size"`
	MaxSize     int `koanf:"max_size"`
}

// ProjectionConfig bounds relation expansion.
type ProjectionConfig struct {
	MaxDepth int `koanf:"max_depth"`
}

// CircuitConfig configures the storage circuit breakers.
type CircuitConfig struct {
	Enabled       bool          `koanf:"enabled"`
	Timeout       time.Duration `koanf:"timeout"`
	MaxConcurrent int           `koanf:"max_concurrent"`
	ErrorPercent  int           `koanf:"error_percent"`
}

// CORSConfig configures cross origin requests.
type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Storage: StorageConfig{
			Driver: DriverMemory,
		},
		Pagination: PaginationConfig{
			DefaultSize: 30,
			MaxSize:     100,
		},
		Projection: ProjectionConfig{
			MaxDepth: 2,
		},
		Circuit: CircuitConfig{
			Enabled:       true,
			Timeout:       time.Second,
			MaxConcurrent: 100,
			ErrorPercent:  50,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load loads the configuration. The file at path is read if not empty,
// otherwise the file named by PathEnvVar or the first of DefaultPaths found,
// if any.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if path == "" {
		path = findFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	if err := splitList(k, "cors.allowed_origins"); err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findFile() string {
	if p := os.Getenv(PathEnvVar); p != "" {
		return p
	}
	for _, p := range DefaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envKey maps TRACKER_PAGINATION__MAX_SIZE to pagination.max_size.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".", -1)
}

// splitList converts a coma separated string set from the environment into a
// list.
func splitList(k *koanf.Koanf, path string) error {
	s, ok := k.Get(path).(string)
	if !ok {
		return nil
	}
	list := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			list = append(list, p)
		}
	}
	if err := k.Set(path, list); err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr: required"))
	}
	if c.Server.RequestTimeout < 0 {
		errs = append(errs, errors.New("server.request_timeout: must not be negative"))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		errs = append(errs, fmt.Errorf("log.format: must be json or console, got %q", c.Log.Format))
	}
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Storage.DSN == "" {
			errs = append(errs, errors.New("storage.dsn: required by the sqlite driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver: must be %s or %s, got %q", DriverMemory, DriverSQLite, c.Storage.Driver))
	}
	if c.Pagination.MaxSize < 1 {
		errs = append(errs, errors.New("pagination.max_size: must be greater than 0"))
	}
	if c.Pagination.DefaultSize < 1 || c.Pagination.DefaultSize > c.Pagination.MaxSize {
		errs = append(errs, errors.New("pagination.default_size: must be between 1 and pagination.max_size"))
	}
	if c.Projection.MaxDepth < 1 {
		errs = append(errs, errors.New("projection.max_depth: must be greater than 0"))
	}
	if c.Circuit.Timeout < 0 || c.Circuit.MaxConcurrent < 0 || c.Circuit.ErrorPercent < 0 || c.Circuit.ErrorPercent > 100 {
		errs = append(errs, errors.New("circuit: invalid settings"))
	}
	return errors.Join(errs...)
}
