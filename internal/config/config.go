// Package config loads nuclidex settings from YAML with NUCLIDEX_* environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"nuclidex/internal/loader"
	"nuclidex/internal/source"
	"nuclidex/internal/storage"
)

// Config is the top-level settings document.
type Config struct {
	Source   source.Config  `yaml:"source"`
	Datasets loader.Keys    `yaml:"datasets"`
	Storage  storage.Config `yaml:"storage"`
	Engine   EngineConfig   `yaml:"engine"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// EngineConfig tunes how the catalog is interpreted.
type EngineConfig struct {
	// BlankHalfLife is "stable" (a row with blank decay mode and half-life is
	// stable) or "unknown".
	BlankHalfLife string `yaml:"blank_half_life"`
	// Locale is a BCP 47 tag used for abundance formatting.
	Locale string `yaml:"locale"`
}

// LoggingConfig selects the zap level.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Addr      string `yaml:"addr"`
	Namespace string `yaml:"namespace"`
}

// Blank half-life policies accepted by EngineConfig.BlankHalfLife.
const (
	BlankStable  = "stable"
	BlankUnknown = "unknown"
)

// Default returns the built-in configuration: embedded datasets, sqlite
// snapshots, English formatting.
func Default() *Config {
	return &Config{
		Source:   source.Config{Driver: source.DriverEmbedded, FSRoot: "./datasets"},
		Datasets: loader.DefaultKeys(),
		Storage:  storage.Config{Driver: storage.SQLite, SQLitePath: "nuclidex.db"},
		Engine:   EngineConfig{BlankHalfLife: BlankStable, Locale: "en"},
		Logging:  LoggingConfig{Level: "info"},
		Metrics:  MetricsConfig{Addr: ":9464", Namespace: "nuclidex"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
// Environment overrides are applied afterwards.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- operator supplied path
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ApplyEnv overlays NUCLIDEX_* environment variables.
//
//	NUCLIDEX_SOURCE_DRIVER: embedded|fs|s3|memory
//	NUCLIDEX_SOURCE_FS_ROOT
//	NUCLIDEX_SOURCE_S3_BUCKET, _REGION, _ENDPOINT, _PREFIX, _PATH_STYLE
//	NUCLIDEX_STORAGE_DRIVER: memory|sqlite|postgres
//	NUCLIDEX_SQLITE_PATH, NUCLIDEX_POSTGRES_DSN
//	NUCLIDEX_BLANK_HALF_LIFE, NUCLIDEX_LOCALE
//	NUCLIDEX_LOG_LEVEL, NUCLIDEX_METRICS_ADDR
func (c *Config) ApplyEnv() {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	if v := os.Getenv("NUCLIDEX_SOURCE_DRIVER"); v != "" {
		c.Source.Driver = source.Driver(v)
	}
	set(&c.Source.FSRoot, "NUCLIDEX_SOURCE_FS_ROOT")
	set(&c.Source.S3.Bucket, "NUCLIDEX_SOURCE_S3_BUCKET")
	set(&c.Source.S3.Region, "NUCLIDEX_SOURCE_S3_REGION")
	set(&c.Source.S3.Endpoint, "NUCLIDEX_SOURCE_S3_ENDPOINT")
	set(&c.Source.S3.Prefix, "NUCLIDEX_SOURCE_S3_PREFIX")
	if v := os.Getenv("NUCLIDEX_SOURCE_S3_PATH_STYLE"); v != "" {
		c.Source.S3.PathStyle = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("NUCLIDEX_STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = storage.Driver(v)
	}
	set(&c.Storage.SQLitePath, "NUCLIDEX_SQLITE_PATH")
	set(&c.Storage.PostgresDSN, "NUCLIDEX_POSTGRES_DSN")
	set(&c.Engine.BlankHalfLife, "NUCLIDEX_BLANK_HALF_LIFE")
	set(&c.Engine.Locale, "NUCLIDEX_LOCALE")
	set(&c.Logging.Level, "NUCLIDEX_LOG_LEVEL")
	set(&c.Metrics.Addr, "NUCLIDEX_METRICS_ADDR")
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.Source.Driver {
	case "", source.DriverEmbedded, source.DriverFilesystem, source.DriverMemory:
	case source.DriverS3:
		if c.Source.S3.Bucket == "" {
			return fmt.Errorf("source.s3.bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unknown source driver %q", c.Source.Driver)
	}
	switch c.Storage.Driver {
	case "", storage.Memory, storage.SQLite, storage.Postgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	switch c.Engine.BlankHalfLife {
	case "", BlankStable, BlankUnknown:
	default:
		return fmt.Errorf("engine.blank_half_life must be %q or %q", BlankStable, BlankUnknown)
	}
	if _, err := c.LocaleTag(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LocaleTag parses Engine.Locale; empty means English.
func (c *Config) LocaleTag() (language.Tag, error) {
	if c.Engine.Locale == "" {
		return language.English, nil
	}
	tag, err := language.Parse(c.Engine.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("engine.locale: %w", err)
	}
	return tag, nil
}

// LogLevel parses Logging.Level; empty means info.
func (c *Config) LogLevel() (zapcore.Level, error) {
	if c.Logging.Level == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("logging.level: %w", err)
	}
	return lvl, nil
}
