// Package config loads server and CLI settings from defaults, an optional
// YAML file and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all settings.
type Config struct {
	Port       int    `yaml:"port"`
	DBPath     string `yaml:"db_path"`
	StaticPath string `yaml:"static_path"`
	RecordsDir string `yaml:"records_dir"`

	Log  LogConfig  `yaml:"log"`
	Auth AuthConfig `yaml:"auth"`

	// Company is printed on generated invoices as the payee.
	Company string `yaml:"company"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text (tint) or json
}

// AuthConfig controls operator authentication.
type AuthConfig struct {
	Enabled       bool          `yaml:"enabled"`
	JWTSecret     string        `yaml:"jwt_secret"`
	TokenDuration time.Duration `yaml:"token_duration"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Port:       8080,
		DBPath:     "./data/at_commodities.db",
		StaticPath: "./static",
		RecordsDir: "records",
		Log:        LogConfig{Level: "info", Format: "text"},
		Auth:       AuthConfig{Enabled: true, TokenDuration: 24 * time.Hour},
		Company:    "A.T Commodities",
	}
}

// Load builds the configuration. The YAML file is read from ERP_CONFIG when set.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("ERP_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.StaticPath = getEnv("STATIC_PATH", cfg.StaticPath)
	cfg.RecordsDir = getEnv("RECORDS_DIR", cfg.RecordsDir)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: PORT %q is not a number", v)
		}
		cfg.Port = port
	}
	if v := os.Getenv("AUTH_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: AUTH_ENABLED %q is not a boolean", v)
		}
		cfg.Auth.Enabled = enabled
	}
	return nil
}

// Validate checks the settings are usable.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	if c.DBPath == "" {
		return errors.New("config: db_path required")
	}
	if c.Auth.Enabled && c.Auth.JWTSecret == "" {
		return errors.New("config: jwt_secret required when auth is enabled")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
