// Package config loads application configuration.
//
// Order: defaults -> YAML file -> environment overrides -> Validate.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultSecretKey is used when SECRET_KEY is not set.
const DefaultSecretKey = "dev-secret-key"

// Config holds the application configuration
type Config struct {
	SecretKey string      `yaml:"secret_key" validate:"required"`
	Store     StoreConfig `yaml:"store"`
	Log       LogConfig   `yaml:"log"`
}

type StoreConfig struct {
	// Backend is one of json, sqlite or memory.
	Backend string `yaml:"backend" validate:"oneof=json sqlite memory"`
	// Path is the backing file; ignored by the memory backend.
	Path string `yaml:"path" validate:"required_unless=Backend memory"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

var validate = validator.New()

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SecretKey: DefaultSecretKey,
		Store: StoreConfig{
			Backend: "json",
			Path:    "db.json",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// FromEnv returns the defaults with environment overrides applied.
func FromEnv() Config {
	cfg := Default()
	cfg.ApplyEnvOverrides()
	return cfg
}

// Load reads the YAML file at path on top of the defaults, applies
// environment overrides and validates the result. A missing file is not an
// error; an empty path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnvOverrides overrides fields from environment variables.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SECRET_KEY"); v != "" {
		c.SecretKey = v
	}
	if v := os.Getenv("STORE_BACKEND"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
