// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds the server settings. It can be loaded from a JSON file and
// overlaid with environment variables; all fields are optional.
type Config struct {
	Port        int    `json:"port,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Demo        bool   `json:"demo,omitempty"`         // Serve seeded in-memory data instead of a database

	LogLevel       string `json:"log_level,omitempty"`
	Development    bool   `json:"development,omitempty"` // Human-readable console logs
	CORSOrigin     string `json:"cors_origin,omitempty"`
	WhatsAppNumber string `json:"whatsapp_number,omitempty"` // Digits only, country code first

	RedisAddr     string `json:"redis_addr,omitempty"` // Session revocation store; in-process when empty
	RedisPassword string `json:"redis_password,omitempty"`
	RedisDB       int    `json:"redis_db,omitempty"`

	AMQPURL string `json:"amqp_url,omitempty"` // Event broker; events are dropped when empty
}

// Defaults returns the settings used when nothing else is configured.
func Defaults() Config {
	return Config{
		Port:       8080,
		LogLevel:   "info",
		CORSOrigin: "*",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv overlays every environment variable that is set onto c.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT: %v", err)
		}
		c.Port = port
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("DEMO_MODE"); v != "" {
		demo, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DEMO_MODE: %v", err)
		}
		c.Demo = demo
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		c.CORSOrigin = v
	}
	if v := os.Getenv("WHATSAPP_NUMBER"); v != "" {
		c.WhatsAppNumber = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PWD"); v != "" {
		c.RedisPassword = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB: %v", err)
		}
		c.RedisDB = n
	}
	if v := os.Getenv("AMQP_URL"); v != "" {
		c.AMQPURL = v
	}
	return nil
}

// Validate checks that the configuration is usable for serving.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	if !c.Demo && c.DatabaseURL == "" {
		return fmt.Errorf("config error: 'database_url' is required unless demo mode is enabled")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("config error: 'redis_db' must be non-negative")
	}
	if c.WhatsAppNumber != "" && strings.Trim(c.WhatsAppNumber, "0123456789") != "" {
		return fmt.Errorf("config error: 'whatsapp_number' must contain digits only")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.CORSOrigin == "" {
		result.CORSOrigin = defaults.CORSOrigin
	}
	if result.WhatsAppNumber == "" {
		result.WhatsAppNumber = defaults.WhatsAppNumber
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
		result.RedisPassword = defaults.RedisPassword
		result.RedisDB = defaults.RedisDB
	}
	if result.AMQPURL == "" {
		result.AMQPURL = defaults.AMQPURL
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags and env always win for bools)

	return result
}
