package config

import (
	"crypto/subtle"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// BypassConfig enables a fixed administrator credential for demo deployments
// that run without an identity backend. It is off unless explicitly enabled.
type BypassConfig struct {
	Enabled  bool
	Email    string
	Password string
}

// NewBypassConfig reads ADMIN_BYPASS_ENABLED (default: false),
// ADMIN_BYPASS_EMAIL and ADMIN_BYPASS_PASSWORD. When enabled, both
// credentials are required.
func NewBypassConfig() (*BypassConfig, error) {
	cfg := &BypassConfig{
		Email:    strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_BYPASS_EMAIL"))),
		Password: os.Getenv("ADMIN_BYPASS_PASSWORD"),
	}
	if v := os.Getenv("ADMIN_BYPASS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_BYPASS_ENABLED: %v", err)
		}
		cfg.Enabled = enabled
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *BypassConfig) normalize() error {
	if !c.Enabled {
		return nil
	}
	if c.Email == "" || c.Password == "" {
		return fmt.Errorf("ADMIN_BYPASS_EMAIL and ADMIN_BYPASS_PASSWORD are required when ADMIN_BYPASS_ENABLED is set")
	}
	return nil
}

// Matches reports whether the pair equals the configured credential.
// It is always false when the bypass is disabled.
func (c *BypassConfig) Matches(email, password string) bool {
	if c == nil || !c.Enabled {
		return false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(strings.TrimSpace(email))), []byte(c.Email))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password))
	return emailOK&passOK == 1
}
