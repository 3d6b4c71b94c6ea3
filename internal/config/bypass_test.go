package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBypassConfig(t *testing.T) {
	tests := []struct {
		name        string
		enabled     string
		email       string
		password    string
		wantEnabled bool
		wantErr     bool
	}{
		{"disabled by default", "", "", "", false, false},
		{"explicitly disabled", "false", "admin@example.com", "pw", false, false},
		{"enabled with credentials", "true", " Admin@Example.com ", "pw", true, false},
		{"enabled without password", "true", "admin@example.com", "", false, true},
		{"enabled without email", "1", "", "pw", false, true},
		{"not a bool", "yes please", "", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ADMIN_BYPASS_ENABLED", tt.enabled)
			t.Setenv("ADMIN_BYPASS_EMAIL", tt.email)
			t.Setenv("ADMIN_BYPASS_PASSWORD", tt.password)

			cfg, err := NewBypassConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEnabled, cfg.Enabled)
		})
	}
}

func TestBypassConfig_Matches(t *testing.T) {
	cfg := &BypassConfig{Enabled: true, Email: "admin@example.com", Password: "s3cret"}

	assert.True(t, cfg.Matches("admin@example.com", "s3cret"))
	assert.True(t, cfg.Matches(" ADMIN@example.com", "s3cret"), "email is case-insensitive")
	assert.False(t, cfg.Matches("admin@example.com", "S3CRET"), "password is exact")
	assert.False(t, cfg.Matches("other@example.com", "s3cret"))

	cfg.Enabled = false
	assert.False(t, cfg.Matches("admin@example.com", "s3cret"))

	var nilCfg *BypassConfig
	assert.False(t, nilCfg.Matches("admin@example.com", "s3cret"))
}
