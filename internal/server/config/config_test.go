package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddr)
	assert.Equal(t, "127.0.0.1:6379", c.RedisAddr)
	assert.Equal(t, 24*time.Hour, c.SessionValidityDuration)
	assert.Equal(t, 5*time.Minute, c.MFACodeTTL)
	assert.Equal(t, 5, c.MFAMaxAttempts)
	assert.NotEmpty(t, c.DatabaseDSN)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.Equal(t, 24*time.Hour, cfg.SessionValidityDuration)
}

func TestParseEnv_Overlays(t *testing.T) {
	t.Setenv("ENDPOINT_ADDR", ":9999")
	t.Setenv("SESSION_VALIDITY", "1h")
	t.Setenv("MFA_MAX_ATTEMPTS", "3")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":9999", cfg.EndpointAddr)
	assert.Equal(t, time.Hour, cfg.SessionValidityDuration)
	assert.Equal(t, 3, cfg.MFAMaxAttempts)
	// Untouched values keep their defaults.
	assert.Equal(t, "127.0.0.1:6379", cfg.RedisAddr)
}
