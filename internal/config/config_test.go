package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://shop.example.vn/api/")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.vn/api", c.APIBaseURL)
	assert.Equal(t, 30*time.Second, c.PollInterval)
	assert.Equal(t, time.Second, c.PollTick)
	assert.Equal(t, 30, c.Countdown())
	assert.Equal(t, 10*time.Second, c.APITimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://127.0.0.1:9000")
	t.Setenv("POLL_INTERVAL", "10s")
	t.Setenv("POLL_TICK", "500ms")
	t.Setenv("ADMIN_API_KEY", "secret")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 20, c.Countdown())
	assert.Equal(t, "secret", c.AdminAPIKey)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("API_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)
}

func TestSetupLogging(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)
	SetupLogging("debug", "json")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	SetupLogging("nonsense", "console")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
