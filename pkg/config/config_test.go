package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("BACKEND_URL", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "http://localhost:5000", cfg.Backend.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "10", cfg.DefaultHoldingsCount)
	assert.Empty(t, cfg.RefreshSchedule)
}

func TestLoadWithCustomValues(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("BACKEND_URL", "http://etf-api:5000/")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("HTTP_RATE_LIMIT", "2.5")
	t.Setenv("DEFAULT_HOLDINGS_COUNT", "all")
	t.Setenv("REFRESH_SCHEDULE", "0 0 18 * * 1-5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "http://etf-api:5000", cfg.Backend.BaseURL, "trailing slash is trimmed")
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 2.5, cfg.Backend.RateLimit)
	assert.Equal(t, "all", cfg.DefaultHoldingsCount)
	assert.Equal(t, "0 0 18 * * 1-5", cfg.RefreshSchedule)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidateInvalidEnv(t *testing.T) {
	t.Setenv("ENV", "invalid")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRelativeBackendURL(t *testing.T) {
	t.Setenv("BACKEND_URL", "etf-api:5000")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateHoldingsCount(t *testing.T) {
	t.Setenv("DEFAULT_HOLDINGS_COUNT", "7")

	_, err := Load()
	assert.Error(t, err)
}

func TestIsHoldingsCount(t *testing.T) {
	for _, v := range []string{"5", "10", "20", "50", "all"} {
		assert.True(t, IsHoldingsCount(v), v)
	}
	for _, v := range []string{"", "0", "7", "ALL", "-5"} {
		assert.False(t, IsHoldingsCount(v), v)
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "2h")
	assert.Equal(t, 2*time.Hour, getEnvAsDuration("TEST_DURATION", "1h"))

	t.Setenv("TEST_DURATION", "garbage")
	assert.Equal(t, time.Hour, getEnvAsDuration("TEST_DURATION", "1h"))
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_INT", "100")
	assert.Equal(t, 100, getEnvAsInt("TEST_INT", 50))

	t.Setenv("TEST_INT", "abc")
	assert.Equal(t, 50, getEnvAsInt("TEST_INT", 50))
}

func TestGetEnvAsFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "0.5")
	assert.Equal(t, 0.5, getEnvAsFloat("TEST_FLOAT", 1))
}
