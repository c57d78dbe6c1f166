package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "test.db")
	t.Setenv("SCHEDULER_TIMEZONE", "America/Chicago")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TWILIO_ACCOUNT_SID", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test.db", cfg.DatabaseURL)
	assert.Equal(t, ":9090", cfg.OpsAddr)
	assert.False(t, cfg.TwilioConfigured())
	assert.Equal(t, "America/Chicago", cfg.Location().String())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("SCHEDULER_TIMEZONE", "Mars/Olympus")
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("BASE_ADMIN_CHAT_ID", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCHEDULER_TIMEZONE")
	assert.Contains(t, err.Error(), "LOG_LEVEL")
	assert.Contains(t, err.Error(), "BASE_ADMIN_CHAT_ID")
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("CFG_TEST_INT", "42")
	t.Setenv("CFG_TEST_BAD_INT", "x")
	t.Setenv("CFG_TEST_BOOL", "true")

	assert.Equal(t, int64(42), getEnvAsInt("CFG_TEST_INT", 0))
	assert.Equal(t, int64(-1), getEnvAsInt("CFG_TEST_BAD_INT", -1))
	assert.True(t, getEnvAsBool("CFG_TEST_BOOL", false))
	assert.Equal(t, "fallback", getEnv("CFG_TEST_UNSET_KEY", "fallback"))
}

func TestNewLogger(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("debug").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("nonsense").GetLevel())
}

func TestGetConfigLoadsOnce(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	first := GetConfig()
	require.NotNil(t, first)
	assert.Equal(t, "warn", first.LogLevel)

	t.Setenv("LOG_LEVEL", "error")
	assert.Same(t, first, GetConfig())
	assert.Equal(t, "warn", GetConfig().LogLevel)
}
