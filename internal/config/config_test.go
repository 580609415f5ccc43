package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kberg/flashdeck/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                  ":8080",
		DBPath:                "test.db",
		LogLevel:              "INFO",
		JWTSecret:             "secret",
		ImportWorkerCount:     2,
		ImportQueueSize:       32,
		GenerationWorkerCount: 2,
		GenerationQueueSize:   16,
		SessionTTLMinutes:     120,
		SweepIntervalMinutes:  10,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_MissingJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_BadWorkerCount(t *testing.T) {
	cfg := validConfig()
	cfg.ImportWorkerCount = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IMPORT_WORKER_COUNT")
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("ADDR")
	os.Unsetenv("SESSION_TTL_MINUTES")

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 120, cfg.SessionTTLMinutes)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("SESSION_TTL_MINUTES", "30")

	cfg := config.Load()

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 30, cfg.SessionTTLMinutes)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("SESSION_TTL_MINUTES", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, 120, cfg.SessionTTLMinutes)
}
