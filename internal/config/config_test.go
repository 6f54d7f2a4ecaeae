package config

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
    t.Helper()
    t.Setenv("APP_ENV", "test")
    t.Setenv("APP_PORT", "8080")
    t.Setenv("DB_USER", "seathub")
    t.Setenv("DB_HOST", "localhost")
    t.Setenv("DB_PORT", "3306")
    t.Setenv("DB_NAME", "cinema")
    t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
    setRequiredEnv(t)

    cfg := Load()

    assert.Equal(t, "test", cfg.Env)
    assert.Equal(t, "8080", cfg.Port)
    assert.Equal(t, "cinema", cfg.DBName)
    assert.Empty(t, cfg.DBPass, "password is optional")
    assert.False(t, cfg.HoldSweepEnabled, "sweeper must default to lazy expiry")
    assert.Equal(t, 5*time.Minute, cfg.HoldSweepInterval)
}

func TestLoadSweeperSettings(t *testing.T) {
    setRequiredEnv(t)
    t.Setenv("HOLD_SWEEP_ENABLED", "true")
    t.Setenv("HOLD_SWEEP_INTERVAL", "90s")

    cfg := Load()

    assert.True(t, cfg.HoldSweepEnabled)
    assert.Equal(t, 90*time.Second, cfg.HoldSweepInterval)
}

func TestEnvHelpers(t *testing.T) {
    t.Setenv("SOME_BOOL", "yes")
    assert.True(t, envBool("SOME_BOOL", false))
    t.Setenv("SOME_BOOL", "off")
    assert.False(t, envBool("SOME_BOOL", true))
    assert.True(t, envBool("UNSET_BOOL", true))

    t.Setenv("SOME_DUR", "250ms")
    assert.Equal(t, 250*time.Millisecond, envDur("SOME_DUR", time.Second))
    assert.Equal(t, time.Second, envDur("UNSET_DUR", time.Second))
}
