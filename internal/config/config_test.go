package config_test

import (
	"testing"

	"tickr/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 5, cfg.MaxWorkspaces)
	assert.Equal(t, 24, cfg.JWTExpiryHours)
	assert.True(t, cfg.RunMigrations)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MAX_WORKSPACES_PER_USER", "3")
	t.Setenv("DB_RUN_MIGRATIONS", "false")
	t.Setenv("CLERK_WEBHOOK_SECRET", "whsec_dGVzdA==")

	cfg := config.Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 3, cfg.MaxWorkspaces)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, "whsec_dGVzdA==", cfg.WebhookSecret)
}
