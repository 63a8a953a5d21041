package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.False(t, cfg.Server.IsProduction())
	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, int64(1), cfg.EIP712.ChainID)
	assert.True(t, cfg.EIP712.EnforceChainID)
	assert.Equal(t, 24*time.Hour, cfg.EIP712.ReplayTTL)
	assert.Equal(t, 50, cfg.EIP712.AuditLimit)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("DB_NAME", "audit")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("EIP712_CHAIN_ID", "11155111")
	t.Setenv("EIP712_REPLAY_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Server.IsProduction())
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "audit", cfg.Database.DB().Name)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6380", cfg.Redis.Client().Addr())
	assert.Equal(t, int64(11155111), cfg.EIP712.ChainID)
	assert.Equal(t, time.Hour, cfg.EIP712.ReplayTTL)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("EIP712_REPLAY_TTL", "soon")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("non-positive audit limit", func(t *testing.T) {
		t.Setenv("EIP712_AUDIT_LIMIT", "0")
		_, err := Load()
		assert.ErrorContains(t, err, "EIP712_AUDIT_LIMIT")
	})
}
