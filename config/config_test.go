package config

import (
	"testing"
	"time"

	cachecfg "github.com/clusterkv/go-cache-gateway/internal/cache/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.False(t, cfg.AuditEnabled())

	// All three operation timeouts default to 5s
	assert.True(t, cfg.Timeouts.Equal(cachecfg.NewBuilder().Build()))
}

func TestLoad_TimeoutOverrides(t *testing.T) {
	t.Setenv("READ_OPERATION_TIMEOUT", "250ms")
	t.Setenv("MUTATIVE_OPERATION_TIMEOUT", "2s")
	t.Setenv("LIFECYCLE_OPERATION_TIMEOUT", "1m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Timeouts.ReadOperationTimeout())
	assert.Equal(t, 2*time.Second, cfg.Timeouts.MutativeOperationTimeout())
	assert.Equal(t, time.Minute, cfg.Timeouts.LifecycleOperationTimeout())
}

func TestLoad_MalformedTimeoutFallsBackToDefault(t *testing.T) {
	t.Setenv("READ_OPERATION_TIMEOUT", "not-a-duration")
	t.Setenv("MUTATIVE_OPERATION_TIMEOUT", "-3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, cachecfg.DefaultOperationTimeout, cfg.Timeouts.ReadOperationTimeout())
	assert.Equal(t, cachecfg.DefaultOperationTimeout, cfg.Timeouts.MutativeOperationTimeout())
}

func TestLoad_RedisAndDatabaseSections(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cluster.internal:6380")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REDIS_DIAL_TIMEOUT", "10s")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "cluster.internal:6380", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 10*time.Second, cfg.Redis.DialTimeout)
	assert.True(t, cfg.AuditEnabled())
	assert.Equal(t, 5433, cfg.Database.Port)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("REDIS_DB", "many")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Redis.DB)
}
