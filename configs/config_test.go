package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CACHE_DRIVER", "")
	t.Setenv("CACHE_LIST_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, CacheDriverRedis, cfg.Cache.Driver)
	require.Equal(t, "bookly", cfg.Cache.KeyPrefix)
	require.Equal(t, 5*time.Minute, cfg.Cache.ListTTL)
	require.Equal(t, 200*time.Millisecond, cfg.Cache.OpTimeout)
	require.Equal(t, 500, cfg.Cache.ScanCount)
	require.True(t, cfg.RateLimit.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CACHE_DRIVER", "Memory")
	t.Setenv("CACHE_LIST_TTL", "90s")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("DATABASE_URL", "postgres://u:p@db/bookly")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, CacheDriverMemory, cfg.Cache.Driver)
	require.Equal(t, 90*time.Second, cfg.Cache.ListTTL)
	require.False(t, cfg.RateLimit.Enabled)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	require.Equal(t, "postgres://u:p@db/bookly", cfg.Database.DSN)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("CACHE_DRIVER", "memcached")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_RejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("CACHE_DRIVER", "")
	t.Setenv("CACHE_LIST_TTL", "-1m")
	_, err := Load()
	require.Error(t, err)
}

func TestGetListEnv(t *testing.T) {
	t.Setenv("LIST_X", " , ")
	require.Equal(t, []string{"d"}, getListEnv("LIST_X", []string{"d"}))
}
