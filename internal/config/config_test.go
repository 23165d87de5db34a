package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/go-auth-session/internal/config"
	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := config.Load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	require.Equal(t, "http://localhost:8000", c.GetBaseURL())
	require.Equal(t, "/api/login/", c.GetLoginPath())
	require.Equal(t, "/api/refresh/", c.GetRefreshPath())
	require.Equal(t, "/api/logout/", c.GetLogoutPath())
	require.Equal(t, "/", c.GetEntryPath())
	require.Equal(t, "access", c.GetAccessCookieName())
	require.Equal(t, time.Duration(0), c.GetRequestTimeout())
	require.Equal(t, config.StorageBolt, c.GetStorageBackend())
	require.Equal(t, "info", c.GetLogLevel())
}

func TestLoad_Overrides(t *testing.T) {
	c, err := config.Load(context.Background(), envconfig.MapLookuper(map[string]string{
		"BASE_URL":        "https://incidents.example.com/",
		"REQUEST_TIMEOUT": "5s",
		"STORAGE_BACKEND": "redis",
		"REDIS_NAMESPACE": "ops",
		"LOG_LEVEL":       "DEBUG",
	}))
	require.NoError(t, err)

	require.Equal(t, "https://incidents.example.com", c.GetBaseURL())
	require.Equal(t, 5*time.Second, c.GetRequestTimeout())
	require.Equal(t, config.StorageRedis, c.GetStorageBackend())
	require.Equal(t, "ops", c.GetRedisNamespace())
	require.Equal(t, "debug", c.GetLogLevel())
}

func TestLoad_UnknownBackend(t *testing.T) {
	_, err := config.Load(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORAGE_BACKEND": "sqlite",
	}))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported storage backend")
}
