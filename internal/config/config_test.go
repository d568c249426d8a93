package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"volnasup.ru/shop/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, "dev", cfg.Env)
	require.False(t, cfg.SecureCookies)
	require.Equal(t, "local", cfg.Storage.Driver)
	require.Equal(t, 5*time.Minute, cfg.CacheTTL)
	require.NotNil(t, cfg.ShopLoc)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("CACHE_TTL_SECONDS", "60")

	cfg := config.Load()

	require.Equal(t, ":9000", cfg.Addr)
	require.True(t, cfg.SecureCookies)
	require.Equal(t, time.Minute, cfg.CacheTTL)
}

func TestLoad_BadTimezoneFallsBackToUTC(t *testing.T) {
	t.Setenv("SHOP_TZ", "Atlantis/Nowhere")

	cfg := config.Load()
	require.Equal(t, time.UTC, cfg.ShopLoc)
}

func TestLoad_BadIntFallsBackToDefault(t *testing.T) {
	t.Setenv("CACHE_TTL_SECONDS", "a lot")

	cfg := config.Load()
	require.Equal(t, 5*time.Minute, cfg.CacheTTL)
}
