package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"STOREFRONT_API_URL", "CART_HTTP_TIMEOUT", "DATABASE_URL", "DB_HOST", "TOKEN_TTL"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_API_URL", "http://shop.test")
	t.Setenv("CART_HTTP_TIMEOUT", "5")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "shop")
	t.Setenv("DB_NAME", "store")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://shop.test", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Contains(t, cfg.DatabaseURL, "host=db user=shop")
	assert.Contains(t, cfg.DatabaseURL, "port=5432")
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("CART_HTTP_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)
}
