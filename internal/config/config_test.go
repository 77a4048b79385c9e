package config_test

import (
	"testing"
	"time"

	"storefront/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	config.SetDefaults(v)
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	v := newViper()
	v.Set("JWT_SECRET", "test_jwt_secret")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, 60*time.Second, cfg.ProductCacheTTL)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Empty(t, cfg.RedisAddr)
}

func TestFromViper_RequiresSecret(t *testing.T) {
	_, err := config.FromViper(newViper())
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestFromViper_RejectsUnknownDriver(t *testing.T) {
	v := newViper()
	v.Set("JWT_SECRET", "s")
	v.Set("DB_DRIVER", "oracle")

	_, err := config.FromViper(v)
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestFromViper_ParsesDurations(t *testing.T) {
	v := newViper()
	v.Set("JWT_SECRET", "s")
	v.Set("JWT_EXPIRATION", "2h")
	v.Set("PRODUCT_CACHE_TTL", "5m")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, 5*time.Minute, cfg.ProductCacheTTL)
}
