package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sayanm085/shopnex-api/pkg/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "shopnex", cfg.App.Name)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "shopnex", cfg.DB.DBName)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, "shopnex", cfg.JWT.Issuer)
	assert.Equal(t, 300, cfg.Redis.TTL)
	assert.Equal(t, 1, cfg.Loyalty.PointValue)
	assert.Equal(t, 100, cfg.Loyalty.EarnThreshold)
	assert.Equal(t, "ShopNex", cfg.Store.Name)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("LOYALTY_EARN_THRESHOLD", "50")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 6432, cfg.DB.Port)
	assert.Equal(t, 9999, cfg.HTTP.Port)
	assert.Equal(t, 50, cfg.Loyalty.EarnThreshold)
}

func TestDSNEncodesCredentials(t *testing.T) {
	db := config.DBConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "app user",
		Password: "p@ss:word",
		DBName:   "shopnex",
		SSLMode:  "disable",
	}
	dsn := db.DSN()
	assert.Contains(t, dsn, "app%20user")
	assert.Contains(t, dsn, "p%40ss%3Aword")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestConnectionStringPrefersDatabaseURL(t *testing.T) {
	db := config.DBConfig{
		DatabaseURL: "postgres://u:p@host:5432/db",
		Host:        "ignored",
	}
	assert.Equal(t, "postgres://u:p@host:5432/db", db.ConnectionString())
}
