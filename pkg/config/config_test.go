package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "licoreria-api", cfg.App.Name)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, 5*time.Second, cfg.DB.StatementTimeout())
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "0.16", cfg.Pricing.SaleTaxRate.String())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("DB_STATEMENT_TIMEOUT_MS", "250")
	t.Setenv("PRICING_SALE_TAX_RATE", "16")
	t.Setenv("PRICING_PURCHASE_TAX_RATE", "0")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 250*time.Millisecond, cfg.DB.StatementTimeout())
	assert.Equal(t, "16", cfg.Pricing.SaleTaxRate.String())
	assert.True(t, cfg.Pricing.PurchaseTaxRate.IsZero())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_TasaInvalida(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("PRICING_SALE_TAX_RATE", "dieciseis")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ProductionExigeSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "licoreria", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/licoreria?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
