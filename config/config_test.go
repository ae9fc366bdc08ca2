package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRejectsDefaultSecretInProduction(t *testing.T) {
	cfg := &Config{Env: "production", JWTSecret: DefaultJWTSecret}
	require.Error(t, cfg.Validate())

	cfg.JWTSecret = "a-real-secret"
	assert.NoError(t, cfg.Validate())

	// the fallback stays usable outside production
	dev := &Config{Env: "development", JWTSecret: DefaultJWTSecret}
	assert.NoError(t, dev.Validate())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db.internal",
		DBPort:     "5433",
		DBUser:     "app",
		DBPassword: "pw",
		DBName:     "contacts",
		DBSSLMode:  "require",
	}
	assert.Equal(t, "postgres://app:pw@db.internal:5433/contacts?sslmode=require", cfg.PostgresDSN())
}

func TestCORSOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " https://a.example.com , https://b.example.com,"}
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins())

	empty := &Config{}
	assert.Empty(t, empty.CORSOrigins())
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.False(t, cfg.IsProduction())
}
