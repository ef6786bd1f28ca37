package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "https://veterinariadelparque.com.ar", cfg.PublicSiteURL)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("PUBLIC_SERVER_URL", "https://api.example.com")

	cfg := Load()
	assert.Equal(t, "9999", cfg.HTTPPort)
	assert.Equal(t, "https://api.example.com", cfg.PublicServerURL)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	require.Error(t, cfg.Validate())

	cfg.PublicServerURL = "https://api.example.com"
	assert.NoError(t, cfg.Validate())

	// relative public origin needs the internal one
	cfg.PublicServerURL = "/api"
	require.Error(t, cfg.Validate())

	cfg.InternalServerURL = "http://backend.internal:8080"
	assert.NoError(t, cfg.Validate())
}
