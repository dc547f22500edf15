package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closeops/schemasync/pkg/errors"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvProductionKey, "api_prod_key")
	t.Setenv(EnvDevelopmentKey, "api_dev_key")

	BindEnvironment("")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "api_prod_key", cfg.ProductionAPIKey)
	assert.Equal(t, "api_dev_key", cfg.DevelopmentAPIKey)
	assert.Equal(t, 500*time.Millisecond, cfg.Delay)
	assert.Equal(t, "data", cfg.OutputDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestBindEnvironmentBindsAllKeys(t *testing.T) {
	t.Setenv(EnvProductionKey, "pk")
	t.Setenv(EnvDevelopmentKey, "dk")
	t.Setenv("CLOSE_BASE_URL", "http://localhost:8080/api/v1/")

	BindEnvironment("")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pk", cfg.ProductionAPIKey)
	assert.Equal(t, "dk", cfg.DevelopmentAPIKey)
	assert.Equal(t, "http://localhost:8080/api/v1/", cfg.BaseURL)
}

func TestValidateMissingCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"both missing", Config{}},
		{"prod missing", Config{DevelopmentAPIKey: "k"}},
		{"dev missing", Config{ProductionAPIKey: "k"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsAPIKeyError(err))
		})
	}

	ok := Config{ProductionAPIKey: "a", DevelopmentAPIKey: "b"}
	assert.NoError(t, ok.Validate())
}

func TestUpdateFromFlags(t *testing.T) {
	cfg := &Config{Output: "json"}
	cfg.UpdateFromFlags(true, false, true, "")
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "json", cfg.Output, "empty flag keeps existing output format")

	cfg.UpdateFromFlags(false, true, false, "table")
	assert.Equal(t, "table", cfg.Output)
}
