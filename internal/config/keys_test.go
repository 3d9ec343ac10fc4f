package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/garmentlca/internal/config"
)

func TestGet_EveryKey(t *testing.T) {
	cfg := config.Defaults()
	want := map[string]string{
		"output.default_format":     "table",
		"output.water_precision":    "0",
		"output.carbon_precision":   "1",
		"logging.level":             "warn",
		"logging.format":            "console",
		"logging.file":              "",
		"model.catalog_path":        "",
		"model.horizon":             "200",
		"model.default_usage_count": "50",
		"model.max_usage_count":     "200",
	}

	require.Len(t, config.Keys(), len(want))
	for _, key := range config.Keys() {
		got, err := cfg.Get(key)
		require.NoError(t, err, key)
		assert.Equal(t, want[key], got, key)
	}
}

func TestSet(t *testing.T) {
	cfg := config.Defaults()

	require.NoError(t, cfg.Set("model.horizon", "120"))
	require.NoError(t, cfg.Set("output.default_format", "json"))
	require.NoError(t, cfg.Set("logging.file", "/tmp/garmentlca.log"))

	assert.Equal(t, 120, cfg.Model.Horizon)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.Equal(t, "/tmp/garmentlca.log", cfg.Logging.File)
}

func TestSet_Errors(t *testing.T) {
	cfg := config.Defaults()

	err := cfg.Set("model.horizon", "many")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be an integer")
	assert.Equal(t, 200, cfg.Model.Horizon)

	require.ErrorIs(t, cfg.Set("plugins.aws", "x"), config.ErrUnknownKey)

	_, err = cfg.Get("cost.cache")
	require.ErrorIs(t, err, config.ErrUnknownKey)
}
