package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFallsBackToDefaults(t *testing.T) {
	viper.Reset()
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadReadsOverrides(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	raw := []byte(`{
		"screenWidth": 1280,
		"levels": {"unit": {"count": 40}},
		"logLevel": "debug"
	}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ceelaxy.cfg.json"), raw, 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.ScreenWidth)
	assert.Equal(t, 40, cfg.UnitCount)
	assert.Equal(t, "debug", cfg.LogLevel)
	// untouched keys keep their defaults
	assert.Equal(t, DefaultConfig().ScreenHeight, cfg.ScreenHeight)
	assert.Equal(t, DefaultConfig().UnitMaxColumns, cfg.UnitMaxColumns)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ceelaxy.cfg.json"), []byte("{not json"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}
