package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blackbishop/chesscore/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[search]
depth_limit = 6
book_path = "openings.json"

[log]
level = "debug"
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Search.DepthLimit)
	assert.Equal(t, "openings.json", cfg.Search.BookPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched fields keep their defaults.
	assert.Equal(t, 500_000, cfg.Search.TranspositionCapacity)
	assert.Equal(t, 15, cfg.Search.BookPly)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
