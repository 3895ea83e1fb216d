package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GALCON_BASE_URL", "")
	t.Setenv("GALAXY_AP_NAME", "")
	t.Setenv("GALAXY_AP_PASSWORD", "")
	t.Setenv("GALCON_DEBUG", "")

	cfg := Load()
	assert.Equal(t, "http://127.0.0.1:8000", cfg.BaseURL)
	assert.Empty(t, cfg.APName)
	assert.Empty(t, cfg.APPassword)
	assert.False(t, cfg.Debug)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GALCON_BASE_URL", "https://api.example.test")
	t.Setenv("GALAXY_AP_NAME", "profile-name")
	t.Setenv("GALAXY_AP_PASSWORD", "profile-secret")
	t.Setenv("GALCON_DATA_DIR", "/tmp/galcon-test")
	t.Setenv("GALCON_DEBUG", "1")

	cfg := Load()
	assert.Equal(t, "https://api.example.test", cfg.BaseURL)
	assert.Equal(t, "profile-name", cfg.APName)
	assert.Equal(t, "profile-secret", cfg.APPassword)
	assert.Equal(t, "/tmp/galcon-test", cfg.DataDir)
	assert.True(t, cfg.Debug)
}

func TestPathsLiveUnderDataDir(t *testing.T) {
	cfg := Config{DataDir: "/var/lib/galcon"}
	assert.Equal(t, filepath.Join("/var/lib/galcon", "galcon.db"), cfg.StorePath())
	assert.Equal(t, filepath.Join("/var/lib/galcon", "galcon.log"), cfg.LogPath())
}
