// Package config resolves settings from flags, environment variables, and an
// optional .env file. Precedence: flag > env > default.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	defaultBaseURL = "http://127.0.0.1:8000"
	dataDirName    = "galcon"
)

type Config struct {
	BaseURL string

	// Seed credentials from the environment; remembered credentials
	// override them at startup.
	APName     string
	APPassword string

	// DataDir holds the credential store.
	DataDir string

	Debug bool
}

// Load reads the optional .env file and assembles the configuration.
// Flags layer on top of the returned values in main.
func Load() Config {
	// missing .env is the normal case
	_ = godotenv.Load()

	return Config{
		BaseURL:    getEnv("GALCON_BASE_URL", defaultBaseURL),
		APName:     os.Getenv("GALAXY_AP_NAME"),
		APPassword: os.Getenv("GALAXY_AP_PASSWORD"),
		DataDir:    getEnv("GALCON_DATA_DIR", defaultDataDir()),
		Debug:      os.Getenv("GALCON_DEBUG") == "1",
	}
}

// StorePath is the credential store location under the data directory.
func (c Config) StorePath() string {
	return filepath.Join(c.DataDir, "galcon.db")
}

// LogPath is the debug log location under the data directory.
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "galcon.log")
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, dataDirName)
	}
	return "." + dataDirName
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
