package server

import (
	"os"
	"strconv"
	"time"
)

// Config holds the HTTP host configuration, read from the environment.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string
	// DataDir is where the JSON documents live.
	DataDir string
	// CoversDir is where uploaded cover images are stored.
	CoversDir string
	// SaveDebounce is how long to coalesce state writes after a mutation.
	SaveDebounce time.Duration
	// SweepSpec is the cron expression for the maintenance sweep.
	SweepSpec string
	// Seed overrides the loot RNG seed when non-zero, for reproducible runs.
	Seed int64
}

// LoadConfig builds the configuration from environment variables with
// sensible defaults for a local single-user deployment.
func LoadConfig() Config {
	return Config{
		Addr:         getEnv("SOLOQUEST_ADDR", ":8090"),
		DataDir:      getEnv("SOLOQUEST_DATA_DIR", "data"),
		CoversDir:    getEnv("SOLOQUEST_COVERS_DIR", "data/covers"),
		SaveDebounce: getDurationEnv("SOLOQUEST_SAVE_DEBOUNCE", 800*time.Millisecond),
		SweepSpec:    getEnv("SOLOQUEST_SWEEP_SPEC", "@hourly"),
		Seed:         getInt64Env("SOLOQUEST_SEED", 0),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getInt64Env(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
