// Package config loads the serving shell's configuration from the
// environment, with an optional .env file for local development.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the serving shell's configuration. The wasm client is
// served from the same origin and needs no configuration of its own.
type Config struct {
	// Addr the shell listens on, e.g. ":8000".
	Addr string
	// BackendURL is the leave backend the shell proxies /auth/ and
	// /leave/ to. Ignored in dev mode.
	BackendURL string
	// Dev mounts the local sqlite-backed backend instead of proxying.
	Dev bool
	// DBPath is the dev backend's sqlite file.
	DBPath string
	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads configuration, letting real environment variables win over
// the optional .env file. Missing values fall back to dev-friendly
// defaults.
func Load() Config {
	// A missing .env is fine; the environment alone is enough.
	_ = godotenv.Load()

	return Config{
		Addr:       getEnv("LEAVEBOARD_ADDR", ":8000"),
		BackendURL: getEnv("LEAVEBOARD_BACKEND_URL", "http://localhost:9000"),
		Dev:        strings.EqualFold(getEnv("LEAVEBOARD_DEV", "false"), "true"),
		DBPath:     getEnv("LEAVEBOARD_DB_PATH", "leaveboard.db"),
		LogLevel:   getEnv("LEAVEBOARD_LOG_LEVEL", "info"),
	}
}
