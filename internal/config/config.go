package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the editor engine needs from the
// environment
type Config struct {
	APIBaseURL string        // root the cloud_slice_ms paths hang off
	Timeout    time.Duration // per-request
	AuthToken  string        // session token forwarded on every call
}

const (
	defaultBaseURL        = "http://localhost:3000/api/v1"
	defaultTimeoutSeconds = 30
)

// Load reads .env if present, then the environment, falling back to
// defaults. Missing .env is fine - deployment sets the vars directly.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIBaseURL: getenv("SLICE_API_BASE_URL", defaultBaseURL),
		Timeout:    time.Duration(getenvInt("SLICE_API_TIMEOUT_SECONDS", defaultTimeoutSeconds)) * time.Second,
		AuthToken:  os.Getenv("SLICE_AUTH_TOKEN"),
	}
}

// getenv reads a var with a fallback default
func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getenvInt reads an integer var, keeping the fallback on anything
// unparseable
func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
