package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	DatabaseDSN string
	Env         string
	// DisallowNegativeStock turns the unguarded stock policy into a hard
	// commit-time check. The default mirrors the historical behavior:
	// billing may drive stock below zero.
	DisallowNegativeStock bool
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", "pharmabill.db")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.DisallowNegativeStock = ParseBool("DISALLOW_NEGATIVE_STOCK", false)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
