// Package config loads tool configuration from a `.env` file and
// environment variables.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// DefaultIgnoredDirs are path segments excluded during discovery:
// dependency and build-artifact directories.
var DefaultIgnoredDirs = []string{
	"Pods", "Carthage", "DerivedData", "build", "node_modules",
}

type Config struct {
	// IgnoredDirs lists directory names whose subtrees are skipped
	// during discovery.
	IgnoredDirs []string
	// Workers bounds the per-file parse concurrency of a scan.
	Workers int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		IgnoredDirs: getEnvList("LOCSTRINGS_IGNORED_DIRS", DefaultIgnoredDirs),
		Workers:     getEnvInt("LOCSTRINGS_WORKERS", 8),
	}
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func getEnvInt(key string, fallback int) int {
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
