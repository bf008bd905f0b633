package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads .env.local then .env from the working directory.
// Variables already set in the environment are never overwritten, and
// .env.local wins over .env. Returns the files that were loaded.
func LoadDotEnv() []string {
	return LoadDotEnvFrom(".env.local", ".env")
}

// LoadDotEnvFrom loads the given files in priority order, skipping missing ones
func LoadDotEnvFrom(candidates ...string) []string {
	var loaded []string
	for _, f := range candidates {
		if _, err := os.Stat(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}
