// Package config provides shared configuration utilities.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment keys.
const (
	EnvSSHHost        = "SSH_HOST"
	EnvSSHPort        = "SSH_PORT"
	EnvSSHHostKey     = "SSH_HOST_KEY"
	EnvWebHost        = "WEB_HOST"
	EnvWebPort        = "WEB_PORT"
	EnvSSHDisplayHost = "SSH_DISPLAY_HOST"
	EnvLogLevel       = "LOG_LEVEL"
	EnvLevel          = "SHADESTEP_LEVEL"
	EnvTuning         = "SHADESTEP_TUNING"
	EnvBell           = "SHADESTEP_BELL"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvBool parses the variable named by key as a bool, returning fallback
// when it is unset or malformed.
func GetEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding ones already set. Missing files are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return nil
}
