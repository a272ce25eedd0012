// Package config exposes the process environment as a plain map with typed
// getters. main loads .env via godotenv before the server reads anything, so
// every key below can live in a local .env file or the real environment.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment keys the server reads. DATABASE_URL and the SEED_* file paths
// are consumed directly in main before the server exists.
const (
	KeyPort            = "PORT"
	KeyJWTSecret       = "JWT_SECRET"
	KeyTokenTTLHours   = "TOKEN_TTL_HOURS"
	KeyMediaRoot       = "MEDIA_ROOT"
	KeyPDFFontPath     = "PDF_FONT_PATH"
	KeyAcceptedOrigins = "ACCEPTED_ORIGINS"
	KeyReadTimeout     = "READ_TIMEOUT_SECONDS"
	KeyWriteTimeout    = "WRITE_TIMEOUT_SECONDS"
	KeyIdleTimeout     = "IDLE_TIMEOUT_SECONDS"
)

// New snapshots the current environment.
func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

// GetString returns the value for key, or defaultValue when unset.
func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok {
		return val
	}
	return defaultValue
}

// GetInt returns the value for key parsed as an int, or defaultValue when
// unset or unparsable.
func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return asInt
}
