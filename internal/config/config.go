// Package config loads and validates application configuration from environment variables.
// A .env file, when present, is loaded first; real environment variables win over it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/tourday/planner/internal/domain"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all configuration values for the API server and CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:3000"] (Next.js dev server).
	CORSOrigins []string

	// StoreDriver selects the key/value backend: memory, sqlite, or postgres.
	StoreDriver string

	// DatabaseURL is the Postgres connection string. Required for postgres.
	DatabaseURL string

	// SQLitePath is the database file used by the sqlite driver.
	SQLitePath string

	// StoreNamespace prefixes every storage key, letting several deployments
	// share one table.
	StoreNamespace string

	// MaxBodyBytes caps request body size.
	MaxBodyBytes int64

	// DefaultCurrency applies to plans stored without a currency.
	DefaultCurrency string
}

// Load reads ".env" (if any, or the file named by ENV_FILE) and then the
// environment, returning an error that lists every invalid or missing value.
func Load() (Config, error) {
	return LoadFrom(getEnv("ENV_FILE", ".env"))
}

// LoadFrom is Load with an explicit dotenv path. A missing file is ignored.
func LoadFrom(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		StoreDriver:     strings.ToLower(getEnv("STORE_DRIVER", DriverSQLite)),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SQLitePath:      getEnv("SQLITE_PATH", "data/planner.db"),
		StoreNamespace:  os.Getenv("STORE_NAMESPACE"),
		DefaultCurrency: strings.ToUpper(getEnv("DEFAULT_CURRENCY", domain.DefaultCurrency)),
	}

	var problems []string

	switch cfg.StoreDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		problems = append(problems, fmt.Sprintf("STORE_DRIVER %q is not one of memory, sqlite, postgres", cfg.StoreDriver))
	}

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		problems = append(problems, "MAX_BODY_BYTES must be a positive integer")
	}
	cfg.MaxBodyBytes = maxBody

	if _, ok := domain.LookupCurrency(cfg.DefaultCurrency); !ok {
		problems = append(problems, fmt.Sprintf("DEFAULT_CURRENCY %q is not supported", cfg.DefaultCurrency))
	}

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
