// Package config reads the process environment, with a .env file for local
// development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSecret signs sessions when SECRET_KEY is unset. Fine for local
// development, never for a deployment.
const DefaultSecret = "godo-dev-secret-change-in-production"

const (
	defaultPort       = "4000"
	defaultDBPath     = "data/godo.db"
	defaultSessionTTL = 24 * time.Hour
)

type Config struct {
	Addr          string
	DatabaseURL   string // SQLite file path, or a postgres:// URL
	SecretKey     string
	SessionTTL    time.Duration
	AdminPassword string
	SeedDemo      bool
	LogLevel      string
}

// Load reads the configuration, loading .env first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:          ":" + getenv("PORT", defaultPort),
		SecretKey:     getenv("SECRET_KEY", DefaultSecret),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		SeedDemo:      getenv("SEED_DEMO", "false") == "true",
	}

	// DATABASE_URL selects postgres; DATABASE_PATH picks the SQLite file.
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = getenv("DATABASE_PATH", defaultDBPath)
	}

	ttl, err := parseTTL(os.Getenv("SESSION_TTL"))
	if err != nil {
		return Config{}, fmt.Errorf("config: SESSION_TTL: %w", err)
	}
	cfg.SessionTTL = ttl

	return cfg, nil
}

// IsDefaultSecret reports whether the development fallback secret is in use.
func (c Config) IsDefaultSecret() bool { return c.SecretKey == DefaultSecret }

// Parses TTL such as "15m", "1h", "20s", "30" (minutes)
func parseTTL(ttlStr string) (time.Duration, error) {
	if ttlStr == "" {
		return defaultSessionTTL, nil
	}

	if strings.HasSuffix(ttlStr, "m") ||
		strings.HasSuffix(ttlStr, "h") ||
		strings.HasSuffix(ttlStr, "s") {
		return time.ParseDuration(ttlStr)
	}

	// fallback: minutes
	min, err := strconv.Atoi(ttlStr)
	if err != nil {
		return 0, err
	}
	return time.Duration(min) * time.Minute, nil
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
