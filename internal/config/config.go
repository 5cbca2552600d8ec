package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
)

const (
	defaultDBPath       = "./dev.db"
	defaultPort         = "8080"
	defaultEnv          = "dev"
	defaultLogLevel     = "info"
	defaultLogFormat    = "console"
	defaultFetchRetries = 3
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	DBPath    string
	Port      string
	Env       string
	LogLevel  string
	LogFormat string

	// AdminToken guards config editing. Empty leaves admin routes open in dev
	// and closed elsewhere.
	AdminToken string

	// ConfigTTL is how long a fetched pricing config stays fresh. Zero keeps
	// it until an explicit refresh.
	ConfigTTL    time.Duration
	FetchRetries uint64
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: production injects real environment variables.
	_ = loadDotEnv(".env")

	cfg := Config{
		DBPath:       getenv("DB_PATH", defaultDBPath),
		Port:         getenv("PORT", defaultPort),
		Env:          strings.ToLower(getenv("APP_ENV", defaultEnv)),
		LogLevel:     getenv("LOG_LEVEL", defaultLogLevel),
		LogFormat:    getenv("LOG_FORMAT", defaultLogFormat),
		AdminToken:   os.Getenv("ADMIN_TOKEN"),
		FetchRetries: defaultFetchRetries,
	}

	if raw := os.Getenv("CONFIG_TTL"); raw != "" {
		ttl, err := cast.ToDurationE(raw)
		if err != nil || ttl < 0 {
			log.Printf("warning: CONFIG_TTL %q is not a duration, configs never expire", raw)
		} else {
			cfg.ConfigTTL = ttl
		}
	}
	if raw := os.Getenv("CONFIG_FETCH_RETRIES"); raw != "" {
		n, err := cast.ToUint64E(raw)
		if err != nil {
			log.Printf("warning: CONFIG_FETCH_RETRIES %q is not a count, using %d", raw, defaultFetchRetries)
		} else {
			cfg.FetchRetries = n
		}
	}

	if cfg.AdminToken == "" && !cfg.IsDev() {
		log.Print("warning: ADMIN_TOKEN is not set, admin routes are disabled")
	}

	return cfg
}

// IsDev reports whether the process runs in a development environment.
func (c Config) IsDev() bool {
	switch c.Env {
	case "", "dev", "development", "local":
		return true
	}
	return false
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
