package config

import (
	"testing"
	"time"
)

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/sanquote.db")
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("CONFIG_TTL", "90s")
	t.Setenv("CONFIG_FETCH_RETRIES", "5")

	cfg := Load()

	if cfg.DBPath != "/tmp/sanquote.db" || cfg.Port != "9090" {
		t.Fatalf("unexpected paths: %+v", cfg)
	}
	if cfg.IsDev() {
		t.Fatalf("production should not be dev")
	}
	if cfg.ConfigTTL != 90*time.Second {
		t.Fatalf("ConfigTTL = %v, want 90s", cfg.ConfigTTL)
	}
	if cfg.FetchRetries != 5 {
		t.Fatalf("FetchRetries = %d, want 5", cfg.FetchRetries)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_PATH", "")
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("CONFIG_TTL", "soon")
	t.Setenv("CONFIG_FETCH_RETRIES", "")

	cfg := Load()

	if cfg.DBPath != defaultDBPath || cfg.Port != defaultPort {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.IsDev() {
		t.Fatalf("default environment should be dev")
	}
	if cfg.ConfigTTL != 0 {
		t.Fatalf("bad TTL should be ignored, got %v", cfg.ConfigTTL)
	}
	if cfg.FetchRetries != defaultFetchRetries {
		t.Fatalf("FetchRetries = %d", cfg.FetchRetries)
	}
}
