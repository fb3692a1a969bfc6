package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	// Clean environment
	os.Unsetenv("CONDENSE_STORE_DATABASE_URL")
	os.Unsetenv("CONDENSE_STORE_CACHE_TTL")
	os.Unsetenv("CONDENSE_STORE_MAX_LIST_SIZE")

	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.DatabaseURL != "sqlite://condense.db" {
			t.Errorf("expected database_url sqlite://condense.db, got %s", cfg.DatabaseURL)
		}
		if !cfg.CacheEnabled {
			t.Error("expected cache enabled by default")
		}
		if cfg.CacheTTL != 5*time.Minute {
			t.Errorf("expected cache_ttl 5m, got %v", cfg.CacheTTL)
		}
		if cfg.MaxListSize != 10000 {
			t.Errorf("expected max_list_size 10000, got %d", cfg.MaxListSize)
		}
	})

	t.Run("environment override", func(t *testing.T) {
		os.Setenv("CONDENSE_STORE_DATABASE_URL", "postgres://condense@localhost/condense?sslmode=disable")
		os.Setenv("CONDENSE_STORE_CACHE_TTL", "30s")
		defer os.Unsetenv("CONDENSE_STORE_DATABASE_URL")
		defer os.Unsetenv("CONDENSE_STORE_CACHE_TTL")

		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.DatabaseURL != "postgres://condense@localhost/condense?sslmode=disable" {
			t.Errorf("environment override not applied, got %s", cfg.DatabaseURL)
		}
		if cfg.CacheTTL != 30*time.Second {
			t.Errorf("expected cache_ttl 30s, got %v", cfg.CacheTTL)
		}
	})

	t.Run("config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "condense.yaml")
		content := []byte("store:\n  database_url: sqlite://from-file.db\n  max_list_size: 50\n")
		if err := os.WriteFile(path, content, 0o600); err != nil {
			t.Fatalf("write config file: %v", err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.DatabaseURL != "sqlite://from-file.db" {
			t.Errorf("config file not applied, got %s", cfg.DatabaseURL)
		}
		if cfg.MaxListSize != 50 {
			t.Errorf("expected max_list_size 50, got %d", cfg.MaxListSize)
		}
	})

	t.Run("missing config file", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/condense.yaml"); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("invalid database scheme", func(t *testing.T) {
		os.Setenv("CONDENSE_STORE_DATABASE_URL", "mysql://root@localhost/db")
		defer os.Unsetenv("CONDENSE_STORE_DATABASE_URL")

		if _, err := LoadConfig(""); err == nil {
			t.Error("expected error for unsupported database scheme")
		}
	})

	t.Run("non-positive cache ttl", func(t *testing.T) {
		os.Setenv("CONDENSE_STORE_CACHE_TTL", "0s")
		defer os.Unsetenv("CONDENSE_STORE_CACHE_TTL")

		if _, err := LoadConfig(""); err == nil {
			t.Error("expected error for zero cache_ttl")
		}
	})

	t.Run("non-positive max list size", func(t *testing.T) {
		os.Setenv("CONDENSE_STORE_MAX_LIST_SIZE", "-1")
		defer os.Unsetenv("CONDENSE_STORE_MAX_LIST_SIZE")

		if _, err := LoadConfig(""); err == nil {
			t.Error("expected error for negative max_list_size")
		}
	})
}
