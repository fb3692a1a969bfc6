package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func LoadConfig(configPath string) (*StoreConfig, error) {
	v := viper.New()

	// Set defaults matching DefaultStoreConfig
	v.SetDefault("store.database_url", "sqlite://condense.db")
	v.SetDefault("store.cache_enabled", true)
	v.SetDefault("store.cache_ttl", "5m")
	v.SetDefault("store.max_list_size", 10000)

	// Bind environment variables with CONDENSE_ prefix
	v.SetEnvPrefix("CONDENSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &StoreConfig{
		DatabaseURL:  v.GetString("store.database_url"),
		CacheEnabled: v.GetBool("store.cache_enabled"),
		CacheTTL:     v.GetDuration("store.cache_ttl"),
		MaxListSize:  v.GetInt("store.max_list_size"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig checks database URL presence and positive cache/list limits.
func validateConfig(cfg *StoreConfig) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database_url cannot be empty")
	}
	if !strings.HasPrefix(cfg.DatabaseURL, "sqlite://") && !strings.HasPrefix(cfg.DatabaseURL, "postgres://") {
		return fmt.Errorf("database_url must use sqlite:// or postgres:// scheme, got %q", cfg.DatabaseURL)
	}
	if cfg.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive, got %v", cfg.CacheTTL)
	}
	if cfg.MaxListSize <= 0 {
		return fmt.Errorf("max_list_size must be positive, got %d", cfg.MaxListSize)
	}
	return nil
}
