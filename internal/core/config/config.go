// Package config provides configuration management for the condense CLI and
// configuration store.
package config

import "time"

// StoreConfig holds settings for the configuration store and CLI.
type StoreConfig struct {
	DatabaseURL  string
	CacheEnabled bool
	CacheTTL     time.Duration
	MaxListSize  int
}

// DefaultStoreConfig returns configuration with default values.
func DefaultStoreConfig() *StoreConfig {
	return &StoreConfig{
		DatabaseURL:  "sqlite://condense.db",
		CacheEnabled: true,
		CacheTTL:     5 * time.Minute,
		MaxListSize:  10000,
	}
}
