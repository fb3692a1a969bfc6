package store

import "time"

// Option configures a Store.
type Option func(*Store)

// WithCacheDisabled turns off the read-through cache; every Get reads and
// re-parses from the database.
func WithCacheDisabled() Option {
	return func(s *Store) { s.cacheEnabled = false }
}

// WithCacheTTL sets the expiry for cached configurations. Non-positive
// values are ignored.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithMaxListSize caps the number of rows List returns. Non-positive values
// are ignored.
func WithMaxListSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxListSize = n
		}
	}
}
