// internal/core/store/store.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/condense-db/condense/internal/schema"
	"github.com/condense-db/condense/internal/types"
)

/*
 * Configuration store with read-through cache.
 *
 * Persists named configuration documents and hands the compiler fully
 * validated types.Configuration values. The validate-then-persist order is
 * the contract: Save runs schema.Parse before touching the database, so a
 * malformed document never reaches storage and Get never re-validates.
 *
 * Cache discipline: parsed configurations are cached per name under an
 * RWMutex. The compiler itself is pure and stateless; all concurrency
 * discipline for shared configuration state lives here.
 *
 * Timestamps are stored as RFC3339 text for SQLite/PostgreSQL portability.
 */

// StoredConfig is one persisted configuration row.
type StoredConfig struct {
	ID        types.ConfigID `db:"config_id"`
	Name      string         `db:"name"`
	Document  string         `db:"document"`
	CreatedAt string         `db:"created_at"`
	UpdatedAt string         `db:"updated_at"`
}

// cacheEntry pairs a parsed configuration with its insertion time for TTL
// expiry.
type cacheEntry struct {
	cfg      *types.Configuration
	cachedAt time.Time
}

// Store provides named configuration persistence with an in-memory cache.
type Store struct {
	db      *sqlx.DB
	queries *Queries

	cacheEnabled bool
	cacheTTL     time.Duration
	maxListSize  int

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

// New creates a store on an open database connection.
func New(db *sqlx.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	queries, err := LoadQueries(db)
	if err != nil {
		return nil, fmt.Errorf("failed to load queries: %w", err)
	}
	s := &Store{
		db:           db,
		queries:      queries,
		cacheEnabled: true,
		cacheTTL:     5 * time.Minute,
		maxListSize:  10000,
		cache:        make(map[string]cacheEntry),
	}
	for _, option := range options {
		option(s)
	}
	return s, nil
}

// Save validates raw and upserts it under name. The raw document is stored
// verbatim; the parsed form replaces any cached entry. Upserts keep the
// original config_id and created_at (ON CONFLICT updates document and
// updated_at only).
func (s *Store) Save(ctx context.Context, name string, raw []byte) (*StoredConfig, error) {
	if name == "" {
		return nil, fmt.Errorf("configuration name cannot be empty")
	}

	cfg, err := schema.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration %q: %w", name, err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	id := types.NewConfigID()

	if _, err := s.execContext(ctx, "upsert-config", string(id), name, string(raw), now, now); err != nil {
		return nil, fmt.Errorf("failed to save configuration %q: %w", name, err)
	}

	s.cachePut(name, cfg)

	return s.fetch(ctx, name)
}

// Get returns the validated configuration stored under name, served from
// cache when possible.
func (s *Store) Get(ctx context.Context, name string) (*types.Configuration, error) {
	if cfg, ok := s.cacheGet(name); ok {
		return cfg, nil
	}

	stored, err := s.fetch(ctx, name)
	if err != nil {
		return nil, err
	}

	cfg, err := schema.Parse([]byte(stored.Document))
	if err != nil {
		// Stored documents are validated on write; a parse failure here
		// means out-of-band modification.
		return nil, fmt.Errorf("stored configuration %q is corrupt: %w", name, err)
	}

	s.cachePut(name, cfg)

	return cfg, nil
}

// List returns stored configuration rows ordered by name, capped at the
// configured maximum.
func (s *Store) List(ctx context.Context) ([]StoredConfig, error) {
	var rows []StoredConfig
	if err := s.selectContext(ctx, "list-configs", &rows, s.maxListSize); err != nil {
		return nil, fmt.Errorf("failed to list configurations: %w", err)
	}
	return rows, nil
}

// Describe returns the stored row for name, including the verbatim document
// text, without touching the cache.
func (s *Store) Describe(ctx context.Context, name string) (*StoredConfig, error) {
	return s.fetch(ctx, name)
}

// Delete removes the named configuration and invalidates its cache entry.
// Returns types.ErrConfigNotFound when no row matched.
func (s *Store) Delete(ctx context.Context, name string) error {
	affected, err := s.execContext(ctx, "delete-config", name)
	if err != nil {
		return fmt.Errorf("failed to delete configuration %q: %w", name, err)
	}

	s.mu.Lock()
	delete(s.cache, name)
	s.mu.Unlock()

	if affected == 0 {
		return fmt.Errorf("%w: %s", types.ErrConfigNotFound, name)
	}
	return nil
}

// Invalidate drops the cached entry for name, forcing the next Get to read
// through to the database.
func (s *Store) Invalidate(name string) {
	s.mu.Lock()
	delete(s.cache, name)
	s.mu.Unlock()
}

func (s *Store) cacheGet(name string) (*types.Configuration, bool) {
	if !s.cacheEnabled {
		return nil, false
	}
	s.mu.RLock()
	entry, ok := s.cache[name]
	s.mu.RUnlock()
	if !ok || time.Since(entry.cachedAt) > s.cacheTTL {
		return nil, false
	}
	return entry.cfg, true
}

func (s *Store) cachePut(name string, cfg *types.Configuration) {
	if !s.cacheEnabled {
		return
	}
	s.mu.Lock()
	s.cache[name] = cacheEntry{cfg: cfg, cachedAt: time.Now()}
	s.mu.Unlock()
}

// fetch reads one row, mapping sql.ErrNoRows to types.ErrConfigNotFound.
func (s *Store) fetch(ctx context.Context, name string) (*StoredConfig, error) {
	var row StoredConfig
	if err := s.getContext(ctx, "get-config", &row, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", types.ErrConfigNotFound, name)
		}
		return nil, fmt.Errorf("failed to read configuration %q: %w", name, err)
	}
	return &row, nil
}

func (s *Store) execContext(ctx context.Context, name string, args ...any) (int64, error) {
	query, err := s.queries.Raw(name)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) getContext(ctx context.Context, name string, dest any, args ...any) error {
	query, err := s.queries.Raw(name)
	if err != nil {
		return err
	}
	return s.db.GetContext(ctx, dest, query, args...)
}

func (s *Store) selectContext(ctx context.Context, name string, dest any, args ...any) error {
	query, err := s.queries.Raw(name)
	if err != nil {
		return err
	}
	return s.db.SelectContext(ctx, dest, query, args...)
}
