// Package cache provides SQLite-backed caching of the bytecode view that
// feeds the miner. Re-scanning a jar set and rebuilding the subclass and
// method-return-type indices is the most expensive fixed cost in a
// construct run; the cache stores a JSON snapshot of the view's classes
// in .jcraft/cache.db keyed by a hash of the jar set so unchanged inputs
// skip straight to the miner.
package cache

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Cache manages the .jcraft/cache.db SQLite database.
type Cache struct {
	db     *sql.DB
	dbPath string
}

// Open opens or creates the cache database inside jcraftDir. It
// initializes the schema if the database is new.
func Open(jcraftDir string) (*Cache, error) {
	dbPath := filepath.Join(jcraftDir, "cache.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	cache := &Cache{db: db, dbPath: dbPath}

	if err := cache.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return cache, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Clear removes all cached view snapshots.
func (c *Cache) Clear() error {
	_, err := c.db.Exec("DELETE FROM miner_index")
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.dbPath
}

// DB returns the underlying database connection for advanced operations.
func (c *Cache) DB() *sql.DB {
	return c.db
}

// Stats reports cache statistics for "jcraft cache info".
type Stats struct {
	IndexCount int64
}

// GetStats returns statistics about the cache contents.
func (c *Cache) GetStats() (*Stats, error) {
	var stats Stats

	err := c.db.QueryRow("SELECT COUNT(*) FROM miner_index").Scan(&stats.IndexCount)
	if err != nil {
		return nil, fmt.Errorf("count miner_index: %w", err)
	}

	return &stats, nil
}
