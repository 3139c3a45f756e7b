package cache

// schemaSQL defines the SQLite schema for the cache database.
// miner_index stores a JSON snapshot of a View's classes, keyed by a
// hash of the jar set (or source roots) that produced it, so a rerun
// against the same inputs can skip loading and indexing from scratch.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS miner_index (
    jarset_hash TEXT PRIMARY KEY,
    classes_json BLOB NOT NULL,
    indexed_at TEXT NOT NULL
);
`

// initSchema creates the database tables if they don't exist.
func (c *Cache) initSchema() error {
	_, err := c.db.Exec(schemaSQL)
	return err
}
