package predictor

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// DBCache is a DuckDB-backed PersistentCache holding raw tool output
// across runs. Configured only under the persistent cache policy.
type DBCache struct {
	db *sql.DB
}

// OpenDBCache opens or creates the cache database at path.
func OpenDBCache(path string) (*DBCache, error) {
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create directory: %w", err)
		}
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS tool_results (
		key VARCHAR PRIMARY KEY,
		raw VARCHAR
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &DBCache{db: db}, nil
}

// Get returns the stored raw output for a cache key.
func (c *DBCache) Get(key string) (string, bool) {
	var raw string
	err := c.db.QueryRow("SELECT raw FROM tool_results WHERE key = ?", key).Scan(&raw)
	if err != nil {
		return "", false
	}
	return raw, true
}

// Put stores raw output under a cache key, replacing any prior entry.
func (c *DBCache) Put(key, raw string) error {
	_, err := c.db.Exec(
		"INSERT OR REPLACE INTO tool_results (key, raw) VALUES (?, ?)", key, raw)
	if err != nil {
		return fmt.Errorf("store tool result: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (c *DBCache) Close() error {
	return c.db.Close()
}
