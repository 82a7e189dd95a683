package smartfn

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteCache is a durable Cache backed by a SQLite database file. Use the
// ":memory:" path for an ephemeral store. Entries never expire; callers that
// need bounded storage should delete the file or wrap the cache.
type SQLiteCache struct {
	db *sql.DB
}

// NewSQLiteCache opens (creating if needed) the cache database at path.
func NewSQLiteCache(path string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("smartfn: open cache db: %w", err)
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS responses (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("smartfn: init cache db: %w", err)
	}
	return &SQLiteCache{db: db}, nil
}

// Contains reports whether key is present.
func (sc *SQLiteCache) Contains(key string) bool {
	_, ok := sc.Get(key)
	return ok
}

// Get retrieves a cached value. A query failure is treated as a miss.
func (sc *SQLiteCache) Get(key string) (string, bool) {
	var value string
	err := sc.db.QueryRow(`SELECT value FROM responses WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}

// Set stores a value under key, replacing any previous entry.
func (sc *SQLiteCache) Set(key, value string) {
	// Best effort: a failed write only costs a future cache miss.
	_, _ = sc.db.Exec(`INSERT OR REPLACE INTO responses (key, value) VALUES (?, ?)`, key, value)
}

// Len returns the number of stored entries.
func (sc *SQLiteCache) Len() (int, error) {
	var n int
	if err := sc.db.QueryRow(`SELECT COUNT(*) FROM responses`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Close releases the underlying database handle.
func (sc *SQLiteCache) Close() error {
	return sc.db.Close()
}
