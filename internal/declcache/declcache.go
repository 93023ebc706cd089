// Package declcache persists emitted declaration text in a sqlite
// database keyed by source content, so re-emitting an unchanged file
// reuses the stored text instead of rechecking it.
package declcache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Cache is a declaration store backed by a single sqlite file. It is
// safe for use from one process; the schema is created on open.
type Cache struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS declarations (
	source_hash TEXT PRIMARY KEY,
	file_path   TEXT NOT NULL,
	session_id  TEXT NOT NULL,
	decl_text   TEXT NOT NULL,
	created_at  INTEGER NOT NULL
);`

// Open opens or creates the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening declaration cache %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing declaration cache %s: %w", path, err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error { return c.db.Close() }

// Key derives the cache key for a source text. Two files with the
// same content share an entry.
func Key(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Get returns the stored declaration text for a source key.
func (c *Cache) Get(key string) (string, bool, error) {
	var text string
	err := c.db.QueryRow(`SELECT decl_text FROM declarations WHERE source_hash = ?`, key).Scan(&text)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading declaration cache: %w", err)
	}
	return text, true, nil
}

// Put stores declaration text under a source key, replacing any
// previous entry for the same content.
func (c *Cache) Put(key, filePath, sessionID, text string) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO declarations (source_hash, file_path, session_id, decl_text, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		key, filePath, sessionID, text, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("writing declaration cache: %w", err)
	}
	return nil
}
