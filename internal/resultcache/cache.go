// Package resultcache stores materialized query results in a local SQLite
// database, keyed by a hash of the SQL text. Re-rendering a report from
// cached results skips both the dry run and the billable execution.
package resultcache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Cache is a local store of query results.
type Cache struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at path and applies pending
// schema migrations.
func Open(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	c := &Cache{db: db}
	if err := c.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Entry is one cached query result.
type Entry struct {
	Key            string
	SQL            string
	Columns        []string
	Rows           [][]interface{}
	BytesProcessed int64
	RunID          string
	CreatedAt      time.Time
}

// Key derives the cache key for a query: the hex SHA-256 of the SQL text.
func Key(sqlText string) string {
	sum := sha256.Sum256([]byte(sqlText))
	return hex.EncodeToString(sum[:])
}

// Get looks up a cached result. The bool reports whether the key was
// present. Note the JSON round trip widens integer row values to float64.
func (c *Cache) Get(key string) (*Entry, bool, error) {
	row := c.db.QueryRow(`
		SELECT query_key, sql_text, columns, rows, bytes_processed, run_id, created_at
		FROM query_results
		WHERE query_key = ?
	`, key)

	var e Entry
	var columnsJSON, rowsJSON []byte
	err := row.Scan(&e.Key, &e.SQL, &columnsJSON, &rowsJSON, &e.BytesProcessed, &e.RunID, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	if err := json.Unmarshal(columnsJSON, &e.Columns); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached columns: %w", err)
	}
	if err := json.Unmarshal(rowsJSON, &e.Rows); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached rows: %w", err)
	}
	return &e, true, nil
}

// Put stores a result, replacing any previous entry for the same key. A
// missing Key is derived from SQL; a missing RunID gets a fresh UUID.
func (c *Cache) Put(e *Entry) error {
	if e.Key == "" {
		e.Key = Key(e.SQL)
	}
	if e.RunID == "" {
		e.RunID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	columnsJSON, err := json.Marshal(e.Columns)
	if err != nil {
		return fmt.Errorf("failed to encode columns: %w", err)
	}
	rowsJSON, err := json.Marshal(e.Rows)
	if err != nil {
		return fmt.Errorf("failed to encode rows: %w", err)
	}

	_, err = c.db.Exec(`
		INSERT INTO query_results (query_key, sql_text, columns, rows, bytes_processed, run_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(query_key) DO UPDATE SET
			sql_text = excluded.sql_text,
			columns = excluded.columns,
			rows = excluded.rows,
			bytes_processed = excluded.bytes_processed,
			run_id = excluded.run_id,
			created_at = excluded.created_at
	`, e.Key, e.SQL, columnsJSON, rowsJSON, e.BytesProcessed, e.RunID, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Purge removes every cached result.
func (c *Cache) Purge() error {
	if _, err := c.db.Exec(`DELETE FROM query_results`); err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}
