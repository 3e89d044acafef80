// Package cache stores past translations in a local sqlite database so
// repeated requests do not spend quota on the paid API.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS translations (
	source_hash     TEXT PRIMARY KEY,
	source_lang     TEXT NOT NULL,
	target_lang     TEXT NOT NULL,
	source_text     TEXT NOT NULL,
	translated_text TEXT NOT NULL,
	created_at      TIMESTAMP NOT NULL,
	hit_count       INTEGER NOT NULL DEFAULT 0
);
`

// Cache is a sqlite-backed translation cache keyed by the hash of
// (source language, target language, text).
type Cache struct {
	db *sql.DB
}

// Open opens (and if needed creates) the cache database at path
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database
func (c *Cache) Close() error {
	return c.db.Close()
}

// Key returns the cache key for a translation request
func Key(text, sourceLang, targetLang string) string {
	h := sha256.Sum256([]byte(sourceLang + "|" + targetLang + "|" + text))
	return hex.EncodeToString(h[:])
}

// Get returns the cached translation for the request, if present.
// A hit bumps the row's hit counter.
func (c *Cache) Get(text, sourceLang, targetLang string) (string, bool) {
	key := Key(text, sourceLang, targetLang)

	var translated string
	err := c.db.QueryRow(
		`SELECT translated_text FROM translations WHERE source_hash = ?`, key,
	).Scan(&translated)
	if err != nil {
		return "", false
	}

	// Best effort; a failed bump never invalidates the hit
	c.db.Exec(`UPDATE translations SET hit_count = hit_count + 1 WHERE source_hash = ?`, key)

	return translated, true
}

// Put stores a translation, replacing any previous entry for the same
// request.
func (c *Cache) Put(text, sourceLang, targetLang, translated string) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO translations
			(source_hash, source_lang, target_lang, source_text, translated_text, created_at, hit_count)
		 VALUES (?, ?, ?, ?, ?, ?, 0)`,
		Key(text, sourceLang, targetLang), sourceLang, targetLang, text, translated, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to store translation in cache: %w", err)
	}
	return nil
}

// HitCount returns the number of cache hits recorded for a request,
// or zero when the entry is absent.
func (c *Cache) HitCount(text, sourceLang, targetLang string) int {
	var hits int
	err := c.db.QueryRow(
		`SELECT hit_count FROM translations WHERE source_hash = ?`,
		Key(text, sourceLang, targetLang),
	).Scan(&hits)
	if err != nil {
		return 0
	}
	return hits
}

// Size returns the number of cached translations
func (c *Cache) Size() (int, error) {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM translations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return n, nil
}
