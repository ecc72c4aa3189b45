// ============================================================================
// xentpl - Template Compiler Front End
// ============================================================================
//
// Package:     templatecache
// Description: SQLite implementation of the template store
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package templatecache

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.RWMutex
}

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	Path string
}

// DefaultSQLiteConfig returns default configuration
func DefaultSQLiteConfig() SQLiteConfig {
	return SQLiteConfig{
		Path: "./data/templates.db",
	}
}

// NewSQLiteStore opens (and if needed creates) the template database
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		cfg = DefaultSQLiteConfig()
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, dbError(err, "failed to create directory", "templatecache.NewSQLiteStore")
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, dbError(err, "failed to open database", "templatecache.NewSQLiteStore")
	}

	store := &SQLiteStore{db: db, path: cfg.Path}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "failed to initialize schema", "templatecache.NewSQLiteStore")
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS compiled_templates (
		title TEXT NOT NULL,
		style_id TEXT NOT NULL DEFAULT '',
		source_hash TEXT NOT NULL,
		compiler_version TEXT NOT NULL,
		tree BLOB NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (title, style_id)
	);

	CREATE INDEX IF NOT EXISTS idx_compiled_templates_created ON compiled_templates(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Get retrieves the compiled template for title and style
func (s *SQLiteStore) Get(ctx context.Context, title, styleID string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT title, style_id, source_hash, compiler_version, tree, created_at
		FROM compiled_templates WHERE title = ? AND style_id = ?
	`, title, styleID)

	var entry Entry
	err := row.Scan(&entry.Title, &entry.StyleID, &entry.SourceHash, &entry.CompilerVersion, &entry.Tree, &entry.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError(err, "failed to get compiled template", "templatecache.Get")
	}

	return &entry, nil
}

// Put inserts or replaces the compiled template of entry.Title and
// entry.StyleID
func (s *SQLiteStore) Put(ctx context.Context, entry *Entry) error {
	if err := validateEntry(entry); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO compiled_templates (title, style_id, source_hash, compiler_version, tree, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (title, style_id) DO UPDATE SET
			source_hash = excluded.source_hash,
			compiler_version = excluded.compiler_version,
			tree = excluded.tree,
			created_at = excluded.created_at
	`, entry.Title, entry.StyleID, entry.SourceHash, entry.CompilerVersion, entry.Tree, entry.CreatedAt)
	if err != nil {
		return dbError(err, "failed to store compiled template", "templatecache.Put")
	}

	return nil
}

// Delete removes one compiled template; deleting a missing entry is not an
// error
func (s *SQLiteStore) Delete(ctx context.Context, title, styleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM compiled_templates WHERE title = ? AND style_id = ?`, title, styleID)
	if err != nil {
		return dbError(err, "failed to delete compiled template", "templatecache.Delete")
	}

	return nil
}

// Purge removes all compiled templates and returns how many were removed
func (s *SQLiteStore) Purge(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `DELETE FROM compiled_templates`)
	if err != nil {
		return 0, dbError(err, "failed to purge compiled templates", "templatecache.Purge")
	}

	rows, _ := result.RowsAffected()
	return rows, nil
}

// Stats returns store statistics
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{Location: s.path}
	var treeBytes sql.NullInt64

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT title), SUM(LENGTH(tree))
		FROM compiled_templates
	`).Scan(&stats.Entries, &stats.Titles, &treeBytes)
	if err != nil {
		return nil, dbError(err, "failed to read statistics", "templatecache.Stats")
	}
	if treeBytes.Valid {
		stats.TreeBytes = treeBytes.Int64
	}

	return stats, nil
}

// Path returns the database file
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
