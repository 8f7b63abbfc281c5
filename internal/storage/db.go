// ABOUTME: SQLite connection and lifecycle management for the record store.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required).
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore is the relational Backend.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// OpenSQLite opens or creates a SQLite database at the given path. The
// file is not read and the schema is not created until Init is called.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	// Foreign keys are a per-connection setting, so the pool is pinned to
	// a single connection and the pragma is also carried in the DSN.
	dsn := "file:" + dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		_ = db.Close()
		return nil, fmt.Errorf("set database permissions: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// Kind implements Backend.
func (s *SQLiteStore) Kind() Kind { return KindSQLite }

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.dbPath }

// Init configures the connection and creates the tables and indexes if
// they do not exist. A file that is not a database fails here.
func (s *SQLiteStore) Init(ctx context.Context) error {
	if err := s.configurePragmas(ctx); err != nil {
		return fmt.Errorf("configure pragmas: %w", err)
	}
	if err := s.initSchema(ctx); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) configurePragmas(ctx context.Context) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := s.db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}
