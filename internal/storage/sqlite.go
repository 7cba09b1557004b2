// Package storage provides the SQLite-backed correction store.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"database/sql"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements service.CorrectionStore using SQLite. An
// in-process cache fronts the corrections table; all access to it is
// mutex-serialized so concurrent classify calls never observe a partially
// written entry.
type SQLiteStorage struct {
	db         *sql.DB
	cache      map[string]cachedCorrection
	dbPath     string
	cacheMutex sync.RWMutex
}

// NewSQLiteStorage opens (creating if necessary) the store at dbPath.
// Use ":memory:" for an ephemeral store in tests.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
		cache:  make(map[string]cachedCorrection),
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
