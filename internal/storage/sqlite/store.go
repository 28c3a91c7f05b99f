// Package sqlite persists room records in a single SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"setgame/internal/ports"
	"setgame/internal/storage/sqlite/migrations"
)

// Store is a SQLite-backed KeyValueStore.
type Store struct {
	sqlDB *sql.DB
}

var _ ports.KeyValueStore = (*Store)(nil)

// Open opens the database at path and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Get returns the record stored for key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s == nil || s.sqlDB == nil {
		return nil, false, fmt.Errorf("storage is not configured")
	}
	var record string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT record FROM rooms WHERE name = ?`, key).Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get room record %s: %w", key, err)
	}
	return []byte(record), true, nil
}

// Set upserts the record for key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO rooms (name, record, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`,
		key, string(value), time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put room record %s: %w", key, err)
	}
	return nil
}
