// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
//
// Every value is a JSON blob in a single kv table. SQLite gives the two
// properties the engine needs from its host: durable writes and atomic
// multi-key batches (one transaction per Apply).
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/splitpay/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
    k TEXT PRIMARY KEY,
    v BLOB NOT NULL
);
`

// Store implements storage.Store on a SQLite database.
type Store struct {
	db *sql.DB
}

// New creates a Store backed by the database at dbPath. It creates the
// parent directories and the schema automatically.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Has reports whether a value exists under key.
func (s *Store) Has(ctx context.Context, key storage.Key) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM kv WHERE k = ?", key.String()).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check key %s: %w", key, err)
	}
	return true, nil
}

// Get decodes the value under key into out, reporting whether it existed.
func (s *Store) Get(ctx context.Context, key storage.Key, out any) (bool, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, "SELECT v FROM kv WHERE k = ?", key.String()).Scan(&blob)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	if err := json.Unmarshal(blob, out); err != nil {
		return false, fmt.Errorf("failed to decode value at %s: %w", key, err)
	}
	return true, nil
}

// Set writes a single value under key.
func (s *Store) Set(ctx context.Context, key storage.Key, value any) error {
	return s.Apply(ctx, storage.Put{Key: key, Value: value})
}

// Apply writes all puts inside one transaction.
func (s *Store) Apply(ctx context.Context, puts ...storage.Put) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, put := range puts {
		blob, err := json.Marshal(put.Value)
		if err != nil {
			return fmt.Errorf("failed to encode value for %s: %w", put.Key, err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO kv (k, v) VALUES (?, ?) ON CONFLICT(k) DO UPDATE SET v = excluded.v",
			put.Key.String(), blob,
		)
		if err != nil {
			return fmt.Errorf("failed to write key %s: %w", put.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// AllocateGroupID increments the group counter in a transaction and
// returns the new id. The counter row is created lazily on first use.
func (s *Store) AllocateGroupID(ctx context.Context) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	counterKey := storage.CounterKey().String()

	var last int64
	var blob []byte
	err = tx.QueryRowContext(ctx, "SELECT v FROM kv WHERE k = ?", counterKey).Scan(&blob)
	switch {
	case err == sql.ErrNoRows:
		last = 0
	case err != nil:
		return 0, fmt.Errorf("failed to read group counter: %w", err)
	default:
		if err := json.Unmarshal(blob, &last); err != nil {
			return 0, fmt.Errorf("failed to decode group counter: %w", err)
		}
	}

	next := last + 1
	encoded, err := json.Marshal(next)
	if err != nil {
		return 0, fmt.Errorf("failed to encode group counter: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO kv (k, v) VALUES (?, ?) ON CONFLICT(k) DO UPDATE SET v = excluded.v",
		counterKey, encoded,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to write group counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit group counter: %w", err)
	}
	return next, nil
}
