// Package storage persists the session credentials between runs: the bearer
// token and the serialized user record. The two are written and cleared
// together, never independently.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/netdash/netdash/internal/model"
)

const (
	keyAuthToken = "auth_token"
	keyUser      = "user"
)

// Store is the local credential cache backed by a sqlite file.
type Store struct {
	db *sql.DB
}

// Open initializes the cache at path, creating the directory and schema as
// needed.
func Open(path string) (*Store, error) {
	if err := ensureDirectory(path); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache at %s: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to cache: %w", err)
	}

	db.Exec("PRAGMA journal_mode=WAL")

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS credentials (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores the token and user record in one transaction.
func (s *Store) Save(tokenString string, user model.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	upsert := "INSERT INTO credentials (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value"
	if _, err := tx.Exec(upsert, keyAuthToken, tokenString); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	if _, err := tx.Exec(upsert, keyUser, string(userJSON)); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	return tx.Commit()
}

// Load returns the cached token and user record. A missing record comes back
// as an empty token and nil user. An unreadable user record clears the whole
// cache, matching the cleared-together rule.
func (s *Store) Load() (string, *model.User, error) {
	tokenString, err := s.get(keyAuthToken)
	if err != nil {
		return "", nil, err
	}

	userJSON, err := s.get(keyUser)
	if err != nil {
		return "", nil, err
	}
	if userJSON == "" {
		return tokenString, nil, nil
	}

	var user model.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		if clearErr := s.Clear(); clearErr != nil {
			return "", nil, clearErr
		}
		return "", nil, nil
	}

	return tokenString, &user, nil
}

// Clear removes the token and user record together.
func (s *Store) Clear() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM credentials WHERE key IN (?, ?)", keyAuthToken, keyUser); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}

	return tx.Commit()
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM credentials WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func ensureDirectory(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}
	return nil
}
