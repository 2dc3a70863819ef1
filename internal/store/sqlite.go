package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/varlet/varlet/internal/crypt"
	_ "modernc.org/sqlite"
)

// SQLite is the metastore backend. It implements Store over a single-file
// SQLite database. When a crypt.Box is supplied, values are sealed before
// hitting disk and opened transparently on read.
type SQLite struct {
	db  *sql.DB
	box *crypt.Box
}

// OpenSQLite opens or creates the metastore at path. The parent directory is
// created if needed. box may be nil to store values in plain text.
func OpenSQLite(path string, box *crypt.Box) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLite{db: db, box: box}, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS variables (
			key TEXT PRIMARY KEY,
			val TEXT NOT NULL,
			is_encrypted INTEGER NOT NULL DEFAULT 0
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Get returns the stored text for key, decrypting when the row is sealed.
func (s *SQLite) Get(key string) (string, error) {
	var val string
	var encrypted int

	err := s.db.QueryRow(`SELECT val, is_encrypted FROM variables WHERE key = ?`, key).
		Scan(&val, &encrypted)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading variable %q: %w", key, err)
	}

	if encrypted != 0 {
		if s.box == nil {
			return "", fmt.Errorf("variable %q is encrypted but no secret_key is configured", key)
		}
		plain, err := s.box.Open(val)
		if err != nil {
			return "", fmt.Errorf("variable %q: %w", key, err)
		}
		return plain, nil
	}

	return val, nil
}

// Set writes the text for key, replacing any existing value entirely.
func (s *SQLite) Set(key, value string) error {
	encrypted := 0
	if s.box != nil {
		sealed, err := s.box.Seal(value)
		if err != nil {
			return fmt.Errorf("encrypting variable %q: %w", key, err)
		}
		value = sealed
		encrypted = 1
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO variables (key, val, is_encrypted)
		VALUES (?, ?, ?)
	`, key, value, encrypted)
	if err != nil {
		return fmt.Errorf("writing variable %q: %w", key, err)
	}
	return nil
}

// Delete removes key, reporting whether a row existed.
func (s *SQLite) Delete(key string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM variables WHERE key = ?`, key)
	if err != nil {
		return false, fmt.Errorf("deleting variable %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns all keys in lexical order.
func (s *SQLite) List() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM variables ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing variables: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Count returns the number of stored variables.
func (s *SQLite) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM variables`).Scan(&count)
	return count, err
}
