// Package store handles persistence of variables in a SQLite metastore.
package store

import "errors"

// ErrNotFound is returned by Get when the key is not present.
var ErrNotFound = errors.New("variable not found")

// Store is the contract every writable variable backend must satisfy.
// Values are the persisted textual form produced by the variable codec.
// Implementations serialize concurrent writers internally; callers issue
// each key's read-decide-write as an independent operation.
type Store interface {
	// Get returns the stored text for key, or ErrNotFound.
	Get(key string) (string, error)
	// Set writes the text for key, replacing any existing value entirely.
	Set(key, value string) error
	// Delete removes key, reporting whether it existed.
	Delete(key string) (bool, error)
	// List returns all keys in lexical order.
	List() ([]string, error)
}
