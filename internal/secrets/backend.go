// Package secrets provides read-only variable sources consulted before the
// metastore: process environment variables and local variable files in .env,
// JSON, or YAML format. Writes never go through this package.
package secrets

import (
	"errors"

	"github.com/varlet/varlet/internal/store"
)

// Backend is a single read-only variable source.
type Backend interface {
	// GetVariable returns the stored text for key and whether it was found.
	GetVariable(key string) (string, bool, error)
}

// Chain consults backends in order and returns the first hit.
type Chain struct {
	backends []Backend
}

// NewChain builds a lookup chain. Order is significant: earlier backends
// shadow later ones.
func NewChain(backends ...Backend) *Chain {
	return &Chain{backends: backends}
}

// GetVariable returns the first value found across the chain.
func (c *Chain) GetVariable(key string) (string, bool, error) {
	for _, b := range c.backends {
		val, ok, err := b.GetVariable(key)
		if err != nil {
			return "", false, err
		}
		if ok {
			return val, true, nil
		}
	}
	return "", false, nil
}

// storeBackend adapts a writable store into a read-only Backend so the
// metastore can terminate a lookup chain.
type storeBackend struct {
	st store.Store
}

// StoreBackend wraps st for use at the end of a Chain.
func StoreBackend(st store.Store) Backend {
	return &storeBackend{st: st}
}

func (b *storeBackend) GetVariable(key string) (string, bool, error) {
	val, err := b.st.Get(key)
	if errors.Is(err, store.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}
