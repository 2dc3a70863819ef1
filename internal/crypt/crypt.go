// Package crypt seals variable values at rest with NaCl secretbox.
package crypt

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/pbkdf2"
)

// keySalt is fixed so the same secret_key always derives the same sealing
// key; values sealed in one process must open in the next.
const keySalt = "varlet.variables.v1"

const (
	keyIterations = 4096
	nonceSize     = 24
)

// Box derives a sealing key from a configured secret and encrypts or
// decrypts individual value strings. A nil *Box means encryption is off.
type Box struct {
	key [32]byte
}

// New derives a Box from the configured secret key.
func New(secret string) *Box {
	var b Box
	copy(b.key[:], pbkdf2.Key([]byte(secret), []byte(keySalt), keyIterations, 32, sha256.New))
	return &b
}

// Seal encrypts plain text and returns a base64 string with the nonce
// prepended. Each call uses a fresh random nonce.
func (b *Box) Seal(plain string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], []byte(plain), &nonce, &b.key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a string produced by Seal.
func (b *Box) Open(enc string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", fmt.Errorf("decoding encrypted value: %w", err)
	}
	if len(raw) < nonceSize {
		return "", fmt.Errorf("encrypted value too short")
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])

	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &b.key)
	if !ok {
		return "", fmt.Errorf("decrypting value: wrong secret key or corrupted data")
	}
	return string(plain), nil
}
