/*
Package keyfile loads and generates the HMAC key material used to sign and
verify identity tokens.

The key file is the only durable artifact of the server. Its absence at
startup is a fatal misconfiguration; everything else lives in memory.
*/
package keyfile

import (
	"crypto/rand"
	"fmt"
	"os"
)

// KeySize is the size in bytes of a generated signing key.
const KeySize = 32

// Load reads the raw key bytes from path.
func Load(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read key file %q (generate one with the genkey command): %w", path, err)
	}

	if len(key) == 0 {
		return nil, fmt.Errorf("key file %q is empty", path)
	}

	return key, nil
}

// Generate writes a fresh random key to path, refusing to overwrite an
// existing file.
func Generate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("key file %q already exists, refusing to overwrite", path)
	}

	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("cannot generate key material: %w", err)
	}

	if err := os.WriteFile(path, key, 0o600); err != nil {
		return fmt.Errorf("cannot write key file %q: %w", path, err)
	}

	return nil
}
