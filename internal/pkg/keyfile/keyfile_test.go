package keyfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret.key")

	if err := Generate(path); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	key, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(key) != KeySize {
		t.Fatalf("key length = %d, want %d", len(key), KeySize)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("key file permissions = %o, want 600", perm)
	}
}

func TestGenerateRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret.key")

	if err := Generate(path); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if err := Generate(path); err == nil {
		t.Fatal("second generate must refuse to overwrite")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.key")); err == nil {
		t.Fatal("loading an absent key file must fail")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.key")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("loading an empty key file must fail")
	}
}
