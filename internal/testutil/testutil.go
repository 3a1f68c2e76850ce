// Package testutil provides shared test helpers for setting up data
// directories and record stores.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/veleth/stagehand/internal/storage"
	"github.com/veleth/stagehand/internal/store"
)

// TestDataDir creates a temporary data directory with a storage.Provider.
func TestDataDir(t *testing.T) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	fs, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, fs
}

// TestStores creates a temporary data directory with one store per kind.
func TestStores(t *testing.T) (string, *store.Store, *store.Store, *store.Store) {
	t.Helper()
	dir, fs := TestDataDir(t)
	return dir, store.New(fs, store.Gear()), store.New(fs, store.Live()), store.New(fs, store.Media())
}

// WriteRecordFile writes raw record content directly into a kind directory,
// bypassing the store, for corrupt-file and pre-seeded fixtures.
func WriteRecordFile(t *testing.T, dataDir, kindDir, name, content string) {
	t.Helper()
	dir := filepath.Join(dataDir, kindDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
