// Package testutil provides shared test helpers for building export trees and sites.
package testutil

import (
	"path"
	"testing"

	"github.com/spf13/afero"

	"github.com/starford/notion2hugo/internal/storage"
)

// Hash values shaped like the suffixes a Notion export appends to names.
const (
	Hash1 = "0123456789abcdef0123456789abcdef"
	Hash2 = "fedcba9876543210fedcba9876543210"
)

// WriteTree creates files below root. Keys are slash separated paths relative
// to root; a key ending in "/" creates an empty directory.
func WriteTree(t *testing.T, fsys afero.Fs, root string, files map[string]string) {
	t.Helper()
	if err := fsys.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	for rel, data := range files {
		p := path.Join(root, rel)
		if rel[len(rel)-1] == '/' {
			if err := fsys.MkdirAll(p, 0o755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := fsys.MkdirAll(path.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := afero.WriteFile(fsys, p, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// Provider returns a storage provider rooted at root, creating root first.
func Provider(t *testing.T, fsys afero.Fs, root string) *storage.FS {
	t.Helper()
	if err := fsys.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	p, err := storage.NewFS(fsys, root)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// MemExport builds an in-memory export from files and returns providers for
// the export root and an empty site root.
func MemExport(t *testing.T, files map[string]string) (afero.Fs, *storage.FS, *storage.FS) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	WriteTree(t, fsys, "/export", files)
	return fsys, Provider(t, fsys, "/export"), Provider(t, fsys, "/site")
}

// ReadFile reads a file below the site root or fails the test.
func ReadFile(t *testing.T, p storage.Provider, rel string) string {
	t.Helper()
	data, err := p.Read(rel)
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}
