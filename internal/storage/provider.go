// Package storage defines the file-system abstraction the converter reads the
// export from and writes the Hugo tree to.
package storage

import "os"

// Provider is the interface for tree operations relative to a root directory.
type Provider interface {
	// Root returns the absolute root every relative path is resolved against.
	Root() string
	// ReadDir lists dir with directories first, then other entries, each group
	// sorted by name.
	ReadDir(dir string) ([]os.FileInfo, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path, creating parent directories.
	Write(path string, content []byte) error
	// Append adds content at the end of the file at path.
	Append(path string, content []byte) error
	// Mkdir creates the directory at path and its parents.
	Mkdir(path string) error
	// IsDir reports whether path is an existing directory.
	IsDir(path string) bool
	// Exists reports whether anything exists at path.
	Exists(path string) bool
	// RemoveAll deletes path and everything below it.
	RemoveAll(path string) error
	// List returns metadata for every file named name under dir.
	List(dir, name string) ([]FileMeta, error)
}
