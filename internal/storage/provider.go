// Package storage defines the data-directory file-system abstraction.
package storage

// Provider is the interface for record file operations. All paths are
// relative to the data root.
type Provider interface {
	// List returns the sorted file names directly under dir that carry
	// extension ext (e.g. ".yaml"). Subdirectories are not descended into.
	List(dir, ext string) ([]string, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path, creating parent directories.
	Write(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
	// Move renames oldPath to newPath, creating destination directories.
	Move(oldPath, newPath string) error
	// Exists reports whether a regular file exists at path.
	Exists(path string) (bool, error)
}
