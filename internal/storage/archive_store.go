// Package storage manages the shared public directory of produced
// archives. The directory is append-only for sessions; the one-shot
// endpoint is the only consumer.
package storage

import (
	"os"
	"path/filepath"

	apperrors "github.com/packlist/packlist/internal/errors"
)

// ArchiveStore provides access to archives in the public directory.
type ArchiveStore struct {
	dir string
}

// NewArchiveStore creates an ArchiveStore over dir.
func NewArchiveStore(dir string) *ArchiveStore {
	return &ArchiveStore{dir: dir}
}

// Dir returns the public directory path.
func (s *ArchiveStore) Dir() string {
	return s.dir
}

// Exists checks whether a named archive is present.
func (s *ArchiveStore) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil
}

// Open opens a named archive for reading. A missing archive yields
// ErrArchiveNotFound.
func (s *ArchiveStore) Open(name string) (*os.File, os.FileInfo, error) {
	path := filepath.Join(s.dir, name)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, apperrors.ErrArchiveNotFound
		}
		return nil, nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	return f, info, nil
}

// Remove deletes a named archive.
func (s *ArchiveStore) Remove(name string) error {
	return os.Remove(filepath.Join(s.dir, name))
}
