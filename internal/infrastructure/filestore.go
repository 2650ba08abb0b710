package infrastructure

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// FileStore implements domain.FileStore on an afero filesystem
type FileStore struct {
	fs afero.Fs
}

// NewFileStore creates a file store; a nil fs uses the OS filesystem
func NewFileStore(fs afero.Fs) *FileStore {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileStore{fs: fs}
}

// DirExists reports whether path is an existing directory
func (s *FileStore) DirExists(path string) bool {
	ok, err := afero.DirExists(s.fs, path)
	return err == nil && ok
}

// FileExists reports whether anything exists at path
func (s *FileStore) FileExists(path string) bool {
	ok, err := afero.Exists(s.fs, path)
	return err == nil && ok
}

// MakeDir creates path without creating missing ancestors
func (s *FileStore) MakeDir(path string) error {
	if err := s.fs.Mkdir(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// WriteFile truncates path and writes data. The write is not atomic.
func (s *FileStore) WriteFile(path string, data []byte) error {
	file, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
