package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	internalErrors "github.com/gcbaptista/go-document-reader/internal/errors"
	"github.com/gcbaptista/go-document-reader/services"
)

var _ services.BinaryStore = (*BinaryStore)(nil)

// BinaryStore keeps uploaded files on disk under their stored name.
type BinaryStore struct {
	dir string
}

// NewBinaryStore returns a store rooted at dir. The directory is created on first save.
func NewBinaryStore(dir string) *BinaryStore {
	return &BinaryStore{dir: dir}
}

// Path returns where filename is stored.
func (s *BinaryStore) Path(filename string) string {
	return filepath.Join(s.dir, filepath.Base(filename))
}

func documentIDOf(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Save copies r to filename and returns the number of bytes written.
func (s *BinaryStore) Save(filename string, r io.Reader) (n int64, err error) {
	if err := validateID(documentIDOf(filename)); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return 0, fmt.Errorf("failed to create directory %s: %w", s.dir, err)
	}

	tmp, err := os.CreateTemp(s.dir, filepath.Base(filename)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary file for %s: %w", filename, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	n, err = io.Copy(tmp, r)
	if err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", filename, err)
	}
	if err = tmp.Close(); err != nil {
		return 0, fmt.Errorf("failed to close %s: %w", filename, err)
	}
	if err = os.Rename(tmp.Name(), s.Path(filename)); err != nil {
		return 0, fmt.Errorf("failed to move %s into place: %w", filename, err)
	}
	return n, nil
}

// Open opens a stored file for reading.
func (s *BinaryStore) Open(filename string) (io.ReadCloser, error) {
	f, err := os.Open(s.Path(filename)) // #nosec G304 -- name is reduced to its base
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, internalErrors.NewDocumentNotFoundError(documentIDOf(filename), "file")
		}
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	return f, nil
}

// Delete removes a stored file. Deleting a missing file is not an error.
func (s *BinaryStore) Delete(filename string) error {
	if err := os.Remove(s.Path(filename)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", filename, err)
	}
	return nil
}
