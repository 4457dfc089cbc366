package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

var (
	ErrTooLarge = errors.New("content exceeds the allowed size")
	ErrNotFound = errors.New("blob not found")
)

// DiskStore keeps every blob as a single file in one flat directory.
// Names are always generator-produced (see NewName), never client input,
// so no path cleaning is needed beyond joining.
type DiskStore struct {
	fs  afero.Fs
	dir string
}

func NewDiskStore(fs afero.Fs, dir string) (*DiskStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &DiskStore{fs: fs, dir: dir}, nil
}

// Save streams src into a new blob named name. It never buffers the payload:
// the copy is capped at maxBytes and aborted as soon as the cap is crossed.
// On any failure (cap, I/O, client disconnect) the partial file is removed.
func (s *DiskStore) Save(name string, src io.Reader, maxBytes int64) (int64, error) {
	path := filepath.Join(s.dir, name)

	dst, err := s.fs.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create blob %s: %w", name, err)
	}

	written, err := io.Copy(dst, io.LimitReader(src, maxBytes+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = s.fs.Remove(path)
		return 0, fmt.Errorf("failed to write blob %s: %w", name, err)
	}
	if written > maxBytes {
		_ = s.fs.Remove(path)
		return 0, ErrTooLarge
	}

	return written, nil
}

// Open returns a reader over the named blob. The caller owns the reader and
// must close it on every exit path.
func (s *DiskStore) Open(name string) (io.ReadCloser, error) {
	f, err := s.fs.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open blob %s: %w", name, err)
	}
	return f, nil
}

// Remove deletes the named blob. Missing blobs are not an error; the caller
// only cares that the name no longer resolves.
func (s *DiskStore) Remove(name string) error {
	err := s.fs.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove blob %s: %w", name, err)
	}
	return nil
}
