package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Store is a byte-stream store keyed by storage name.
type Store interface {
	Save(name string, r io.Reader) (string, error)
	Remove(path string) error
}

type localStore struct {
	dir string
}

// NewLocalStore creates the directory if missing and returns a store
// writing files directly under it.
func NewLocalStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &localStore{dir: dir}, nil
}

func (s *localStore) Save(name string, r io.Reader) (string, error) {
	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

func (s *localStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
