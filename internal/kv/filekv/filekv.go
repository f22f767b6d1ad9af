// Package filekv stores each slot as a JSON file in a directory.
// Single user, no locking; writes replace the file atomically.
package filekv

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/idilsaglam/focustasks/internal/kv"
)

const (
	fileExt  = ".json"
	dirPerms = 0o755
	filePerm = 0o644
)

// Store is a directory-backed kv.Slot.
type Store struct {
	dir string
}

// New returns a Store rooted at dir. The directory is created on first write.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("filekv: empty directory")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("filekv: resolve dir: %w", err)
	}
	return &Store{dir: abs}, nil
}

// Dir returns the absolute directory holding the slot files.
func (s *Store) Dir() string { return s.dir }

// Path returns the file backing key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, key+fileExt)
}

func (s *Store) Get(key string) ([]byte, bool, error) {
	if err := kv.ValidateKey(key); err != nil {
		return nil, false, err
	}
	b, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read file: %w", err)
	}
	return b, true, nil
}

func (s *Store) Set(key string, value []byte) error {
	if err := kv.ValidateKey(key); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, dirPerms); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	p := s.Path(key)
	_, statErr := os.Stat(p)
	if err := atomic.WriteFile(p, bytes.NewReader(value)); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	// atomic.WriteFile leaves new files with the temp file's 0600 mode
	if errors.Is(statErr, os.ErrNotExist) {
		if err := os.Chmod(p, filePerm); err != nil {
			return fmt.Errorf("chmod: %w", err)
		}
	}
	return nil
}
