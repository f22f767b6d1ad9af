// Package kv defines the durable key-value slot the task store writes
// through to, plus an in-memory implementation.
package kv

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidKey is returned for keys that cannot be used as a slot name.
var ErrInvalidKey = errors.New("invalid slot key")

// Slot is a durable key-value store holding one value per key.
//
// Get reports ok=false when the key has never been written; err is
// reserved for failures of the underlying storage.
type Slot interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

// ValidateKey rejects keys that are empty, too long or would escape a
// directory when used as a file name.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Memory is an in-process Slot. The zero value is ready to use.
type Memory struct {
	data map[string][]byte
}

// NewMemory returns an empty Memory slot.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Get(key string) ([]byte, bool, error) {
	if err := ValidateKey(key); err != nil {
		return nil, false, err
	}
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Set(key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}
