// Package store provides the key-value blob stores documents are kept in.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	// ErrNotExist is returned by Get when nothing is stored under the key.
	ErrNotExist = errors.New("store: key does not exist")
	// ErrQuotaExceeded is returned by Put when the value would not fit.
	ErrQuotaExceeded = errors.New("store: quota exceeded")
)

// Store holds opaque values under string keys.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

// Mem is an in-process store. A zero Quota means unlimited; otherwise the
// sum of all stored value sizes may not exceed it.
type Mem struct {
	Quota int

	mu   sync.Mutex
	data map[string][]byte
}

// NewMem returns an empty store limited to quota bytes (0 for no limit).
func NewMem(quota int) *Mem {
	return &Mem{Quota: quota}
}

func (m *Mem) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotExist
	}
	return append([]byte(nil), v...), nil
}

func (m *Mem) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Quota > 0 {
		used := 0
		for k, v := range m.data {
			if k != key {
				used += len(v)
			}
		}
		if used+len(value) > m.Quota {
			return fmt.Errorf("put %q (%d bytes): %w", key, len(value), ErrQuotaExceeded)
		}
	}
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Dir keeps one file per key inside a directory.
type Dir struct {
	Path string
}

// NewDir returns a store rooted at path. The directory is created on the
// first Put.
func NewDir(path string) *Dir {
	return &Dir{Path: path}
}

func (d *Dir) file(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(d.Path, key), nil
}

func (d *Dir) Get(key string) ([]byte, error) {
	fn, err := d.file(key)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(fn)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fn, err)
	}
	return b, nil
}

// Put writes value to a temporary file next to the target and renames it
// into place.
func (d *Dir) Put(key string, value []byte) error {
	fn, err := d.file(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d.Path, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp, err := os.CreateTemp(d.Path, "."+key+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(name, fn); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("rename %s: %w", fn, err)
	}
	return nil
}
