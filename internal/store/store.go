// Package store holds the output files written by an import.
//
// Importers only need three operations: read a file by name, write a file by
// name and list what is there. Dir backs them with a real directory; Memory
// keeps everything in a map for tests.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Store is a flat namespace of files.
// Read returns an error matching fs.ErrNotExist for absent names.
type Store interface {
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
	List() ([]string, error)
}

// Dir stores files in a directory on disk.
type Dir struct {
	root string
}

// OpenDir creates root (and parents) if needed and returns a Dir for it.
func OpenDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", root, err)
	}
	return &Dir{root: root}, nil
}

// NewDir returns a Dir for root without touching the filesystem. Use it for
// read-only access; List treats a missing root as empty.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

// Root returns the directory path.
func (d *Dir) Root() string {
	return d.root
}

// Read returns the content of name.
func (d *Dir) Read(name string) ([]byte, error) {
	path, err := d.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// Write replaces name with data using write-to-temp-then-rename.
func (d *Dir) Write(name string, data []byte) error {
	path, err := d.path(name)
	if err != nil {
		return err
	}
	if err := atomicWrite(path, data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// List returns the names of regular files in the directory, sorted.
func (d *Dir) List() ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", d.root, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && !strings.HasPrefix(entry.Name(), ".") {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// path rejects names that would escape the directory.
func (d *Dir) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(d.root, name), nil
}

// atomicWrite writes data to a temp file next to path, then renames it over path.
func atomicWrite(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Memory is an in-memory Store. The zero value is ready to use.
type Memory struct {
	mu     sync.Mutex
	files  map[string][]byte
	writes int
}

// NewMemory returns a Memory preloaded with files.
func NewMemory(files map[string]string) *Memory {
	m := &Memory{files: make(map[string][]byte, len(files))}
	for name, content := range files {
		m.files[name] = []byte(content)
	}
	return m
}

// Read returns a copy of name's content.
func (m *Memory) Read(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.files[name]
	if !ok {
		return nil, fmt.Errorf("reading %s: %w", name, fs.ErrNotExist)
	}
	return append([]byte(nil), data...), nil
}

// Write stores a copy of data under name.
func (m *Memory) Write(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[name] = append([]byte(nil), data...)
	m.writes++
	return nil
}

// List returns the stored names, sorted.
func (m *Memory) List() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Writes returns how many Write calls have been made.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
