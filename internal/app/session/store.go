package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// MemoryStore keeps the token for the life of the process only.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryStore) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) Delete(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// FileStore keeps the token in a single file readable only by its owner.
type FileStore struct {
	fs   afero.Fs
	path string
}

// NewFileStore stores the token at path on fs. Pass afero.NewOsFs() for the
// real filesystem.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

func (f *FileStore) Load(context.Context) (string, error) {
	data, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (f *FileStore) Save(_ context.Context, token string) error {
	if err := f.fs.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return afero.WriteFile(f.fs, f.path, []byte(token), 0o600)
}

func (f *FileStore) Delete(context.Context) error {
	err := f.fs.Remove(f.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
