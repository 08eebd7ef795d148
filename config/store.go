package config

import (
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
)

// Store is the key-value persistence boundary: synchronous get/set/remove of
// small text blobs.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// FileStore keeps each key in its own file under Dir.
type FileStore struct {
	Dir string
}

// DefaultStore returns a FileStore rooted at ~/.config/compose-sanitizer.
func DefaultStore() (*FileStore, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}
	return &FileStore{Dir: filepath.Join(home, ".config", "compose-sanitizer")}, nil
}

func (s *FileStore) path(key string) string {
	// Keys are fixed identifiers, but keep them filename-safe regardless.
	return filepath.Join(s.Dir, strings.ReplaceAll(key, string(os.PathSeparator), "_")+".json")
}

func (s *FileStore) Get(key string) (string, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (s *FileStore) Set(key, value string) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path(key), []byte(value), 0o644)
}

func (s *FileStore) Remove(key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemStore is an in-memory Store for tests and one-shot runs.
type MemStore map[string]string

func (s MemStore) Get(key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}

func (s MemStore) Set(key, value string) error {
	s[key] = value
	return nil
}

func (s MemStore) Remove(key string) error {
	delete(s, key)
	return nil
}
