package storage

import (
	"context"       // Request-scoped cancellation
	"errors"        // Error inspection
	"fmt"           // String formatting
	"io/fs"         // File system errors
	"os"            // File access
	"path/filepath" // Path handling
	"strings"       // String helpers
)

// LocalStore writes images below Dir; they are served from BaseURL.
type LocalStore struct {
	Dir     string
	BaseURL string
}

// NewLocalStore serves files under dir at baseURL.
func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{Dir: dir, BaseURL: baseURL}
}

// Save writes data to key, creating parent directories.
func (s *LocalStore) Save(_ context.Context, key string, data []byte, _ string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Delete removes key. A missing file is not an error.
func (s *LocalStore) Delete(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// URL returns the public address of key, empty for an empty key.
func (s *LocalStore) URL(key string) string {
	if key == "" {
		return ""
	}
	return strings.TrimRight(s.BaseURL, "/") + "/" + key
}

// path resolves key inside Dir and refuses keys that would escape it.
func (s *LocalStore) path(key string) (string, error) {
	if !filepath.IsLocal(filepath.FromSlash(key)) {
		return "", fmt.Errorf("invalid image key %q", key)
	}
	return filepath.Join(s.Dir, filepath.FromSlash(key)), nil
}
