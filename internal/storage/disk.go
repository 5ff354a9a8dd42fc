// Package storage persists uploaded image files. The API records metadata in
// PostgreSQL and delegates the bytes to a Store implementation.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store saves and removes uploaded files. Save returns the public URL and the
// file id used for later removal.
type Store interface {
	Save(fileName string, content []byte) (url string, fileID string, err error)
	Remove(fileID string) error
}

// DiskStore writes uploads to a local directory served under baseURL.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: baseURL}, nil
}

func (s *DiskStore) Save(fileName string, content []byte) (string, string, error) {
	// A random file id avoids collisions and path traversal via the
	// client-supplied name; only the extension is kept.
	fileID := uuid.New().String() + filepath.Ext(fileName)
	path := filepath.Join(s.dir, fileID)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to store file: %w", err)
	}
	return s.baseURL + "/" + fileID, fileID, nil
}

func (s *DiskStore) Remove(fileID string) error {
	path := filepath.Join(s.dir, filepath.Base(fileID))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}
