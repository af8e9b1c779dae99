package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// DiskStore writes uploads to a local directory which the API serves
// statically under /uploads.
type DiskStore struct {
	Dir string
}

// NewDiskStore ensures the upload directory exists.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{Dir: dir}, nil
}

// Save writes the file and returns its public path.
func (s *DiskStore) Save(filename string, data []byte) (string, error) {
	if err := os.WriteFile(filepath.Join(s.Dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return "/uploads/" + filename, nil
}
