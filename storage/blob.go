package storage

import (
	"context"
	"os"
	"path/filepath"
)

// BlobStore persists named backup artifacts.
type BlobStore interface {
	Put(ctx context.Context, key string, content []byte) error
}

// FilesystemStore writes blobs under a base directory, one file per key.
// Key separators become path separators, so "backups/2026-08-31/x.csv"
// lands in a dated subdirectory.
type FilesystemStore struct {
	BaseDir string
}

func NewFilesystemStore(baseDir string) *FilesystemStore {
	return &FilesystemStore{BaseDir: baseDir}
}

func (s *FilesystemStore) Put(ctx context.Context, key string, content []byte) error {
	path := filepath.Join(s.BaseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}
