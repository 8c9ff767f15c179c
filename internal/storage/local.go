// Package storage persists uploaded image files on local disk.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"waypoint/internal/observability"

	"github.com/google/uuid"
)

// AssetStore saves and removes uploaded files and yields stable references
// that are stored on the owning row.
type AssetStore interface {
	Save(file *multipart.FileHeader) (string, error)
	Remove(ref string) error
}

type localAssetStore struct {
	dir string
}

// NewLocalAssetStore returns an AssetStore backed by a directory on local
// disk. The directory is created if it does not exist.
func NewLocalAssetStore(dir string) (AssetStore, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %q: %w", dir, err)
	}
	return &localAssetStore{dir: dir}, nil
}

// Save writes the uploaded file under a random name and returns its
// reference. File contents are stored verbatim; nothing inspects or
// transforms the bytes.
func (s *localAssetStore) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		observability.AssetOperations.WithLabelValues("save", "error").Inc()
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.New().String() + ext
	dstPath := filepath.Join(s.dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		observability.AssetOperations.WithLabelValues("save", "error").Inc()
		return "", fmt.Errorf("failed to create file %q: %w", dstPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		observability.AssetOperations.WithLabelValues("save", "error").Inc()
		return "", fmt.Errorf("failed to write file %q: %w", dstPath, err)
	}

	observability.AssetOperations.WithLabelValues("save", "ok").Inc()
	return path.Join(s.dir, name), nil
}

// Remove deletes the file behind ref. A missing file is not an error so
// repeated removal stays idempotent. The ref is resolved strictly inside
// the store directory.
func (s *localAssetStore) Remove(ref string) error {
	name := filepath.Base(filepath.Clean(ref))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return fmt.Errorf("invalid asset reference %q", ref)
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		observability.AssetOperations.WithLabelValues("remove", "error").Inc()
		return fmt.Errorf("failed to remove asset %q: %w", ref, err)
	}

	observability.AssetOperations.WithLabelValues("remove", "ok").Inc()
	return nil
}
