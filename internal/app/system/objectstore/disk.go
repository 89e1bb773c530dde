package objectstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Disk stores uploads on the local filesystem. It is the default
// backend for development and single-node deployments.
type Disk struct {
	root    string
	baseURL string
}

// NewDisk creates the root directory if needed. baseURL is the public
// prefix under which the root is served (e.g. "/files/images").
func NewDisk(root, baseURL string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("objectstore: create root %s: %w", root, err)
	}
	return &Disk{root: root, baseURL: baseURL}, nil
}

func (d *Disk) Put(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	now := time.Now().UTC()
	key := fmt.Sprintf("images/%04d/%02d/%s-%s",
		now.Year(), now.Month(), uuid.New().String()[:8], path.Base(filename))

	dst := filepath.Join(d.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("objectstore: mkdir for %s: %w", key, err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("objectstore: create %s: %w", key, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("objectstore: write %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("objectstore: close %s: %w", key, err)
	}

	return d.baseURL + "/" + key, nil
}
