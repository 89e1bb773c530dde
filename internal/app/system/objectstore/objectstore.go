// Package objectstore is the narrow boundary to the external object
// store: accept a binary, hand back a durable URL. The URL is stored
// verbatim on documents; no validation of the content happens here.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
)

// Store is what the upload handler depends on.
type Store interface {
	// Put uploads the binary under a generated key and returns the URL
	// to persist.
	Put(ctx context.Context, filename, contentType string, r io.Reader) (url string, err error)
}

// presignExpiry is used for backends that cannot serve public URLs.
const presignExpiry = 15 * time.Minute

// waffleStore adapts a waffle storage backend (local disk or S3).
type waffleStore struct {
	backend storage.Store
	baseURL string
}

// FromWaffle wraps a waffle storage backend. When baseURL is set, URLs
// are baseURL/key; otherwise a presigned URL is generated per upload.
func FromWaffle(backend storage.Store, baseURL string) Store {
	return &waffleStore{backend: backend, baseURL: baseURL}
}

func (s *waffleStore) Put(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	now := time.Now().UTC()
	key := fmt.Sprintf("images/%04d/%02d/%s-%s",
		now.Year(), now.Month(), uuid.New().String()[:8], path.Base(filename))

	if err := s.backend.Put(ctx, key, r, &storage.PutOptions{ContentType: contentType}); err != nil {
		return "", fmt.Errorf("objectstore: put %s: %w", key, err)
	}

	if s.baseURL != "" {
		return s.baseURL + "/" + key, nil
	}
	url, err := s.backend.PresignedURL(ctx, key, &storage.PresignOptions{Expires: presignExpiry})
	if err != nil {
		return "", fmt.Errorf("objectstore: presign %s: %w", key, err)
	}
	return url, nil
}
