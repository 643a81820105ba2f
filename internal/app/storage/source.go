// Package storage opens the files an admin attaches to a product: images and
// the downloadable artifact. They live either on the local disk or in a
// MinIO bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// MinIOScheme prefixes references that name an object in the bucket.
const MinIOScheme = "minio://"

var (
	ErrNoBucket      = errors.New("minio reference given but no bucket is configured")
	ErrObjectMissing = errors.New("object not found in bucket")
)

// Source opens a named file for reading.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// Resolver picks the Source for a reference.
type Resolver struct {
	Local Source
	MinIO Source // nil when MinIO is not configured
}

// Open opens ref from MinIO when it starts with minio:// and from the local
// source otherwise.
func (r *Resolver) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if key, ok := strings.CutPrefix(ref, MinIOScheme); ok {
		if r.MinIO == nil {
			return nil, ErrNoBucket
		}
		return r.MinIO.Open(ctx, key)
	}
	return r.Local.Open(ctx, ref)
}

// Linker hands out temporary download links for bucket objects.
type Linker interface {
	Exists(ctx context.Context, key string) (bool, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Link returns a download link for ref. Non-bucket references are already
// links and come back unchanged; a bucket reference is checked for
// existence and presigned for ttl.
func (r *Resolver) Link(ctx context.Context, ref string, ttl time.Duration) (string, error) {
	key, ok := strings.CutPrefix(ref, MinIOScheme)
	if !ok {
		return ref, nil
	}
	linker, ok := r.MinIO.(Linker)
	if !ok {
		return "", ErrNoBucket
	}

	exists, err := linker.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("%s: %w", key, ErrObjectMissing)
	}
	return linker.PresignedURL(ctx, key, ttl)
}
