package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"marketadmin/internal/app/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// MinIOSource reads product assets staged in a bucket.
type MinIOSource struct {
	client     *minio.Client
	bucketName string
}

// NewMinIOSource connects to the bucket described by cfg. The bucket must
// already exist; the admin tool never creates buckets.
func NewMinIOSource(ctx context.Context, cfg config.MinIOConfig) (*MinIOSource, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", cfg.Bucket)
	}

	logrus.Debugf("using minio bucket %s at %s", cfg.Bucket, cfg.Endpoint)
	return &MinIOSource{client: client, bucketName: cfg.Bucket}, nil
}

// Open streams an object. The stat call surfaces a missing key here rather
// than on the first Read.
func (m *MinIOSource) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	object, err := m.client.GetObject(ctx, m.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	if _, err := object.Stat(); err != nil {
		_ = object.Close()
		return nil, fmt.Errorf("failed to stat object %s: %w", key, err)
	}
	return object, nil
}

// Exists checks whether key is present in the bucket.
func (m *MinIOSource) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.client.StatObject(ctx, m.bucketName, key, minio.StatObjectOptions{})
	if err != nil {
		errResponse := minio.ToErrorResponse(err)
		if errResponse.Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to check file: %w", err)
	}
	return true, nil
}

// PresignedURL returns a temporary download link for key.
func (m *MinIOSource) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucketName, key, ttl, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return u.String(), nil
}
