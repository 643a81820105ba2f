package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Uploader keeps files received by the development backend and returns the
// reference stored on the product.
type Uploader interface {
	Put(ctx context.Context, name string, r io.Reader, size int64) (string, error)
	Remove(ctx context.Context, ref string) error
}

// ObjectName builds a unique latin object name that keeps the extension of
// the original file, e.g. main_1a2b3c4d_1700000000.png.
func ObjectName(prefix, original string) string {
	return fmt.Sprintf("%s_%s_%d%s",
		prefix,
		uuid.New().String()[:8],
		time.Now().Unix(),
		strings.ToLower(filepath.Ext(original)))
}

// Put uploads r under key and returns a minio:// reference to it.
func (m *MinIOSource) Put(ctx context.Context, key string, r io.Reader, size int64) (string, error) {
	mtype, body, err := sniff(r)
	if err != nil {
		return "", err
	}

	_, err = m.client.PutObject(ctx, m.bucketName, key, body, size, minio.PutObjectOptions{
		ContentType: mtype,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	logrus.Infof("File %s uploaded", key)
	return MinIOScheme + key, nil
}

// Remove deletes the object a reference returned by Put points to.
func (m *MinIOSource) Remove(ctx context.Context, ref string) error {
	key := strings.TrimPrefix(ref, MinIOScheme)
	if err := m.client.RemoveObject(ctx, m.bucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	logrus.Infof("File %s deleted", key)
	return nil
}

// DiskUploader writes uploads under Dir and serves them below URLPrefix.
type DiskUploader struct {
	fs        afero.Fs
	dir       string
	urlPrefix string
}

func NewDiskUploader(fs afero.Fs, dir, urlPrefix string) *DiskUploader {
	return &DiskUploader{fs: fs, dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

func (d *DiskUploader) Put(_ context.Context, name string, r io.Reader, _ int64) (string, error) {
	if err := d.fs.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", d.dir, err)
	}
	f, err := d.fs.OpenFile(filepath.Join(d.dir, name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return d.urlPrefix + "/" + name, nil
}

func (d *DiskUploader) Remove(_ context.Context, ref string) error {
	name := path.Base(ref)
	err := d.fs.Remove(filepath.Join(d.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

// FS exposes the filesystem uploads are written to, for serving them.
func (d *DiskUploader) FS() afero.Fs {
	return afero.NewBasePathFs(d.fs, d.dir)
}

// sniff detects the content type from the head of r and returns a reader
// that still yields the whole stream.
func sniff(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, 3072)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	return mimetype.Detect(head).String(), io.MultiReader(bytes.NewReader(head), r), nil
}
