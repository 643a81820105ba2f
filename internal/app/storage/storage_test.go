package storage

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"marketadmin/internal/app/storage/miniotest"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBucket map[string]string

func (b fakeBucket) Open(_ context.Context, key string) (io.ReadCloser, error) {
	v, ok := b[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return io.NopCloser(strings.NewReader(v)), nil
}

func (b fakeBucket) Exists(_ context.Context, key string) (bool, error) {
	if key == "broken" {
		return false, errors.New("bucket unreachable")
	}
	_, ok := b[key]
	return ok, nil
}

func (b fakeBucket) PresignedURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	return "https://cdn.example.com/" + key + "?ttl=" + ttl.String(), nil
}

func TestResolver_Open(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/assets/icon.png", []byte("local"), 0o644))

	r := &Resolver{
		Local: NewLocalSource(fs),
		MinIO: fakeBucket{"builds/app.zip": "remote"},
	}

	rc, err := r.Open(ctx, "/assets/icon.png")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	assert.Equal(t, "local", string(data))

	rc, err = r.Open(ctx, "minio://builds/app.zip")
	require.NoError(t, err)
	data, _ = io.ReadAll(rc)
	_ = rc.Close()
	assert.Equal(t, "remote", string(data))
}

func TestResolver_MinIONotConfigured(t *testing.T) {
	r := &Resolver{Local: NewLocalSource(afero.NewMemMapFs())}

	_, err := r.Open(context.Background(), "minio://builds/app.zip")
	assert.ErrorIs(t, err, ErrNoBucket)
}

func TestLocalSource_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/assets", 0o755))
	src := NewLocalSource(fs)

	_, err := src.Open(context.Background(), "/assets/missing.png")
	assert.Error(t, err)

	_, err = src.Open(context.Background(), "/assets")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory")
}

func TestDiskUploader(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	up := NewDiskUploader(fs, "/srv/uploads", "/uploads/")

	ref, err := up.Put(ctx, "main_abc.png", strings.NewReader("png-bytes"), 9)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/main_abc.png", ref)

	data, err := afero.ReadFile(fs, "/srv/uploads/main_abc.png")
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	served, err := afero.ReadFile(up.FS(), "/main_abc.png")
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(served))

	require.NoError(t, up.Remove(ctx, ref))
	exists, _ := afero.Exists(fs, "/srv/uploads/main_abc.png")
	assert.False(t, exists)
	require.NoError(t, up.Remove(ctx, ref))
}

func TestObjectName(t *testing.T) {
	name := ObjectName("main", "Screen Shot.PNG")
	assert.True(t, strings.HasPrefix(name, "main_"))
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.NotEqual(t, name, ObjectName("main", "Screen Shot.PNG"))
}

func TestSniffKeepsStream(t *testing.T) {
	payload := "\x89PNG\r\n\x1a\n" + strings.Repeat("x", 5000)
	mtype, r, err := sniff(strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, "image/png", mtype)
	data, _ := io.ReadAll(r)
	assert.Equal(t, payload, string(data))
}

func TestResolver_Link(t *testing.T) {
	ctx := context.Background()
	r := &Resolver{
		Local: NewLocalSource(afero.NewMemMapFs()),
		MinIO: fakeBucket{"builds/app.zip": "remote"},
	}

	link, err := r.Link(ctx, "/uploads/main_abc.png", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/main_abc.png", link)

	link, err = r.Link(ctx, "minio://builds/app.zip", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/builds/app.zip?ttl=1h0m0s", link)

	_, err = r.Link(ctx, "minio://builds/gone.zip", time.Hour)
	assert.ErrorIs(t, err, ErrObjectMissing)

	_, err = r.Link(ctx, "minio://broken", time.Hour)
	assert.EqualError(t, err, "bucket unreachable")

	_, err = (&Resolver{}).Link(ctx, "minio://builds/app.zip", time.Hour)
	assert.ErrorIs(t, err, ErrNoBucket)
}

func TestMinIOSource(t *testing.T) {
	ctx := context.Background()
	srv := miniotest.NewServer("products")
	defer srv.Close()
	srv.PutObject("builds/app.zip", []byte("zip-bytes"))

	bucket, err := NewMinIOSource(ctx, srv.Config())
	require.NoError(t, err)

	exists, err := bucket.Exists(ctx, "builds/app.zip")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = bucket.Exists(ctx, "builds/missing.zip")
	require.NoError(t, err)
	assert.False(t, exists)

	raw, err := bucket.PresignedURL(ctx, "builds/app.zip", 15*time.Minute)
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/products/builds/app.zip", u.Path)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))

	rc, err := bucket.Open(ctx, "builds/app.zip")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	_ = rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "zip-bytes", string(data))

	_, err = bucket.Open(ctx, "builds/missing.zip")
	assert.Error(t, err)

	png := "\x89PNG\r\n\x1a\n" + strings.Repeat("\x00", 16)
	ref, err := bucket.Put(ctx, "main_abc.png", strings.NewReader(png), int64(len(png)))
	require.NoError(t, err)
	assert.Equal(t, "minio://main_abc.png", ref)
	assert.True(t, srv.HasObject("main_abc.png"))

	r := &Resolver{Local: NewLocalSource(afero.NewMemMapFs()), MinIO: bucket}
	link, err := r.Link(ctx, ref, time.Hour)
	require.NoError(t, err)
	assert.Contains(t, link, "/products/main_abc.png?")

	require.NoError(t, bucket.Remove(ctx, ref))
	assert.False(t, srv.HasObject("main_abc.png"))
	_, err = r.Link(ctx, ref, time.Hour)
	assert.ErrorIs(t, err, ErrObjectMissing)
}

func TestNewMinIOSource_MissingBucket(t *testing.T) {
	srv := miniotest.NewServer("products")
	defer srv.Close()

	cfg := srv.Config()
	cfg.Bucket = "archive"
	_, err := NewMinIOSource(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket archive does not exist")
}
