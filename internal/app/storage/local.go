package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// LocalSource reads files from an afero filesystem.
type LocalSource struct {
	fs afero.Fs
}

func NewLocalSource(fs afero.Fs) *LocalSource {
	return &LocalSource{fs: fs}
}

func (l *LocalSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := l.fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("open %s: is a directory", name)
	}
	return f, nil
}
