package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// Local writes uploads under a directory served as /uploads by the API.
type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Local{dir: dir}, nil
}

func (l *Local) Save(ctx context.Context, name string, body io.Reader, contentType string) error {
	f, err := os.Create(filepath.Join(l.dir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return err
	}
	return f.Sync()
}

func (l *Local) URL(name string) string {
	if isAbsoluteURL(name) {
		return name
	}
	return "/uploads/" + name
}

// Dir is the directory gin serves statically.
func (l *Local) Dir() string {
	return l.dir
}

var _ Store = (*Local)(nil)
