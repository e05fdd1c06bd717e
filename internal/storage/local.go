package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// localStorage implements Storage on a single local directory.
// It is safe for concurrent use as long as keys are unique per request.
type localStorage struct {
	dir string
}

// NewLocal creates the workspace directory if needed and returns a Storage rooted at it.
func NewLocal(dir string) (Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("workspace directory is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &localStorage{dir: abs}, nil
}

func (l *localStorage) Path(key string) string {
	return filepath.Join(l.dir, key)
}

// Put streams r into a new file. A failed copy leaves nothing behind.
func (l *localStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	if !validKey(key) {
		return ObjectInfo{}, ErrInvalidKey
	}
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}
	path := l.Path(key)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("create %s: %w", key, err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return ObjectInfo{}, fmt.Errorf("write %s: %w", key, err)
	}
	st, err := os.Stat(path)
	if err != nil {
		return ObjectInfo{}, err
	}
	return ObjectInfo{
		Key:          key,
		Path:         path,
		Size:         n,
		ContentType:  opt.ContentType,
		LastModified: st.ModTime(),
		Metadata:     opt.Metadata,
	}, nil
}

func (l *localStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	if !validKey(key) {
		return nil, ObjectInfo{}, ErrInvalidKey
	}
	if err := ctx.Err(); err != nil {
		return nil, ObjectInfo{}, err
	}
	path := l.Path(key)
	f, err := os.Open(path)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, err
	}
	return f, ObjectInfo{
		Key:          key,
		Path:         path,
		Size:         st.Size(),
		LastModified: st.ModTime(),
	}, nil
}

func (l *localStorage) Delete(_ context.Context, key string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}
	if err := os.Remove(l.Path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
