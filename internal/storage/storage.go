package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Package storage holds the transient workspace used for uploads and generated artifacts.
// Objects live only for the duration of a single request; callers delete them explicitly.

// ErrInvalidKey is returned for keys that are empty or would escape the workspace.
var ErrInvalidKey = errors.New("invalid storage key")

// PutObjectOptions define optional parameters for writing objects.
type PutObjectOptions struct {
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in the workspace.
type ObjectInfo struct {
	Key          string
	Path         string
	Size         int64
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the transient workspace interface.
// Path exposes the on-disk location because the PDF collaborators work on file paths.
type Storage interface {
	// Put writes the reader's content under key. Existing keys are never overwritten.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get opens an object's content for streaming alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key. Missing objects are not an error.
	Delete(ctx context.Context, key string) error
	// Path returns the filesystem path backing key.
	Path(key string) string
}

// UniqueKey returns "<prefix>_<32 hex chars><ext>", e.g. uploaded_3f2a...9c.pdf.
func UniqueKey(prefix, ext string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "") + ext
}

func validKey(key string) bool {
	if key == "" || key == "." || key == ".." {
		return false
	}
	return !strings.ContainsAny(key, `/\`)
}
