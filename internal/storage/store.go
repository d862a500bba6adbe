package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

var (
	// ErrExists is returned when the target name is already taken. Names are
	// generated to be unique, so this indicates a caller bug.
	ErrExists = errors.New("object already exists")
	// ErrObjectNotFound is returned by Open for unknown keys.
	ErrObjectNotFound = errors.New("object not found")
	// ErrInvalidKey is returned for roots or names that would escape the store.
	ErrInvalidKey = errors.New("invalid object key")
)

// ObjectStore persists uploaded files.
type ObjectStore interface {
	// WriteUnique stores r as root/name and returns that relative key. It
	// never replaces an existing object.
	WriteUnique(ctx context.Context, root, name string, r io.Reader, size int64, contentType string) (string, error)
	// Open returns the object stored under key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// objectKey joins root and name, rejecting anything that is not a plain
// relative path.
func objectKey(root, name string) (string, error) {
	if name == "" || name != path.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: name %q", ErrInvalidKey, name)
	}
	return cleanKey(root + "/" + name)
}

func cleanKey(key string) (string, error) {
	k := strings.Trim(strings.TrimSpace(key), "/")
	for _, seg := range strings.Split(k, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return k, nil
}
