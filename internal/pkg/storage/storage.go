package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Open when no object exists at the path.
var ErrNotFound = errors.New("object not found")

// ErrInvalidPath is returned for paths that escape the storage root.
var ErrInvalidPath = errors.New("invalid object path")

// Storage stores opaque objects (boat photos and their thumbnails) by relative path.
type Storage interface {
	// Save writes content to path, creating intermediate directories.
	Save(ctx context.Context, path string, content io.Reader) error

	// Open returns a reader for the object at path, or ErrNotFound.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the object at path. Missing objects are not an error.
	Delete(ctx context.Context, path string) error
}
