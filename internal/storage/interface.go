package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when no file is stored under a key
var ErrNotFound = errors.New("file not found")

// FileStorage stores uploaded files under slash-separated keys
type FileStorage interface {
	// Save writes the reader under key and returns the number of bytes written
	Save(ctx context.Context, key string, reader io.Reader) (int64, error)

	// Open returns the file stored under key
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether key is stored and its size
	Exists(ctx context.Context, key string) (bool, int64, error)

	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// URL returns the public address the file is served from
	URL(key string) string
}
