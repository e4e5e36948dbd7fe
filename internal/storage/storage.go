// Package storage contains blob store abstractions for uploaded photo files.
// The default implementation is a flat local directory; an S3-compatible
// backend is available for deployments without a persistent disk.
package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage is the blob store holding uploaded files under generated names.
// Methods use context and streaming readers; implementations must be safe
// for concurrent use.
type Storage interface {
	// Write streams r to a new blob named filename and returns the number of
	// bytes written. The name must not already exist in normal operation.
	// A partially written blob may remain on failure; the caller decides
	// whether to remove it.
	Write(ctx context.Context, filename string, r io.Reader) (int64, error)
	// Open returns the blob's content as a streaming reader and its size.
	Open(ctx context.Context, filename string) (io.ReadCloser, int64, error)
	// Remove deletes the blob. Removing a missing blob returns an error that
	// wraps fs.ErrNotExist; callers treat removal as best-effort cleanup.
	Remove(ctx context.Context, filename string) error
}

// GenerateName derives a fresh unique filename from the caller-supplied one.
// Only the extension is kept (defaulting to jpg); the base name is replaced
// with a random UUID so uploads never collide and user input never reaches
// the filesystem.
func GenerateName(original string) string {
	ext := strings.TrimPrefix(filepath.Ext(original), ".")
	if ext == "" {
		ext = "jpg"
	}
	return uuid.New().String() + "." + ext
}
