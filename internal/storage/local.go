package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// localStorage stores blobs as flat files in a single directory. It is the
// default backend and what the /uploads static route serves from.
type localStorage struct {
	root string
}

// NewLocal creates a local blob store rooted at dir, creating it if needed.
func NewLocal(dir string) (Storage, error) {
	// os.MkdirAll keeps this idempotent across restarts.
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir %q: %w", dir, err)
	}
	absRoot, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload dir: %w", err)
	}
	return &localStorage{root: absRoot}, nil
}

// abs resolves a blob filename to a concrete path under root. Filenames are
// server-generated, but the check also protects the Open path, where the name
// comes from the URL.
func (l *localStorage) abs(filename string) (string, error) {
	joined := filepath.Join(l.root, filepath.Clean(filepath.FromSlash(filename)))
	rel, err := filepath.Rel(l.root, joined)
	if err != nil || rel != filepath.Base(rel) || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("filename %q escapes upload dir", filename)
	}
	return joined, nil
}

// Write streams r to a new file. The file is written in place, not via a
// temp file: on failure a partial file may remain, and the caller owns the
// decision to remove it.
func (l *localStorage) Write(ctx context.Context, filename string, r io.Reader) (int64, error) {
	dest, err := l.abs(filename)
	if err != nil {
		return 0, err
	}

	f, err := os.OpenFile(dest, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		return 0, fmt.Errorf("create %q: %w", filename, err)
	}

	n, werr := io.Copy(f, r)
	cerr := f.Close()

	if werr != nil {
		return n, fmt.Errorf("stream write %q: %w", filename, werr)
	}
	if cerr != nil {
		return n, fmt.Errorf("flush %q: %w", filename, cerr)
	}
	return n, nil
}

// Open opens the blob for sequential reading. Caller must close the returned
// ReadCloser.
func (l *localStorage) Open(ctx context.Context, filename string) (io.ReadCloser, int64, error) {
	dest, err := l.abs(filename)
	if err != nil {
		return nil, 0, err
	}
	f, err := os.Open(dest)
	if err != nil {
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, info.Size(), nil
}

// Remove deletes the blob. A missing file surfaces as fs.ErrNotExist so the
// caller can log and move on.
func (l *localStorage) Remove(ctx context.Context, filename string) error {
	dest, err := l.abs(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(dest); err != nil {
		return fmt.Errorf("remove %q: %w", filename, err)
	}
	return nil
}
