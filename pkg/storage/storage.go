// Package storage is where extracted records are written. A FileStore
// hides whether the destination is a local directory or an S3 bucket, so
// dump and batch jobs write the same paths to either.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// FileStore is a minimal interface for file-oriented storage.
//
// Paths are forward-slash separated and relative to the store root.
// Implementations must be safe for concurrent use.
type FileStore interface {
	// Read opens the named file for reading.
	// The caller must close the returned ReadCloser when done.
	// If the file does not exist, an error wrapping os.ErrNotExist is returned.
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Write opens the named file for writing.
	// If the file already exists it is truncated.
	// Parent directories are created automatically.
	// The caller must close the returned WriteCloser to flush data.
	Write(ctx context.Context, path string) (io.WriteCloser, error)

	// Delete removes the named file.
	// If the file does not exist, Delete returns nil (idempotent).
	Delete(ctx context.Context, path string) error

	// Exists reports whether the named file exists.
	Exists(ctx context.Context, path string) (bool, error)
}

// ErrInvalidPath is returned for paths that escape the store root.
var ErrInvalidPath = errors.New("storage: invalid path")

// putter is implemented by stores that can upload a whole object at once
// more cheaply than through Write.
type putter interface {
	Put(ctx context.Context, path string, data []byte) error
}

// Put stores data at path. If the write fails, whatever was stored at path
// is removed so that a later Same never matches a partial object.
func Put(ctx context.Context, fs FileStore, path string, data []byte) error {
	if err := put(ctx, fs, path, data); err != nil {
		if derr := fs.Delete(ctx, path); derr != nil {
			return errors.Join(err, fmt.Errorf("storage: remove partial %s: %w", path, derr))
		}
		return err
	}
	return nil
}

func put(ctx context.Context, fs FileStore, path string, data []byte) error {
	if p, ok := fs.(putter); ok {
		return p.Put(ctx, path, data)
	}
	w, err := fs.Write(ctx, path)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// Same reports whether path exists and holds exactly data.
func Same(ctx context.Context, fs FileStore, path string, data []byte) (bool, error) {
	ok, err := fs.Exists(ctx, path)
	if err != nil || !ok {
		return false, err
	}
	r, err := fs.Read(ctx, path)
	if err != nil {
		return false, err
	}
	defer r.Close()
	// Read one byte past len(data) to catch longer objects.
	got, err := io.ReadAll(io.LimitReader(r, int64(len(data))+1))
	if err != nil {
		return false, err
	}
	return bytes.Equal(got, data), nil
}

// RecordPath returns the path a dumped record is stored under.
func RecordPath(group, index int) string {
	return fmt.Sprintf("g%d/%d.bin", group, index)
}

// cleanPath normalises a storage path and rejects absolute paths and
// paths that climb out of the root.
func cleanPath(p string) (string, error) {
	if p == "" || strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	c := path.Clean(p)
	if c == "." || c == ".." || strings.HasPrefix(c, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return c, nil
}
