package commands

import (
	"io"
	"os"
)

// createOutput opens path for writing, or stdout for "" and "-". The
// returned close function is a no-op for stdout.
func createOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
