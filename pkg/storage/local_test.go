package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func newTestLocal(t *testing.T) *Local {
	t.Helper()
	s, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestLocalPutAndRead(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()

	if err := Put(ctx, s, RecordPath(3, 14), []byte("record")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(s.Root(), "g3", "14.bin")); err != nil {
		t.Fatalf("record file: %v", err)
	}
	r, err := s.Read(ctx, "g3/14.bin")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	got, _ := io.ReadAll(r)
	if string(got) != "record" {
		t.Fatalf("got %q", got)
	}
}

func TestLocalWriteTruncates(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()
	for _, data := range []string{"long content here", "short"} {
		w, err := s.Write(ctx, "f")
		if err != nil {
			t.Fatal(err)
		}
		io.WriteString(w, data)
		w.Close()
	}
	got, err := os.ReadFile(filepath.Join(s.Root(), "f"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "short" {
		t.Fatalf("got %q, want short", got)
	}
}

func TestLocalExistsDelete(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()

	if ok, err := s.Exists(ctx, "x"); err != nil || ok {
		t.Fatalf("Exists(missing) = %v, %v", ok, err)
	}
	if err := s.Put(ctx, "x", nil); err != nil {
		t.Fatal(err)
	}
	if ok, err := s.Exists(ctx, "x"); err != nil || !ok {
		t.Fatalf("Exists(present) = %v, %v", ok, err)
	}
	if err := s.Delete(ctx, "x"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "x"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if _, err := s.Read(ctx, "x"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Read after delete: %v", err)
	}
}

func TestLocalRejectsEscapingPaths(t *testing.T) {
	s := newTestLocal(t)
	for _, p := range []string{"", "/etc/passwd", "..", "../x", "a/../../x"} {
		if _, err := s.Write(context.Background(), p); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("Write(%q) = %v, want ErrInvalidPath", p, err)
		}
	}
}

func TestNewLocalCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dir")
	s, err := NewLocal(dir)
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(s.Root())
	if err != nil || !info.IsDir() {
		t.Fatalf("Stat(root) = %v, %v", info, err)
	}
}
