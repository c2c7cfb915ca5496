package storage

import (
	"context"
	"errors"
	"testing"
)

func TestSame(t *testing.T) {
	ctx := context.Background()
	stores := map[string]FileStore{
		"local": newTestLocal(t),
		"s3":    NewS3(newMockS3(), "bucket", "dumps"),
	}
	for name, fs := range stores {
		t.Run(name, func(t *testing.T) {
			path := RecordPath(0, 1)
			if same, err := Same(ctx, fs, path, []byte{1, 2}); err != nil || same {
				t.Fatalf("missing object: same=%v err=%v", same, err)
			}
			if err := Put(ctx, fs, path, []byte{1, 2, 3}); err != nil {
				t.Fatal(err)
			}
			tests := []struct {
				data []byte
				want bool
			}{
				{[]byte{1, 2, 3}, true},
				{[]byte{1, 2}, false},
				{[]byte{1, 2, 3, 4}, false},
				{[]byte{1, 2, 4}, false},
			}
			for _, tt := range tests {
				same, err := Same(ctx, fs, path, tt.data)
				if err != nil {
					t.Fatal(err)
				}
				if same != tt.want {
					t.Errorf("Same(%v) = %v, want %v", tt.data, same, tt.want)
				}
			}
		})
	}
}

func TestPutRemovesFailedObject(t *testing.T) {
	ctx := context.Background()
	mock := newMockS3()
	store := NewS3(mock, "bucket", "")
	path := RecordPath(2, 0)
	if err := Put(ctx, store, path, []byte{9, 9}); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("upload failed")
	mock.putErr = boom
	if err := Put(ctx, store, path, []byte{1, 2, 3}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if ok, err := store.Exists(ctx, path); err != nil || ok {
		t.Errorf("stale object left after failed put: exists=%v err=%v", ok, err)
	}
}
