package sunplus

import (
	"fmt"
	"io"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DirCache keeps parsed ROM directories so that many records of the same
// container can be opened without re-reading its tables.
//
// Entries are keyed by a caller-chosen name (usually the file path) and
// the container base. A cached ROM keeps the stream it was opened on, so
// the opener passed to Get must return a stream that stays valid until the
// entry is evicted; eviction closes it when it implements io.Closer.
type DirCache struct {
	c *lru.Cache[dirKey, *ROM]
}

type dirKey struct {
	name string
	base int64
}

// NewDirCache creates a cache holding at most size directories.
func NewDirCache(size int) (*DirCache, error) {
	c, err := lru.NewWithEvict(size, func(_ dirKey, m *ROM) {
		if cl, ok := m.r.(io.Closer); ok {
			cl.Close()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("sunplus: dir cache: %w", err)
	}
	return &DirCache{c: c}, nil
}

// Get returns the directory for name at base, calling open and OpenROM on
// a miss.
func (d *DirCache) Get(name string, base int64, open func() (io.ReadSeeker, error)) (*ROM, error) {
	k := dirKey{name: name, base: base}
	if m, ok := d.c.Get(k); ok {
		return m, nil
	}
	r, err := open()
	if err != nil {
		return nil, err
	}
	if _, err := r.Seek(base, io.SeekStart); err != nil {
		closeStream(r)
		return nil, fmt.Errorf("sunplus: seek container: %w", err)
	}
	m, err := OpenROM(r)
	if err != nil {
		closeStream(r)
		return nil, err
	}
	d.c.Add(k, m)
	return m, nil
}

// Len returns the number of cached directories.
func (d *DirCache) Len() int {
	return d.c.Len()
}

// Purge evicts every entry, closing the underlying streams.
func (d *DirCache) Purge() {
	d.c.Purge()
}

func closeStream(r io.ReadSeeker) {
	if cl, ok := r.(io.Closer); ok {
		cl.Close()
	}
}
