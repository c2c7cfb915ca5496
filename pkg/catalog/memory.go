package catalog

import (
	"context"
	"iter"
	"sort"
	"strings"
	"sync"
)

// Memory is an in-memory Store implementation backed by a map.
// It is safe for concurrent use and intended primarily for testing.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates a new in-memory Store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) PutScan(_ context.Context, scan Scan, entries []Entry) error {
	kvs, err := keyedValues(scan, entries)
	if err != nil {
		return err
	}
	prefix := entryPrefix(scan.Digest)
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	for k, v := range kvs {
		m.data[k] = v
	}
	return nil
}

func (m *Memory) get(key string, v any) error {
	m.mu.RLock()
	b, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	return decode(b, v)
}

func (m *Memory) GetScan(_ context.Context, digest string) (Scan, error) {
	var s Scan
	if err := validDigest(digest); err != nil {
		return s, err
	}
	err := m.get(scanKey(digest), &s)
	return s, err
}

func (m *Memory) Get(_ context.Context, digest string, group, index int) (Entry, error) {
	var e Entry
	if err := validDigest(digest); err != nil {
		return e, err
	}
	err := m.get(entryKey(digest, group, index), &e)
	return e, err
}

func (m *Memory) List(_ context.Context, digest string) iter.Seq2[Entry, error] {
	return memPrefixed[Entry](m, entryPrefix(digest))
}

func (m *Memory) Scans(_ context.Context) iter.Seq2[Scan, error] {
	return memPrefixed[Scan](m, scanPrefix)
}

// memPrefixed snapshots matching values under the read lock and yields
// them in key order.
func memPrefixed[T any](m *Memory, prefix string) iter.Seq2[T, error] {
	m.mu.RLock()
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	vals := make([][]byte, len(keys))
	for i, k := range keys {
		vals[i] = m.data[k]
	}
	m.mu.RUnlock()

	return func(yield func(T, error) bool) {
		for _, b := range vals {
			var v T
			if err := decode(b, &v); err != nil {
				var zero T
				if !yield(zero, err) {
					return
				}
				continue
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

func (m *Memory) Close() error {
	return nil
}

var _ Store = (*Memory)(nil)
