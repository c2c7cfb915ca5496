// Package catalog keeps a persistent index of the records found in ROM
// containers, so dumps can be searched without re-parsing them.
//
// A scan stores one Scan summary and one Entry per file, keyed by the
// SHA-256 digest of the scanned image:
//
//	scan:<digest>
//	entry:<digest>:<group>:<index>
//
// Group and index are zero-padded so that lexicographic key order matches
// directory order. Values are msgpack-encoded.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrNotFound is returned when a scan or entry does not exist.
var ErrNotFound = errors.New("catalog: not found")

// Scan summarises one indexing run over an image.
type Scan struct {
	ID     string    `msgpack:"id" json:"id" yaml:"id"`
	Source string    `msgpack:"source" json:"source" yaml:"source"`
	Digest string    `msgpack:"digest" json:"digest" yaml:"digest"`
	Base   int64     `msgpack:"base" json:"base" yaml:"base"`
	Groups int       `msgpack:"groups" json:"groups" yaml:"groups"`
	Files  int       `msgpack:"files" json:"files" yaml:"files"`
	At     time.Time `msgpack:"at" json:"at" yaml:"at"`
}

// Entry describes one file of a container.
type Entry struct {
	Source    string `msgpack:"source" json:"source" yaml:"source"`
	Digest    string `msgpack:"digest" json:"digest" yaml:"digest"`
	Group     int    `msgpack:"group" json:"group" yaml:"group"`
	GroupType string `msgpack:"group_type" json:"group_type" yaml:"group_type"`
	Index     int    `msgpack:"index" json:"index" yaml:"index"`
	Offset    int64  `msgpack:"offset" json:"offset" yaml:"offset"`
	Size      uint32 `msgpack:"size" json:"size" yaml:"size"`

	// Header fields, decoded as a compact header. Empty when the file is
	// too short to hold one.
	HasHeader  bool   `msgpack:"has_header" json:"has_header" yaml:"has_header"`
	CodecID    uint16 `msgpack:"codec_id" json:"codec_id" yaml:"codec_id"`
	Codec      string `msgpack:"codec" json:"codec" yaml:"codec"`
	SampleRate uint32 `msgpack:"sample_rate" json:"sample_rate" yaml:"sample_rate"`
	Frequency  uint32 `msgpack:"frequency" json:"frequency" yaml:"frequency"`
}

// Store persists scans and their entries.
type Store interface {
	// PutScan stores a scan and its entries, replacing any earlier scan of
	// the same digest.
	PutScan(ctx context.Context, scan Scan, entries []Entry) error

	// GetScan returns the scan of a digest, or ErrNotFound.
	GetScan(ctx context.Context, digest string) (Scan, error)

	// Get returns one entry, or ErrNotFound.
	Get(ctx context.Context, digest string, group, index int) (Entry, error)

	// List iterates over the entries of a digest in directory order.
	List(ctx context.Context, digest string) iter.Seq2[Entry, error]

	// Scans iterates over all stored scans ordered by digest.
	Scans(ctx context.Context) iter.Seq2[Scan, error]

	// Close releases any resources held by the store.
	Close() error
}

const sep = ":"

func scanKey(digest string) string {
	return "scan" + sep + digest
}

func entryKey(digest string, group, index int) string {
	return fmt.Sprintf("entry%s%s%s%04d%s%07d", sep, digest, sep, group, sep, index)
}

// entryPrefix ends with the separator so that one digest never matches
// another that extends it.
func entryPrefix(digest string) string {
	return "entry" + sep + digest + sep
}

const scanPrefix = "scan" + sep

func validDigest(digest string) error {
	if digest == "" || strings.Contains(digest, sep) {
		return fmt.Errorf("catalog: invalid digest %q", digest)
	}
	return nil
}

func encode(v any) ([]byte, error) {
	b, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("catalog: encode: %w", err)
	}
	return b, nil
}

func decode(b []byte, v any) error {
	if err := msgpack.Unmarshal(b, v); err != nil {
		return fmt.Errorf("catalog: decode: %w", err)
	}
	return nil
}

// keyedValues renders a scan and its entries as key/value pairs.
func keyedValues(scan Scan, entries []Entry) (map[string][]byte, error) {
	if err := validDigest(scan.Digest); err != nil {
		return nil, err
	}
	kvs := make(map[string][]byte, len(entries)+1)
	b, err := encode(scan)
	if err != nil {
		return nil, err
	}
	kvs[scanKey(scan.Digest)] = b
	for _, e := range entries {
		if e.Digest != scan.Digest {
			return nil, fmt.Errorf("catalog: entry digest %q does not match scan %q", e.Digest, scan.Digest)
		}
		b, err := encode(e)
		if err != nil {
			return nil, err
		}
		kvs[entryKey(e.Digest, e.Group, e.Index)] = b
	}
	return kvs, nil
}
