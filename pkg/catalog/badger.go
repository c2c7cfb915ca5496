package catalog

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
)

// Badger is a Store backed by BadgerDB v4.
type Badger struct {
	db *badger.DB
}

// BadgerOptions configures the BadgerDB store.
type BadgerOptions struct {
	// Dir is the directory for BadgerDB data files.
	// Required unless InMemory is set.
	Dir string

	// InMemory runs BadgerDB in memory-only mode (no disk persistence).
	InMemory bool

	// Logger sets the badger logger. If nil, badger output is routed to
	// slog with debug and info suppressed.
	Logger badger.Logger
}

// NewBadger opens a BadgerDB-backed Store.
func NewBadger(bopts BadgerOptions) (*Badger, error) {
	if !bopts.InMemory && bopts.Dir == "" {
		return nil, errors.New("catalog: BadgerOptions.Dir is required for on-disk mode")
	}
	dbOpts := badger.DefaultOptions(bopts.Dir)
	if bopts.InMemory {
		dbOpts = dbOpts.WithDir("").WithValueDir("").WithInMemory(true)
	}
	if bopts.Logger != nil {
		dbOpts = dbOpts.WithLogger(bopts.Logger)
	} else {
		dbOpts = dbOpts.WithLogger(slogLogger{})
	}
	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}
	return &Badger{db: db}, nil
}

func (b *Badger) PutScan(_ context.Context, scan Scan, entries []Entry) error {
	kvs, err := keyedValues(scan, entries)
	if err != nil {
		return err
	}

	// Drop entries of an earlier scan that the new one no longer has.
	var stale [][]byte
	prefix := []byte(entryPrefix(scan.Digest))
	err = b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			k := it.Item().KeyCopy(nil)
			if _, ok := kvs[string(k)]; !ok {
				stale = append(stale, k)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	wb := b.db.NewWriteBatch()
	defer wb.Cancel()
	for _, k := range stale {
		if err := wb.Delete(k); err != nil {
			return err
		}
	}
	for k, v := range kvs {
		if err := wb.Set([]byte(k), v); err != nil {
			return err
		}
	}
	return wb.Flush()
}

func (b *Badger) get(key string, v any) error {
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return decode(val, v)
}

func (b *Badger) GetScan(_ context.Context, digest string) (Scan, error) {
	var s Scan
	if err := validDigest(digest); err != nil {
		return s, err
	}
	err := b.get(scanKey(digest), &s)
	return s, err
}

func (b *Badger) Get(_ context.Context, digest string, group, index int) (Entry, error) {
	var e Entry
	if err := validDigest(digest); err != nil {
		return e, err
	}
	err := b.get(entryKey(digest, group, index), &e)
	return e, err
}

func (b *Badger) List(_ context.Context, digest string) iter.Seq2[Entry, error] {
	return scanPrefixed[Entry](b.db, []byte(entryPrefix(digest)))
}

func (b *Badger) Scans(_ context.Context) iter.Seq2[Scan, error] {
	return scanPrefixed[Scan](b.db, []byte(scanPrefix))
}

// scanPrefixed iterates over the decoded values of all keys with prefix.
func scanPrefixed[T any](db *badger.DB, prefix []byte) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		err := db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = prefix
			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				val, err := it.Item().ValueCopy(nil)
				if err == nil {
					var v T
					if err = decode(val, &v); err == nil {
						if !yield(v, nil) {
							return nil
						}
						continue
					}
				}
				if !yield(zero, err) {
					return nil
				}
			}
			return nil
		})
		if err != nil {
			yield(zero, err)
		}
	}
}

func (b *Badger) Close() error {
	return b.db.Close()
}

// slogLogger routes badger warnings and errors to slog.
type slogLogger struct{}

func (slogLogger) Errorf(f string, v ...interface{}) {
	slog.Error("badger", "msg", sprintf(f, v...))
}
func (slogLogger) Warningf(f string, v ...interface{}) {
	slog.Warn("badger", "msg", sprintf(f, v...))
}
func (slogLogger) Infof(string, ...interface{})  {}
func (slogLogger) Debugf(string, ...interface{}) {}

func sprintf(f string, v ...interface{}) string {
	return strings.TrimRight(fmt.Sprintf(f, v...), "\n")
}

var _ Store = (*Badger)(nil)
