package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gpspeech/gpspeech/pkg/sunplus"
)

// errNoHeader is returned for container entries too short to hold a
// compact header. Their bytes can still be extracted.
var errNoHeader = errors.New("entry is shorter than a record header")

// record is a located speech record read into memory.
type record struct {
	Locator sunplus.Locator

	// Record is nil for container entries without a header.
	Record *sunplus.Record

	// Offset is the file offset of the record.
	Offset int64

	// Data is the whole record: the directory entry for container
	// records, everything from the base to EOF for standalone ones.
	Data []byte

	// Payload is Data without the header.
	Payload []byte
}

// resolver turns locators into records. With a cache, container
// directories are parsed once per path.
type resolver struct {
	base  int64
	cache *sunplus.DirCache
}

// header returns the parsed header, or errNoHeader.
func (r *record) header() (*sunplus.Record, error) {
	if r.Record == nil {
		return nil, fmt.Errorf("%s: %w (%d bytes)", r.Locator, errNoHeader, len(r.Data))
	}
	return r.Record, nil
}

func (r *resolver) resolve(loc sunplus.Locator) (*record, error) {
	if loc.HasRecord {
		return r.resolveEntry(loc)
	}
	return r.resolveStandalone(loc)
}

func (r *resolver) resolveStandalone(loc sunplus.Locator) (*record, error) {
	f, err := os.Open(loc.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if _, err := f.Seek(r.base, io.SeekStart); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", loc.Path, err)
	}
	rec, err := sunplus.DetectStandalone(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", loc, err)
	}
	// Offsets are relative to data; report them against the file.
	rec.Offset += r.base
	rec.PayloadOffset += r.base
	return &record{
		Locator: loc,
		Record:  rec,
		Offset:  rec.Offset,
		Data:    data,
		Payload: data[rec.PayloadOffset-r.base:],
	}, nil
}

func (r *resolver) resolveEntry(loc sunplus.Locator) (*record, error) {
	rom, release, err := r.openROM(loc.Path)
	if err != nil {
		return nil, err
	}
	defer release()

	off, err := rom.Resolve(loc.Group, loc.Index)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", loc, err)
	}
	data, err := rom.Read(loc.Group, loc.Index)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", loc, err)
	}
	rec := &record{Locator: loc, Offset: off, Data: data}
	if len(data) < sunplus.CompactSize {
		return rec, nil
	}
	if rec.Record, err = rom.OpenRecord(loc.Group, loc.Index); err != nil {
		return nil, fmt.Errorf("%s: %w", loc, err)
	}
	rec.Payload = data[sunplus.CompactSize:]
	return rec, nil
}

// openROM parses the container directory of path at the resolver base.
// release closes the file unless the directory is owned by the cache.
func (r *resolver) openROM(path string) (*sunplus.ROM, func(), error) {
	if r.cache != nil {
		rom, err := r.cache.Get(path, r.base, func() (io.ReadSeeker, error) {
			return os.Open(path)
		})
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		return rom, func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if _, err := f.Seek(r.base, io.SeekStart); err != nil {
		f.Close()
		return nil, nil, err
	}
	rom, err := sunplus.OpenROM(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return rom, func() { f.Close() }, nil
}

// parseLocator parses a locator argument.
func parseLocator(s string) (sunplus.Locator, error) {
	return sunplus.ParseLocator(s)
}

// defaultName derives an output file name from a locator, e.g.
// "firmware_g0_3.wav".
func defaultName(loc sunplus.Locator, ext string) string {
	name := strings.TrimSuffix(filepath.Base(loc.Path), filepath.Ext(loc.Path))
	if loc.HasRecord {
		name = fmt.Sprintf("%s_g%d_%d", name, loc.Group, loc.Index)
	}
	return name + ext
}

// outputPath picks where a command writes its data: an explicit argument,
// then -o, then the profile output directory, then stdout ("").
func outputPath(arg string, loc sunplus.Locator, ext string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	if outputFile != "" {
		return outputFile, nil
	}
	p, err := getProfile()
	if err != nil {
		return "", err
	}
	if p.OutputDir != "" {
		if err := os.MkdirAll(p.OutputDir, 0755); err != nil {
			return "", err
		}
		return filepath.Join(p.OutputDir, defaultName(loc, ext)), nil
	}
	return "", nil
}
