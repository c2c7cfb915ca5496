package sunplus

import (
	"fmt"
	"io"
	"log/slog"
)

// Detect parses the record named by loc from r, starting at the current
// position of r. loc.Path is not opened; only the record part is used.
//
// Without a record part, Detect tries the standalone header first. If the
// bytes are structurally not a standalone header it rewinds and decodes a
// compact header instead; I/O failures are returned as they are. With a
// record part, Detect parses the ROM directory at the current position,
// seeks to the entry and decodes its compact header. Directory errors are
// never retried.
//
// On success r is positioned at the record payload.
func Detect(r io.ReadSeeker, loc Locator) (*Record, error) {
	if loc.HasRecord {
		rom, err := OpenROM(r)
		if err != nil {
			return nil, err
		}
		return rom.OpenRecord(loc.Group, loc.Index)
	}
	return DetectStandalone(r)
}

// DetectStandalone is Detect for a locator without a record part.
func DetectStandalone(r io.ReadSeeker) (*Record, error) {
	start, err := tell(r)
	if err != nil {
		return nil, err
	}
	rec, err := ParseStandalone(r)
	if err == nil {
		return rec, nil
	}
	if !IsStructural(err) {
		return nil, err
	}
	slog.Debug("sunplus: not a standalone header, trying compact", "offset", start, "reason", err)
	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return nil, fmt.Errorf("sunplus: rewind: %w", err)
	}
	return ParseCompact(r)
}
