package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gpspeech/gpspeech/pkg/sunplus"
)

// Digest returns the hex SHA-256 of everything read from r.
func Digest(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("catalog: digest: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Index builds a scan summary and one entry per file of rom. Files long
// enough to hold a compact header have it decoded; nothing proves the
// bytes really are one, so the entry only records what they read as.
func Index(ctx context.Context, rom *sunplus.ROM, source, digest string) (Scan, []Entry, error) {
	scan := Scan{
		ID:     uuid.NewString(),
		Source: source,
		Digest: digest,
		Base:   rom.Base(),
		At:     time.Now().UTC(),
	}
	var entries []Entry
	for _, g := range rom.Groups() {
		scan.Groups++
		for i, f := range g.Files {
			if err := ctx.Err(); err != nil {
				return Scan{}, nil, err
			}
			e := Entry{
				Source:    source,
				Digest:    digest,
				Group:     g.Index,
				GroupType: g.Name,
				Index:     i,
				Offset:    rom.Base() + int64(f.Offset),
				Size:      f.Size,
			}
			if f.Size >= sunplus.CompactSize {
				rec, err := rom.OpenRecord(g.Index, i)
				if err != nil {
					return Scan{}, nil, fmt.Errorf("catalog: group %d file %d: %w", g.Index, i, err)
				}
				e.HasHeader = true
				e.CodecID = rec.CodecID
				e.Codec = rec.Codec()
				e.SampleRate = rec.SampleRate()
				e.Frequency = rec.Frequency
			}
			entries = append(entries, e)
			scan.Files++
		}
	}
	slog.Debug("catalog: indexed", "source", source, "groups", scan.Groups, "files", scan.Files)
	return scan, entries, nil
}
