package sunplus

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Layout identifies which header shape a record was parsed with.
type Layout int

const (
	// LayoutStandalone is the self-describing 0xFF00FF00 header.
	LayoutStandalone Layout = iota + 1
	// LayoutCompact is the 8-byte header used by ROM container entries.
	LayoutCompact
)

func (l Layout) String() string {
	switch l {
	case LayoutStandalone:
		return "standalone"
	case LayoutCompact:
		return "compact"
	}
	return fmt.Sprintf("layout(%d)", int(l))
}

// MarshalText implements encoding.TextMarshaler so that layouts render by
// name in YAML and JSON output.
func (l Layout) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Record is the normalized result of parsing either header shape.
type Record struct {
	Layout Layout `json:"layout" yaml:"layout"`

	// CodecID is the codec type; see CodecName.
	CodecID uint16 `json:"codec_id" yaml:"codec_id"`

	// Rate is the sample rate declared in the header. For standalone
	// records this is the original rate of variant A/B.
	Rate uint32 `json:"rate" yaml:"rate"`

	// Frequency is derived from the compact header's frequency code.
	// HasFrequency is false for standalone records.
	Frequency    uint32 `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	HasFrequency bool   `json:"-" yaml:"-"`

	// Offset is the stream offset of the header, PayloadOffset the offset
	// immediately following it.
	Offset        int64 `json:"offset" yaml:"offset"`
	PayloadOffset int64 `json:"payload_offset" yaml:"payload_offset"`

	Header  *Header        `json:"header,omitempty" yaml:"header,omitempty"`
	Variant *Variant       `json:"variant,omitempty" yaml:"variant,omitempty"`
	Compact *CompactHeader `json:"compact,omitempty" yaml:"compact,omitempty"`
}

// Codec returns the codec name, or the codec id in hex if unknown.
func (r *Record) Codec() string {
	return CodecName(r.CodecID)
}

// SampleRate returns the sample rate declared by the header.
func (r *Record) SampleRate() uint32 {
	return r.Rate
}

// SeekPayload positions s at the start of the compressed payload.
func (r *Record) SeekPayload(s io.Seeker) error {
	if _, err := s.Seek(r.PayloadOffset, io.SeekStart); err != nil {
		return fmt.Errorf("sunplus: seek payload: %w", err)
	}
	return nil
}

// readStruct reads a packed little-endian structure. Short reads are
// reported as ErrTruncatedRead.
func readStruct(r io.Reader, what string, v any) error {
	if err := binary.Read(r, binary.LittleEndian, v); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: %s", ErrTruncatedRead, what)
		}
		return fmt.Errorf("sunplus: read %s: %w", what, err)
	}
	return nil
}

func tell(s io.Seeker) (int64, error) {
	pos, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("sunplus: tell: %w", err)
	}
	return pos, nil
}
