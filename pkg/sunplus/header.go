package sunplus

import (
	"bytes"
	"fmt"
	"io"
)

// Standalone header constants.
const (
	HeaderMagic uint32 = 0xFF00FF00
	HeaderFlag  uint8  = 0x02

	VariantA uint8 = 0xFF
	VariantB uint8 = 0xFE
)

// Accepted values of the 16-byte name field.
var (
	NameSunplus     = [16]byte{'S', 'U', 'N', 'P', 'L', 'U', 'S', ' ', 'S', 'P', 'E', 'E', 'C', 'H'}
	NameGeneralplus = [16]byte{'G', 'E', 'N', 'E', 'R', 'A', 'L', 'P', 'L', 'U', 'S', ' ', 'S', 'P'}
)

// Header is the 22-byte prefix of a standalone record.
type Header struct {
	Magic         uint32   `json:"magic" yaml:"magic"`
	Name          [16]byte `json:"-" yaml:"-"`
	Discriminator uint8    `json:"discriminator" yaml:"discriminator"`
	Flag          uint8    `json:"flag" yaml:"flag"`
}

// NameString returns the name field without its NUL padding.
func (h *Header) NameString() string {
	return string(bytes.TrimRight(h.Name[:], "\x00"))
}

// Variant holds the fields following a standalone header. The reserved
// fields are carried through unchanged; their meaning is unknown.
type Variant struct {
	CodecType      uint16 `json:"codec_type" yaml:"codec_type"`
	OrigSampleSize uint16 `json:"orig_sample_size" yaml:"orig_sample_size"`
	Reserved3      uint16 `json:"reserved3" yaml:"reserved3"`
	OrigRate       uint32 `json:"orig_rate" yaml:"orig_rate"`
	Rate           uint32 `json:"rate" yaml:"rate"`
	Reserved6      uint16 `json:"reserved6" yaml:"reserved6"`
	Reserved7      uint8  `json:"reserved7" yaml:"reserved7"`
	Reserved8      uint32 `json:"reserved8" yaml:"reserved8"`
	Reserved9      uint16 `json:"reserved9" yaml:"reserved9"`
	Reserved10     uint8  `json:"reserved10" yaml:"reserved10"`

	// HasReserved3 is false for variant B, which has no reserved3 field.
	HasReserved3 bool `json:"-" yaml:"-"`
}

// variantA is the on-disk body for discriminator 0xFF.
type variantA struct {
	CodecType      uint16
	OrigSampleSize uint16
	Reserved3      uint16
	OrigRate       uint32
	Rate           uint32
	Reserved6      uint16
	Reserved7      uint8
	Reserved8      uint32
	Reserved9      uint16
	Reserved10     uint8
}

// variantB is the on-disk body for discriminator 0xFE.
type variantB struct {
	CodecType      uint16
	OrigSampleSize uint16
	OrigRate       uint32
	Rate           uint32
	Reserved6      uint16
	Reserved7      uint8
	Reserved8      uint32
	Reserved9      uint16
	Reserved10     uint8
	_              [4]byte
}

// Sizes of the on-disk structures, in bytes.
const (
	HeaderSize   = 22
	VariantASize = 24
	VariantBSize = 26
)

// ParseStandalone parses a self-describing header at the current position
// of r. On success the cursor is left at the payload.
//
// ParseStandalone does not rewind on failure; callers that want to try
// another layout must seek back themselves.
func ParseStandalone(r io.ReadSeeker) (*Record, error) {
	start, err := tell(r)
	if err != nil {
		return nil, err
	}

	var h Header
	if err := readStruct(r, "standalone header", &h); err != nil {
		return nil, err
	}
	if h.Magic != HeaderMagic {
		return nil, fmt.Errorf("%w: got %08x", ErrMagicMismatch, h.Magic)
	}
	if h.Name != NameSunplus && h.Name != NameGeneralplus {
		return nil, fmt.Errorf("%w: %q", ErrUnknownName, h.NameString())
	}
	if h.Flag != HeaderFlag {
		return nil, fmt.Errorf("%w: %02x", ErrUnknownFlag, h.Flag)
	}

	var v Variant
	switch h.Discriminator {
	case VariantA:
		var a variantA
		if err := readStruct(r, "variant A", &a); err != nil {
			return nil, err
		}
		v = Variant{
			CodecType:      a.CodecType,
			OrigSampleSize: a.OrigSampleSize,
			Reserved3:      a.Reserved3,
			OrigRate:       a.OrigRate,
			Rate:           a.Rate,
			Reserved6:      a.Reserved6,
			Reserved7:      a.Reserved7,
			Reserved8:      a.Reserved8,
			Reserved9:      a.Reserved9,
			Reserved10:     a.Reserved10,
			HasReserved3:   true,
		}
	case VariantB:
		var b variantB
		if err := readStruct(r, "variant B", &b); err != nil {
			return nil, err
		}
		v = Variant{
			CodecType:      b.CodecType,
			OrigSampleSize: b.OrigSampleSize,
			OrigRate:       b.OrigRate,
			Rate:           b.Rate,
			Reserved6:      b.Reserved6,
			Reserved7:      b.Reserved7,
			Reserved8:      b.Reserved8,
			Reserved9:      b.Reserved9,
			Reserved10:     b.Reserved10,
		}
	default:
		return nil, fmt.Errorf("%w: %02x", ErrUnknownVariant, h.Discriminator)
	}

	end, err := tell(r)
	if err != nil {
		return nil, err
	}
	return &Record{
		Layout:        LayoutStandalone,
		CodecID:       v.CodecType,
		Rate:          v.OrigRate,
		Offset:        start,
		PayloadOffset: end,
		Header:        &h,
		Variant:       &v,
	}, nil
}
