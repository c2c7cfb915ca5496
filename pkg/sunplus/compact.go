package sunplus

import "io"

// CompactHeader is the header of a record located through a ROM directory.
type CompactHeader struct {
	FreqCode  uint16  `json:"freq_code" yaml:"freq_code"`
	CodecType uint16  `json:"codec_type" yaml:"codec_type"`
	Rate      uint16  `json:"rate" yaml:"rate"`
	_         [2]byte `json:"-" yaml:"-"`
}

// CompactSize is the number of bytes consumed by a compact header,
// including its two reserved bytes.
const CompactSize = 8

// ParseCompact decodes a compact header at the current position of r.
//
// There is nothing to validate, so any 8 bytes decode successfully. A
// result from ParseCompact says the bytes could be read as a compact
// header, not that they were one.
func ParseCompact(r io.ReadSeeker) (*Record, error) {
	start, err := tell(r)
	if err != nil {
		return nil, err
	}
	var h CompactHeader
	if err := readStruct(r, "compact header", &h); err != nil {
		return nil, err
	}
	return &Record{
		Layout:        LayoutCompact,
		CodecID:       h.CodecType,
		Rate:          uint32(h.Rate),
		Frequency:     DecodeFrequency(h.FreqCode),
		HasFrequency:  true,
		Offset:        start,
		PayloadOffset: start + CompactSize,
		Compact:       &h,
	}, nil
}
