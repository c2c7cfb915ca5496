package sacm

import (
	"fmt"
	"io"

	"github.com/gpspeech/gpspeech/pkg/audio/pcm"
)

// Codec types stored as plain signed 16-bit little-endian samples.
const (
	CodecPCM        uint16 = 0x40
	CodecHWPCM16Bit uint16 = 0x83
)

func init() {
	Register(CodecPCM, NewRaw)
	Register(CodecHWPCM16Bit, NewRaw)
}

// NewRaw returns a decoder that copies 16-bit samples through unchanged.
// A trailing partial frame is dropped.
func NewRaw(format pcm.Format) Decoder {
	return DecoderFunc(func(r io.Reader, w pcm.Writer) ([]EndMarker, error) {
		if err := pcm.Copy(w, r, format); err != nil {
			return nil, fmt.Errorf("sacm: raw: %w", err)
		}
		return nil, nil
	})
}
