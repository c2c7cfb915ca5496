// Package wav writes PCM audio as RIFF/WAVE files.
//
// The RIFF header carries the data length up front. Writer therefore
// buffers all chunks and emits header and data on Close, which lets it
// target pipes and standard output that cannot seek back.
package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/gpspeech/gpspeech/pkg/audio/pcm"
)

// HeaderSize is the size of the canonical RIFF/fmt/data header.
const HeaderSize = 44

const formatPCM = 1

// FileHeader is the canonical 44-byte RIFF/WAVE header.
type FileHeader struct {
	RiffID        [4]byte
	RiffSize      uint32
	WaveID        [4]byte
	FmtID         [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataID        [4]byte
	DataSize      uint32
}

// Writer is a pcm.WriteCloser producing a WAVE file on Close.
type Writer struct {
	w      io.Writer
	format pcm.Format
	data   bytes.Buffer
	closed bool
}

var _ pcm.WriteCloser = (*Writer)(nil)

// NewWriter returns a writer that emits f-formatted audio to w.
func NewWriter(w io.Writer, f pcm.Format) *Writer {
	return &Writer{w: w, format: f}
}

// Write buffers a chunk. Chunks in another format are rejected.
func (w *Writer) Write(c pcm.Chunk) error {
	if w.closed {
		return fmt.Errorf("wav: write after close")
	}
	if c.Format() != w.format {
		return fmt.Errorf("wav: chunk format %v does not match %v", c.Format(), w.format)
	}
	_, err := c.WriteTo(&w.data)
	return err
}

// Close writes the header and buffered samples. It does not close the
// underlying writer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.format.Validate(); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	if uint64(w.data.Len())+HeaderSize-8 > math.MaxUint32 {
		return fmt.Errorf("wav: %d bytes of audio exceed the RIFF size limit", w.data.Len())
	}
	h := NewHeader(w.format, uint32(w.data.Len()))
	if err := binary.Write(w.w, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("wav: write header: %w", err)
	}
	if _, err := w.w.Write(w.data.Bytes()); err != nil {
		return fmt.Errorf("wav: write data: %w", err)
	}
	return nil
}

// NewHeader builds the canonical header for dataSize bytes of f-formatted audio.
func NewHeader(f pcm.Format, dataSize uint32) FileHeader {
	return FileHeader{
		RiffID:        [4]byte{'R', 'I', 'F', 'F'},
		RiffSize:      HeaderSize - 8 + dataSize,
		WaveID:        [4]byte{'W', 'A', 'V', 'E'},
		FmtID:         [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		AudioFormat:   formatPCM,
		Channels:      uint16(f.Channels),
		SampleRate:    uint32(f.SampleRate),
		ByteRate:      uint32(f.BytesRate()),
		BlockAlign:    uint16(f.FrameSize()),
		BitsPerSample: uint16(f.Depth()),
		DataID:        [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}
}

// Encode writes samples as a complete WAVE file.
func Encode(w io.Writer, f pcm.Format, samples []byte) error {
	ww := NewWriter(w, f)
	if err := ww.Write(f.DataChunk(samples)); err != nil {
		return err
	}
	return ww.Close()
}
