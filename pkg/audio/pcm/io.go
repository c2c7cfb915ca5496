package pcm

import (
	"bytes"
	"errors"
	"io"
	"time"
)

// Writer is a writer for chunks of audio data.
type Writer interface {
	Write(Chunk) error
}

var _ Writer = WriteFunc(nil)

// WriteFunc is a function that implements the Writer interface.
type WriteFunc func(Chunk) error

// Write implements the Writer interface.
func (f WriteFunc) Write(c Chunk) error {
	return f(c)
}

// WriteCloser is a writer for chunks of audio data that also implements io.Closer.
type WriteCloser interface {
	Writer
	io.Closer
}

// ChunkWriter wraps an io.Writer to provide a pcm.Writer interface.
// All chunks are written to the underlying writer using WriteTo.
func ChunkWriter(w io.Writer) Writer {
	return &chunkWriter{w: w}
}

type chunkWriter struct {
	w io.Writer
}

func (w *chunkWriter) Write(c Chunk) error {
	_, err := c.WriteTo(w.w)
	return err
}

// Buffer collects written chunks in memory.
type Buffer struct {
	buf bytes.Buffer
}

// Write appends the chunk's bytes.
func (b *Buffer) Write(c Chunk) error {
	_, err := c.WriteTo(&b.buf)
	return err
}

// Bytes returns everything written so far.
func (b *Buffer) Bytes() []byte {
	return b.buf.Bytes()
}

// Copy copies audio data from reader r to writer w using the specified format.
// It reads data in chunks of at least 20ms duration and writes them as DataChunks.
// Chunks always hold whole frames; a partial frame left at the end of r is
// dropped. Returns nil on EOF, or any other error encountered during reading
// or writing.
func Copy(w Writer, r io.Reader, format Format) error {
	frame := format.FrameSize()
	minChunk := int(format.BytesInDuration(20 * time.Millisecond))
	minChunk -= minChunk % frame
	if minChunk < frame {
		minChunk = frame
	}
	buf := make([]byte, 10*minChunk)
	carry := 0
	for {
		n, err := io.ReadAtLeast(r, buf[carry:], minChunk-carry)
		n += carry
		whole := n - n%frame
		if whole > 0 {
			// Copy out: the chunk may be retained by w.
			data := bytes.Clone(buf[:whole])
			if err := w.Write(format.DataChunk(data)); err != nil {
				return err
			}
		}
		carry = copy(buf, buf[whole:n])
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			return err
		}
	}
}
