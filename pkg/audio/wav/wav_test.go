package wav

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/gpspeech/gpspeech/pkg/audio/pcm"
)

func TestEncode(t *testing.T) {
	f := pcm.L16Mono(11127)
	samples := pcm.Int16Bytes([]int16{1, -2, 3})

	var out bytes.Buffer
	if err := Encode(&out, f, samples); err != nil {
		t.Fatal(err)
	}
	b := out.Bytes()
	if len(b) != HeaderSize+len(samples) {
		t.Fatalf("len = %d", len(b))
	}
	if string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" || string(b[12:16]) != "fmt " || string(b[36:40]) != "data" {
		t.Errorf("bad chunk ids: %q", b[:40])
	}
	le := binary.LittleEndian
	checks := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"riff size", le.Uint32(b[4:]), uint32(36 + len(samples))},
		{"format", uint32(le.Uint16(b[20:])), 1},
		{"channels", uint32(le.Uint16(b[22:])), 1},
		{"rate", le.Uint32(b[24:]), 11127},
		{"byte rate", le.Uint32(b[28:]), 22254},
		{"block align", uint32(le.Uint16(b[32:])), 2},
		{"bits", uint32(le.Uint16(b[34:])), 16},
		{"data size", le.Uint32(b[40:]), uint32(len(samples))},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}
	if !bytes.Equal(b[HeaderSize:], samples) {
		t.Error("sample data differs")
	}
}

func TestWriterRejectsMismatchedChunks(t *testing.T) {
	w := NewWriter(&bytes.Buffer{}, pcm.L16Mono(8000))
	if err := w.Write(pcm.L16Mono(16000).DataChunk([]byte{0, 0})); err == nil {
		t.Error("expected format mismatch error")
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Write(pcm.L16Mono(8000).DataChunk(nil)); err == nil {
		t.Error("expected write after close error")
	}
}

func TestWriterInvalidFormat(t *testing.T) {
	w := NewWriter(&bytes.Buffer{}, pcm.L16Mono(0))
	if err := w.Close(); err == nil {
		t.Error("expected invalid format error")
	}
}

func TestEmptyFile(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, pcm.L16Mono(8000))
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if out.Len() != HeaderSize {
		t.Errorf("len = %d, want %d", out.Len(), HeaderSize)
	}
}
