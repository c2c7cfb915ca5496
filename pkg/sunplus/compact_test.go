package sunplus

import (
	"bytes"
	"errors"
	"testing"
)

func TestParseCompact(t *testing.T) {
	data := []byte{0xa2, 0x05, 0x31, 0x0d, 0x21, 0x00, 0x00, 0x00, 0x77}
	r := bytes.NewReader(data)

	rec, err := ParseCompact(r)
	if err != nil {
		t.Fatalf("ParseCompact: %v", err)
	}
	if rec.Compact.FreqCode != 0x05a2 || rec.CodecID != 0x0d31 || rec.Rate != 0x21 {
		t.Errorf("fields = %+v", rec.Compact)
	}
	if want := uint32(0x1000-0x05a2) * 22255; rec.Frequency != want || !rec.HasFrequency {
		t.Errorf("Frequency = %d, want %d", rec.Frequency, want)
	}
	if rec.Codec() != "0d31" {
		t.Errorf("Codec() = %q", rec.Codec())
	}
	if rec.PayloadOffset != CompactSize {
		t.Errorf("PayloadOffset = %d", rec.PayloadOffset)
	}
	if b, _ := r.ReadByte(); b != 0x77 {
		t.Errorf("cursor not at payload, next byte %#x", b)
	}
}

func TestParseCompactFirmwareSample(t *testing.T) {
	// Entry seen in a GPCD9T dump: 16MHz clock, A3400Pro 5-bit, 11127Hz.
	rec, err := ParseCompact(bytes.NewReader([]byte{0x31, 0x0d, 0x21, 0x00, 0x77, 0x2b, 0x00, 0x00}))
	if err != nil {
		t.Fatalf("ParseCompact: %v", err)
	}
	if rec.Codec() != "A3400Pro5Bit" || rec.Rate != 11127 || rec.Frequency != 719*22255 {
		t.Errorf("got codec=%q rate=%d freq=%d", rec.Codec(), rec.Rate, rec.Frequency)
	}
}

func TestParseCompactShort(t *testing.T) {
	_, err := ParseCompact(bytes.NewReader([]byte{1, 2, 3}))
	if !errors.Is(err, ErrTruncatedRead) {
		t.Fatalf("err = %v, want ErrTruncatedRead", err)
	}
}
