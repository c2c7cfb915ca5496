package sunplus

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestParseStandaloneVariantA(t *testing.T) {
	v := variantA{
		CodecType:      uint16(CodecA3400Pro5Bit),
		OrigSampleSize: 16,
		Reserved3:      0x1234,
		OrigRate:       8000,
		Rate:           0,
		Reserved9:      1,
	}
	payload := []byte{1, 2, 3, 4}
	data := buildStandaloneA(t, NameSunplus, v, payload)
	r := bytes.NewReader(data)

	rec, err := ParseStandalone(r)
	if err != nil {
		t.Fatalf("ParseStandalone: %v", err)
	}
	if rec.Layout != LayoutStandalone {
		t.Errorf("Layout = %v, want standalone", rec.Layout)
	}
	if rec.CodecID != CodecA3400Pro5Bit || rec.Codec() != "A3400Pro5Bit" {
		t.Errorf("codec = %#x %q", rec.CodecID, rec.Codec())
	}
	if rec.Rate != 8000 || rec.SampleRate() != 8000 {
		t.Errorf("Rate = %d, want 8000", rec.Rate)
	}
	if rec.HasFrequency {
		t.Error("standalone record should not carry a frequency")
	}
	if rec.PayloadOffset != HeaderSize+VariantASize {
		t.Errorf("PayloadOffset = %d, want %d", rec.PayloadOffset, HeaderSize+VariantASize)
	}
	if !rec.Variant.HasReserved3 || rec.Variant.Reserved3 != 0x1234 || rec.Variant.Reserved9 != 1 {
		t.Errorf("reserved fields not passed through: %+v", rec.Variant)
	}
	rest, _ := io.ReadAll(r)
	if !bytes.Equal(rest, payload) {
		t.Errorf("cursor not at payload: rest = %x", rest)
	}
}

func TestParseStandaloneVariantB(t *testing.T) {
	v := variantB{
		CodecType: uint16(CodecS480),
		OrigRate:  16000,
		Rate:      11025,
		Reserved7: 9,
	}
	data := buildStandaloneB(t, NameGeneralplus, v, []byte{0xEE})
	rec, err := ParseStandalone(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseStandalone: %v", err)
	}
	if rec.Codec() != "S480" || rec.Rate != 16000 {
		t.Errorf("codec=%q rate=%d", rec.Codec(), rec.Rate)
	}
	if rec.Variant.HasReserved3 {
		t.Error("variant B has no reserved3")
	}
	if rec.Variant.Rate != 11025 || rec.Variant.Reserved7 != 9 {
		t.Errorf("variant = %+v", rec.Variant)
	}
	if rec.PayloadOffset != HeaderSize+VariantBSize {
		t.Errorf("PayloadOffset = %d, want %d", rec.PayloadOffset, HeaderSize+VariantBSize)
	}
	if got := rec.Header.NameString(); got != "GENERALPLUS SP" {
		t.Errorf("NameString = %q", got)
	}
}

func TestParseStandaloneUnknownCodecRendersHex(t *testing.T) {
	data := buildStandaloneA(t, NameSunplus, variantA{CodecType: 0x0d31}, nil)
	rec, err := ParseStandalone(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseStandalone: %v", err)
	}
	if got := rec.Codec(); got != "0d31" {
		t.Errorf("Codec() = %q, want 0d31", got)
	}
}

func TestParseStandaloneErrors(t *testing.T) {
	good := buildStandaloneA(t, NameSunplus, variantA{CodecType: 1, OrigRate: 8000}, nil)

	mutate := func(f func(b []byte)) []byte {
		b := bytes.Clone(good)
		f(b)
		return b
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"magic", mutate(func(b []byte) { b[0] = 0x01 }), ErrMagicMismatch},
		{"name", mutate(func(b []byte) { b[4] = 'X' }), ErrUnknownName},
		{"flag", mutate(func(b []byte) { b[21] = 0x03 }), ErrUnknownFlag},
		{"variant", mutate(func(b []byte) { b[20] = 0x00 }), ErrUnknownVariant},
		{"short header", good[:10], ErrTruncatedRead},
		{"short body", good[:HeaderSize+5], ErrTruncatedRead},
		{"empty", nil, ErrTruncatedRead},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStandalone(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if !IsStructural(err) {
				t.Errorf("IsStructural(%v) = false", err)
			}
		})
	}
}

func TestValidationOrder(t *testing.T) {
	// Bad magic and bad name: magic is reported first.
	b := buildStandaloneA(t, NameSunplus, variantA{}, nil)
	b[0] = 0x11
	b[4] = 'Z'
	b[21] = 9
	if _, err := ParseStandalone(bytes.NewReader(b)); !errors.Is(err, ErrMagicMismatch) {
		t.Fatalf("err = %v, want ErrMagicMismatch", err)
	}
}
