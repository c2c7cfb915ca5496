package resampler

import (
	"bytes"
	"math"
	"testing"

	"github.com/gpspeech/gpspeech/pkg/audio/pcm"
)

func sine(rate, n int) []byte {
	s := make([]int16, n)
	for i := range s {
		s[i] = int16(8000 * math.Sin(2*math.Pi*440*float64(i)/float64(rate)))
	}
	return pcm.Int16Bytes(s)
}

func TestResampleSameRate(t *testing.T) {
	in := sine(8000, 100)
	out, err := Resample(in, 8000, 8000)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(in, out) {
		t.Error("same-rate resample changed data")
	}
}

func TestResampleInvalid(t *testing.T) {
	if _, err := Resample(nil, 0, 8000); err == nil {
		t.Error("expected error for zero input rate")
	}
	if _, err := Resample(nil, 8000, -1); err == nil {
		t.Error("expected error for negative output rate")
	}
}

func TestResampleLength(t *testing.T) {
	tests := []struct {
		from, to, n int
	}{
		{8000, 16000, 800},
		{11127, 16000, 11127},
		{16000, 8000, 1600},
		{8000, 44100, 160},
	}
	for _, tt := range tests {
		out, err := Resample(sine(tt.from, tt.n), tt.from, tt.to)
		if err != nil {
			t.Fatalf("%d -> %d: %v", tt.from, tt.to, err)
		}
		if len(out)%2 != 0 {
			t.Fatalf("%d -> %d: odd byte count %d", tt.from, tt.to, len(out))
		}
		got := len(out) / 2
		want := tt.n * tt.to / tt.from
		if got < want*95/100 || got > want+1 {
			t.Errorf("%d -> %d: %d samples, want about %d", tt.from, tt.to, got, want)
		}
	}
}

func TestExpectedLen(t *testing.T) {
	if got := expectedLen(800, 8000, 16000); got != 1600 {
		t.Errorf("expectedLen(800, 8000, 16000) = %d", got)
	}
	if got := expectedLen(3, 16000, 8000); got != 2 {
		t.Errorf("expectedLen(3, 16000, 8000) = %d", got)
	}
}

func TestClamp16(t *testing.T) {
	if clamp16(1e9) != math.MaxInt16 || clamp16(-1e9) != math.MinInt16 || clamp16(12.4) != 12 {
		t.Error("clamp16 out of range handling")
	}
}
