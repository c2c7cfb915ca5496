package resampler

import (
	"fmt"
	"math"

	resampling "github.com/tphakala/go-audio-resampling"

	"github.com/gpspeech/gpspeech/pkg/audio/pcm"
)

// Resample converts mono 16-bit little-endian samples from one rate to
// another. Equal rates return the input unchanged.
func Resample(samples []byte, from, to int) ([]byte, error) {
	if from <= 0 || to <= 0 {
		return nil, fmt.Errorf("resampler: invalid rates %d -> %d", from, to)
	}
	if from == to {
		return samples, nil
	}

	r, err := resampling.New(&resampling.Config{
		InputRate:  float64(from),
		OutputRate: float64(to),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create resampler: %w", err)
	}

	in := pcm.BytesInt16(samples)
	input := make([]float64, len(in))
	for i, s := range in {
		input[i] = float64(s) / 32768.0
	}

	output, err := r.Process(input)
	if err != nil {
		return nil, fmt.Errorf("resample error: %w", err)
	}
	// The filter holds back its latency until flushed.
	tail, err := r.Flush()
	if err != nil {
		return nil, fmt.Errorf("resample flush: %w", err)
	}
	output = append(output, tail...)
	if want := expectedLen(len(in), from, to); len(output) > want {
		output = output[:want]
	}

	out := make([]int16, len(output))
	for i, v := range output {
		out[i] = clamp16(v * 32768.0)
	}
	return pcm.Int16Bytes(out), nil
}

// expectedLen is the number of samples n input samples become at the new
// rate, rounded up.
func expectedLen(n, from, to int) int {
	return int((int64(n)*int64(to) + int64(from) - 1) / int64(from))
}

func clamp16(v float64) int16 {
	v = math.Round(v)
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}
