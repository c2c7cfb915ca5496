// Package player plays decoded PCM through the system audio device using
// oto.
//
// oto allows a single audio context per process, fixed to the first sample
// rate it is opened with. Later calls at another rate fail; resample first.
package player

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/gpspeech/gpspeech/pkg/audio/pcm"
)

var (
	mu     sync.Mutex
	otoCtx *oto.Context
	otoFmt pcm.Format
)

// contextOptions maps a PCM format onto oto context options.
func contextOptions(f pcm.Format) (*oto.NewContextOptions, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &oto.NewContextOptions{
		SampleRate:   f.SampleRate,
		ChannelCount: f.Channels,
		Format:       oto.FormatSignedInt16LE,
	}, nil
}

func audioContext(f pcm.Format) (*oto.Context, error) {
	mu.Lock()
	defer mu.Unlock()

	if otoCtx != nil {
		if otoFmt != f {
			return nil, fmt.Errorf("player: audio device already opened as %v, cannot play %v", otoFmt, f)
		}
		return otoCtx, nil
	}
	op, err := contextOptions(f)
	if err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}
	c, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("player: open audio device: %w", err)
	}
	<-ready
	otoCtx, otoFmt = c, f
	return c, nil
}

// Play plays samples and blocks until playback finishes or ctx is done.
func Play(ctx context.Context, samples []byte, f pcm.Format) error {
	c, err := audioContext(f)
	if err != nil {
		return err
	}
	p := c.NewPlayer(bytes.NewReader(samples))
	defer p.Close()

	p.Play()
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for p.IsPlaying() {
		select {
		case <-ctx.Done():
			p.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return p.Err()
}
