// Package audio provides audio processing utilities.
//
// This package serves as an umbrella for audio-related sub-packages:
//
//   - pcm: 16-bit PCM formats, chunks and writers
//   - wav: RIFF/WAVE output
//   - codec/sacm: speech codec registry and decoder boundary
//   - resampler: sample rate conversion
//   - player: playback through the system audio device
//
// Example usage:
//
//	import (
//	    "github.com/gpspeech/gpspeech/pkg/audio/pcm"
//	    "github.com/gpspeech/gpspeech/pkg/audio/wav"
//	)
//
//	format := pcm.L16Mono(11127)
//	err := wav.Encode(os.Stdout, format, samples)
package audio
