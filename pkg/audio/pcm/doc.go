// Package pcm provides types and utilities for working with PCM (Pulse Code Modulation) audio data.
//
// Speech chips use arbitrary sample rates (11127Hz is common), so a Format
// carries its rate rather than picking from a fixed list. Samples are always
// signed 16-bit little-endian.
//
// Key types:
//   - Format: Sample rate and channel count of 16-bit audio
//   - Chunk: Interface for audio data chunks
//   - DataChunk: Concrete implementation of Chunk for raw audio data
//   - Writer: Interface for writing audio chunks
//   - Buffer: Writer collecting chunks in memory
//
// Example usage:
//
//	format := pcm.L16Mono(11127)
//
//	// Calculate bytes needed for 20ms of audio
//	bytes := format.BytesInDuration(20 * time.Millisecond)
//
//	// Create a data chunk
//	chunk := format.DataChunk(audioData)
package pcm
