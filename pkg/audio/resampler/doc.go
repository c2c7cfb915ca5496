// Package resampler converts mono 16-bit PCM between sample rates using
// the pure Go go-audio-resampling library.
//
// Example usage:
//
//	out, err := resampler.Resample(samples, 11127, 16000)
//	if err != nil {
//	    log.Fatal(err)
//	}
package resampler
