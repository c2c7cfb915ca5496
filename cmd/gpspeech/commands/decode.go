package commands

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gpspeech/gpspeech/pkg/audio/codec/sacm"
	"github.com/gpspeech/gpspeech/pkg/audio/pcm"
	"github.com/gpspeech/gpspeech/pkg/audio/resampler"
	"github.com/gpspeech/gpspeech/pkg/audio/wav"
	"github.com/gpspeech/gpspeech/pkg/cli"
)

var (
	decodeRate     int
	decodeResample int
	decodeRaw      bool
)

func newDecodeCmd(use string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: "Decode a record to WAV",
		Long: `Decode a speech record to a mono 16-bit WAV file.

The WAV sample rate is the rate declared in the record header. --rate (or
the profile's default_rate) overrides it without converting; --resample
converts the decoded audio to another rate. --raw writes the bare samples
(signed 16-bit little-endian) without a WAV header.

End markers found by the codec are printed to stderr as
"End data <sample>:<command> aa.bb, ...".

Examples:
  gpspeech decode firmware.bin:0,3 intro.wav
  gpspeech decode voice.bin - --resample 16000 | aplay
  gpspeech decode voice.bin - --raw | aplay -f S16_LE -r 8000`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runDecode,
	}
	cmd.Flags().IntVar(&decodeRate, "rate", 0, "sample rate to decode at (default: declared rate)")
	cmd.Flags().IntVar(&decodeResample, "resample", 0, "resample the output to this rate")
	cmd.Flags().BoolVar(&decodeRaw, "raw", false, "write bare PCM samples instead of WAV")
	return cmd
}

func runDecode(cmd *cobra.Command, args []string) error {
	loc, err := parseLocator(args[0])
	if err != nil {
		return err
	}
	var arg string
	if len(args) > 1 {
		arg = args[1]
	}
	ext := ".wav"
	if decodeRaw {
		ext = ".pcm"
	}
	out, err := outputPath(arg, loc, ext)
	if err != nil {
		return err
	}
	rate, err := effectiveRate(decodeRate)
	if err != nil {
		return err
	}

	r := &resolver{base: baseOffset}
	rec, err := r.resolve(loc)
	if err != nil {
		return err
	}
	d, err := decodeRecord(rec, rate, decodeResample)
	if err != nil {
		return err
	}
	write := writeWAV
	if decodeRaw {
		write = writeRaw
	}
	if err := write(d, out); err != nil {
		return err
	}
	if out != "" && out != "-" {
		cli.PrintSuccess("Decoded %s (%s, %v) to %s", loc, rec.Record.Codec(), d.Format.Duration(int64(len(d.Samples))), out)
	}
	return nil
}

// decoded is the PCM of one record.
type decoded struct {
	Format  pcm.Format
	Samples []byte
	Markers []sacm.EndMarker
}

// effectiveRate returns the decode rate override: the flag, then the
// profile default, then 0 for the declared rate.
func effectiveRate(flag int) (int, error) {
	if flag < 0 {
		return 0, fmt.Errorf("--rate must not be negative")
	}
	if flag > 0 {
		return flag, nil
	}
	p, err := getProfile()
	if err != nil {
		return 0, err
	}
	return p.DefaultRate, nil
}

// decodeRecord runs the codec of rec over its payload. rate overrides the
// declared rate when non-zero; resample converts the result when non-zero.
func decodeRecord(rec *record, rate, resample int) (*decoded, error) {
	hdr, err := rec.header()
	if err != nil {
		return nil, err
	}
	if rate == 0 {
		rate = int(hdr.SampleRate())
	}
	if rate <= 0 {
		return nil, fmt.Errorf("%s: record declares no sample rate, use --rate", rec.Locator)
	}
	format := pcm.L16Mono(rate)

	var buf pcm.Buffer
	chunks := 0
	sink := pcm.WriteFunc(func(c pcm.Chunk) error {
		chunks++
		return buf.Write(c)
	})
	markers, err := sacm.Decode(hdr.CodecID, format, bytes.NewReader(rec.Payload), sink)
	if err != nil {
		return nil, fmt.Errorf("%s: codec %s: %w", rec.Locator, hdr.Codec(), err)
	}
	d := &decoded{Format: format, Samples: buf.Bytes(), Markers: markers}
	printVerbose("%s: decoded %d samples in %d chunks at %d Hz", rec.Locator, format.Samples(int64(len(d.Samples))), chunks, rate)

	if resample > 0 && resample != rate {
		out, err := resampler.Resample(d.Samples, rate, resample)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rec.Locator, err)
		}
		d.Samples = out
		d.Format = pcm.L16Mono(resample)
	}
	for _, m := range markers {
		fmt.Fprintf(cli.Stderr, "End data %s\n", m)
	}
	return d, nil
}

func writeWAV(d *decoded, out string) error {
	w, closeOut, err := createOutput(out)
	if err != nil {
		return err
	}
	if err := wav.Encode(w, d.Format, d.Samples); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func writeRaw(d *decoded, out string) error {
	w, closeOut, err := createOutput(out)
	if err != nil {
		return err
	}
	if err := pcm.ChunkWriter(w).Write(d.Format.DataChunk(d.Samples)); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}
