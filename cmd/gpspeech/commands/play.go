package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/gpspeech/gpspeech/pkg/audio/pcm"
	"github.com/gpspeech/gpspeech/pkg/cli"
)

// Player plays decoded samples and blocks until playback ends.
type Player func(ctx context.Context, samples []byte, f pcm.Format) error

// playback is installed by binaries linked with an audio backend. gpdecode
// and "noaudio" builds leave it nil so they link without cgo.
var playback Player

// SetPlayer installs the audio backend used by the play command.
func SetPlayer(p Player) {
	playback = p
}

var errNoPlayback = errors.New("playback is not available in this build")

var (
	playRate     int
	playResample int
)

var playCmd = &cobra.Command{
	Use:   "play <locator>",
	Short: "Decode a record and play it",
	Long: `Decode a record and play it on the default audio device.

Examples:
  gpspeech play firmware.bin:0,3
  gpspeech play voice.bin --resample 44100`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if playback == nil {
			return errNoPlayback
		}
		loc, err := parseLocator(args[0])
		if err != nil {
			return err
		}
		rate, err := effectiveRate(playRate)
		if err != nil {
			return err
		}
		r := &resolver{base: baseOffset}
		rec, err := r.resolve(loc)
		if err != nil {
			return err
		}
		d, err := decodeRecord(rec, rate, playResample)
		if err != nil {
			return err
		}
		cli.PrintInfo("Playing %s (%s, %v)", loc, d.Format, d.Format.Duration(int64(len(d.Samples))))
		return playback(cmd.Context(), d.Samples, d.Format)
	},
}

func init() {
	playCmd.Flags().IntVar(&playRate, "rate", 0, "sample rate to decode at (default: declared rate)")
	playCmd.Flags().IntVar(&playResample, "resample", 0, "resample before playing")
}
