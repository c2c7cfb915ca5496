package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gpspeech/gpspeech/cmd/gpspeech/internal/build"
	"github.com/gpspeech/gpspeech/pkg/audio/codec/sacm"
	"github.com/gpspeech/gpspeech/pkg/sunplus"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if outputJSON || outputFormat != "" {
			return outputResult(build.Get(), "")
		}
		fmt.Println(build.String(appName))
		if verbose {
			fmt.Printf("  config:   %s\n", getConfig().Path())
			var codecs []string
			for _, id := range sacm.Codecs() {
				codecs = append(codecs, sunplus.CodecName(id))
			}
			fmt.Printf("  decoders: %v\n", codecs)
		}
		return nil
	},
}
