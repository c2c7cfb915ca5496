package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gpspeech/gpspeech/pkg/cli"
)

var extractPayload bool

var extractCmd = &cobra.Command{
	Use:   "extract <locator>",
	Short: "Write the raw bytes of a record",
	Long: `Write the raw bytes of a record to stdout, -o, or the profile's
output directory.

For container entries the bytes are exactly the directory entry. With
--payload the header is stripped.

Examples:
  gpspeech extract firmware.bin:0,3 -o rec3.bin
  gpspeech extract firmware.bin:0,3 --payload | xxd | head`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := parseLocator(args[0])
		if err != nil {
			return err
		}
		r := &resolver{base: baseOffset}
		rec, err := r.resolve(loc)
		if err != nil {
			return err
		}
		out, err := outputPath("", loc, ".bin")
		if err != nil {
			return err
		}
		n, err := writeExtract(rec, out, extractPayload)
		if err != nil {
			return err
		}
		if out != "" && out != "-" {
			cli.PrintSuccess("Wrote %s to %s", cli.FormatBytes(int64(n)), out)
		}
		return nil
	},
}

func writeExtract(rec *record, out string, payload bool) (int, error) {
	data := rec.Data
	if payload {
		data = rec.Payload
	}
	printVerbose("%s: %d bytes at 0x%x", rec.Locator, len(data), rec.Offset)
	if err := cli.OutputBytes(data, out); err != nil {
		return 0, fmt.Errorf("%s: %w", rec.Locator, err)
	}
	return len(data), nil
}

func init() {
	extractCmd.Flags().BoolVar(&extractPayload, "payload", false, "strip the record header")
}
