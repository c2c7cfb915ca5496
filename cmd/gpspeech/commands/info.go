package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gpspeech/gpspeech/pkg/cli"
	"github.com/gpspeech/gpspeech/pkg/sunplus"
)

var infoCmd = &cobra.Command{
	Use:   "info <locator>",
	Short: "Identify a speech record",
	Long: `Identify a speech record and print its header.

For "path" the standalone header is tried first; if the bytes are not one,
they are read as a compact header. For "path:group,index" the container
directory is parsed and the entry's compact header is read.

If the path is a ROM container and no record is named, its directory is
listed instead.

Examples:
  gpspeech info voice.bin
  gpspeech info firmware.bin:0,3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := parseLocator(args[0])
		if err != nil {
			return err
		}
		if !loc.HasRecord {
			container, err := isContainer(loc.Path)
			if err != nil {
				return err
			}
			if container {
				printVerbose("%s is a ROM container, listing groups", loc.Path)
				listing, err := listContainer(loc.Path)
				if err != nil {
					return err
				}
				return outputResult(listing, cli.FormatYAML)
			}
		}

		r := &resolver{base: baseOffset}
		rec, err := r.resolve(loc)
		if err != nil {
			return err
		}
		info, err := newRecordInfo(rec)
		if err != nil {
			return err
		}
		return outputResult(info, cli.FormatYAML)
	},
}

type recordInfo struct {
	Locator       string           `json:"locator" yaml:"locator"`
	Layout        string           `json:"layout" yaml:"layout"`
	Codec         string           `json:"codec" yaml:"codec"`
	CodecID       string           `json:"codec_id" yaml:"codec_id"`
	SampleRate    uint32           `json:"sample_rate" yaml:"sample_rate"`
	Frequency     string           `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	Offset        int64            `json:"offset" yaml:"offset"`
	PayloadOffset int64            `json:"payload_offset" yaml:"payload_offset"`
	Size          int              `json:"size" yaml:"size"`
	Name          string           `json:"name,omitempty" yaml:"name,omitempty"`
	Variant       *sunplus.Variant `json:"variant,omitempty" yaml:"variant,omitempty"`
}

func newRecordInfo(r *record) (*recordInfo, error) {
	rec, err := r.header()
	if err != nil {
		return nil, err
	}
	info := &recordInfo{
		Locator:       r.Locator.String(),
		Layout:        rec.Layout.String(),
		Codec:         rec.Codec(),
		CodecID:       fmt.Sprintf("0x%04x", rec.CodecID),
		SampleRate:    rec.SampleRate(),
		Offset:        rec.Offset,
		PayloadOffset: rec.PayloadOffset,
		Size:          len(r.Data),
		Variant:       rec.Variant,
	}
	if rec.HasFrequency {
		info.Frequency = cli.FormatHz(rec.Frequency)
	}
	if rec.Header != nil {
		info.Name = rec.Header.NameString()
	}
	return info, nil
}

func isContainer(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	if _, err := f.Seek(baseOffset, io.SeekStart); err != nil {
		return false, err
	}
	return sunplus.IsContainer(f)
}
