package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gpspeech/gpspeech/pkg/cli"
	"github.com/gpspeech/gpspeech/pkg/storage"
	"github.com/gpspeech/gpspeech/pkg/sunplus"
)

var (
	dumpDest         string
	dumpSkipExisting bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump <rom>",
	Short: "Write every record of a container to a directory or bucket",
	Long: `Write every record of a ROM container as g<group>/<index>.bin.

The destination is --dest (a directory or s3://bucket/prefix) or the
storage configured in the profile. S3 region, endpoint and credentials
come from the profile or the AWS_* environment variables.

With --skip-existing, records already stored with identical bytes are not
written again, so an interrupted dump can be resumed.

Examples:
  gpspeech dump firmware.bin --dest out/
  gpspeech dump firmware.bin --dest s3://roms/firmware-v2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		profile, err := getProfile()
		if err != nil {
			return err
		}
		scfg := profile.Storage
		if dumpDest != "" {
			if scfg, err = storage.ParseDest(dumpDest, profile.Storage); err != nil {
				return err
			}
		}
		if scfg.Kind == "" && scfg.Dir == "" {
			return fmt.Errorf("no destination: use --dest or set storage in the profile")
		}
		fs, err := storage.Open(ctx, scfg)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := f.Seek(baseOffset, io.SeekStart); err != nil {
			return err
		}
		rom, err := sunplus.OpenROM(f)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		var files, skipped int
		var total int64
		for _, g := range rom.Groups() {
			for i := range g.Files {
				data, err := rom.Read(g.Index, i)
				if err != nil {
					return err
				}
				path := storage.RecordPath(g.Index, i)
				if dumpSkipExisting {
					same, err := storage.Same(ctx, fs, path, data)
					if err != nil {
						return fmt.Errorf("check %s: %w", path, err)
					}
					if same {
						slog.Debug("record unchanged", "path", path)
						skipped++
						continue
					}
				}
				if err := storage.Put(ctx, fs, path, data); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				slog.Debug("dumped record", "path", path, "size", len(data))
				files++
				total += int64(len(data))
			}
		}
		if skipped > 0 {
			cli.PrintInfo("Skipped %d unchanged records", skipped)
		}
		cli.PrintSuccess("Dumped %d records (%s) from %s", files, cli.FormatBytes(total), args[0])
		return nil
	},
}

func init() {
	dumpCmd.Flags().StringVar(&dumpDest, "dest", "", "destination directory or s3://bucket/prefix")
	dumpCmd.Flags().BoolVar(&dumpSkipExisting, "skip-existing", false, "do not rewrite records already stored unchanged")
}
