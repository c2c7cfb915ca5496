package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gpspeech/gpspeech/pkg/cli"
	"github.com/gpspeech/gpspeech/pkg/sunplus"
)

var (
	batchFile      string
	batchCacheSize int
	batchKeepGoing bool
)

var batchCmd = &cobra.Command{
	Use:   "batch -f <manifest>",
	Short: "Run extract and decode jobs from a manifest",
	Long: `Run many extract and decode jobs listed in a YAML or JSON manifest.

Container directories are parsed once per file and kept in an LRU cache,
so jobs naming many records of the same image stay cheap.

Manifest example:
  output_dir: out
  jobs:
    - kind: extract
      locator: firmware.bin:0,3
      payload: true
    - kind: decode
      locator: firmware.bin:0,4
      out: intro.wav`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if batchFile == "" {
			return fmt.Errorf("-f is required")
		}
		m, err := cli.LoadManifest(batchFile)
		if err != nil {
			return err
		}
		if m.OutputDir != "" {
			if err := os.MkdirAll(m.OutputDir, 0755); err != nil {
				return err
			}
		}
		cache, err := sunplus.NewDirCache(batchCacheSize)
		if err != nil {
			return err
		}
		defer cache.Purge()

		r := &resolver{base: baseOffset, cache: cache}
		var failed int
		for i, job := range m.Jobs {
			if err := runJob(r, m, job); err != nil {
				if !batchKeepGoing {
					return fmt.Errorf("job %d: %w", i, err)
				}
				cli.PrintWarning("job %d (%s): %v", i, job.Locator, err)
				failed++
				continue
			}
		}
		printVerbose("directory cache holds %d containers", cache.Len())
		if failed > 0 {
			return fmt.Errorf("%d of %d jobs failed", failed, len(m.Jobs))
		}
		cli.PrintSuccess("Ran %d jobs", len(m.Jobs))
		return nil
	},
}

func runJob(r *resolver, m *cli.Manifest, job cli.Job) error {
	loc, err := parseLocator(job.Locator)
	if err != nil {
		return err
	}
	rec, err := r.resolve(loc)
	if err != nil {
		return err
	}
	switch job.Kind {
	case cli.JobExtract:
		out := m.OutputPath(job.Out)
		if out == "" {
			out = m.OutputPath(defaultName(loc, ".bin"))
		}
		_, err := writeExtract(rec, out, job.Payload)
		return err
	case cli.JobDecode:
		out := m.OutputPath(job.Out)
		if out == "" {
			out = m.OutputPath(defaultName(loc, ".wav"))
		}
		rate, err := effectiveRate(job.Rate)
		if err != nil {
			return err
		}
		d, err := decodeRecord(rec, rate, 0)
		if err != nil {
			return err
		}
		return writeWAV(d, out)
	}
	return fmt.Errorf("unknown job kind %q", job.Kind)
}

func init() {
	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "manifest file (YAML or JSON)")
	batchCmd.Flags().IntVar(&batchCacheSize, "cache", 16, "number of container directories to keep parsed")
	batchCmd.Flags().BoolVar(&batchKeepGoing, "keep-going", false, "continue after a failed job")
}
