package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gpspeech/gpspeech/pkg/catalog"
	"github.com/gpspeech/gpspeech/pkg/cli"
	"github.com/gpspeech/gpspeech/pkg/sunplus"
)

var catalogDir string

var scanCmd = &cobra.Command{
	Use:   "scan <rom>...",
	Short: "Index ROM containers into the catalog",
	Long: `Parse ROM containers and store one catalog entry per file, keyed by
the SHA-256 of the image. Rescanning an image replaces its entries.

The catalog lives in --catalog, the profile's catalog_dir, or
~/.gpspeech/gpspeech/data/catalog.

Examples:
  gpspeech scan dumps/*.bin
  gpspeech catalog ls`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openCatalog()
		if err != nil {
			return err
		}
		defer store.Close()

		for _, path := range args {
			scan, err := scanFile(ctx, store, path)
			if err != nil {
				return err
			}
			cli.PrintSuccess("%s: %d groups, %d files (%s)", path, scan.Groups, scan.Files, shortDigest(scan.Digest))
		}
		return nil
	},
}

func scanFile(ctx context.Context, store catalog.Store, path string) (catalog.Scan, error) {
	f, err := os.Open(path)
	if err != nil {
		return catalog.Scan{}, err
	}
	defer f.Close()

	digest, err := catalog.Digest(f)
	if err != nil {
		return catalog.Scan{}, err
	}
	if _, err := f.Seek(baseOffset, io.SeekStart); err != nil {
		return catalog.Scan{}, err
	}
	rom, err := sunplus.OpenROM(f)
	if err != nil {
		return catalog.Scan{}, fmt.Errorf("%s: %w", path, err)
	}
	scan, entries, err := catalog.Index(ctx, rom, path, digest)
	if err != nil {
		return catalog.Scan{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := store.PutScan(ctx, scan, entries); err != nil {
		return catalog.Scan{}, fmt.Errorf("%s: store: %w", path, err)
	}
	printVerbose("%s: scan %s stored %d entries", path, scan.ID, len(entries))
	return scan, nil
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Query the record catalog",
}

var catalogLsCmd = &cobra.Command{
	Use:   "ls [digest]",
	Short: "List scanned images, or the entries of one image",
	Long: `Without arguments, list every scanned image. With a digest (or a
unique prefix of one), list the entries of that image.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openCatalog()
		if err != nil {
			return err
		}
		defer store.Close()

		if len(args) == 0 {
			var list scanList
			for s, err := range store.Scans(ctx) {
				if err != nil {
					return err
				}
				list = append(list, s)
			}
			return outputResult(list, cli.FormatTable)
		}

		digest, err := resolveDigest(ctx, store, args[0])
		if err != nil {
			return err
		}
		var list entryList
		for e, err := range store.List(ctx, digest) {
			if err != nil {
				return err
			}
			list = append(list, e)
		}
		return outputResult(list, cli.FormatTable)
	},
}

var catalogGetCmd = &cobra.Command{
	Use:   "get <digest> <group> <index>",
	Short: "Show one catalog entry",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		group, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid group %q", args[1])
		}
		index, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid index %q", args[2])
		}
		store, err := openCatalog()
		if err != nil {
			return err
		}
		defer store.Close()

		digest, err := resolveDigest(ctx, store, args[0])
		if err != nil {
			return err
		}
		e, err := store.Get(ctx, digest, group, index)
		if err != nil {
			return fmt.Errorf("%s %d,%d: %w", shortDigest(digest), group, index, err)
		}
		return outputResult(e, cli.FormatYAML)
	},
}

type scanList []catalog.Scan

func (l scanList) Table() *cli.Table {
	t := cli.NewTable("catalog", "digest", "source", "groups", "files", "scanned")
	t.MaxWidth = 48
	for _, s := range l {
		t.Append(shortDigest(s.Digest), s.Source, strconv.Itoa(s.Groups), strconv.Itoa(s.Files), s.At.Local().Format(time.DateTime))
	}
	t.Footer = fmt.Sprintf("%d images", len(l))
	return t
}

type entryList []catalog.Entry

func (l entryList) Table() *cli.Table {
	title := ""
	if len(l) > 0 {
		title = l[0].Source + " " + shortDigest(l[0].Digest)
	}
	t := cli.NewTable(title, "group", "type", "file", "offset", "size", "codec", "rate", "frequency")
	for _, e := range l {
		codec, rate, freq := "-", "-", "-"
		if e.HasHeader {
			codec = e.Codec
			rate = strconv.FormatUint(uint64(e.SampleRate), 10)
			freq = cli.FormatHz(e.Frequency)
		}
		t.Append(strconv.Itoa(e.Group), e.GroupType, strconv.Itoa(e.Index), cli.FormatOffset(e.Offset),
			strconv.FormatUint(uint64(e.Size), 10), codec, rate, freq)
	}
	t.Footer = fmt.Sprintf("%d entries", len(l))
	return t
}

func openCatalog() (catalog.Store, error) {
	dir := catalogDir
	if dir == "" {
		p, err := getProfile()
		if err != nil {
			return nil, err
		}
		dir = p.CatalogDir
	}
	if dir == "" {
		paths, err := cli.NewPaths(appName)
		if err != nil {
			return nil, err
		}
		if err := paths.EnsureDataDir(); err != nil {
			return nil, err
		}
		dir = paths.CatalogDir()
	}
	printVerbose("catalog: %s", dir)
	return catalog.NewBadger(catalog.BadgerOptions{Dir: dir})
}

// resolveDigest expands a unique digest prefix.
func resolveDigest(ctx context.Context, store catalog.Store, prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("empty digest")
	}
	var match []string
	for s, err := range store.Scans(ctx) {
		if err != nil {
			return "", err
		}
		if s.Digest == prefix {
			return s.Digest, nil
		}
		if strings.HasPrefix(s.Digest, prefix) {
			match = append(match, s.Digest)
		}
	}
	switch len(match) {
	case 0:
		return "", fmt.Errorf("digest %q: %w", prefix, catalog.ErrNotFound)
	case 1:
		return match[0], nil
	default:
		return "", fmt.Errorf("digest prefix %q is ambiguous (%d matches)", prefix, len(match))
	}
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}

func init() {
	for _, c := range []*cobra.Command{scanCmd, catalogCmd} {
		c.PersistentFlags().StringVar(&catalogDir, "catalog", "", "catalog directory")
	}
	catalogCmd.AddCommand(catalogLsCmd)
	catalogCmd.AddCommand(catalogGetCmd)
}
