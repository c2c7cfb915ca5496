package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gpspeech/gpspeech/pkg/cli"
	"github.com/gpspeech/gpspeech/pkg/sunplus"
)

var lsCmd = &cobra.Command{
	Use:   "ls <rom>",
	Short: "List the groups and files of a ROM container",
	Long: `List the groups and files of a ROM container.

Offsets are absolute file offsets. Use --base when the container does not
start at the beginning of the file.

Examples:
  gpspeech ls firmware.bin
  gpspeech ls firmware.bin --json | jq '.groups[0].files'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		listing, err := listContainer(args[0])
		if err != nil {
			return err
		}
		return outputResult(listing, cli.FormatTable)
	},
}

type containerListing struct {
	Path     string         `json:"path" yaml:"path"`
	Base     int64          `json:"base" yaml:"base"`
	BaseMark uint16         `json:"base_mark" yaml:"base_mark"`
	Groups   []groupListing `json:"groups" yaml:"groups"`
}

type groupListing struct {
	Index    int           `json:"index" yaml:"index"`
	Type     string        `json:"type" yaml:"type"`
	TypeCode uint8         `json:"type_code" yaml:"type_code"`
	Offset   int64         `json:"offset" yaml:"offset"`
	Files    []fileListing `json:"files" yaml:"files"`
}

type fileListing struct {
	Index  int    `json:"index" yaml:"index"`
	Offset int64  `json:"offset" yaml:"offset"`
	Size   uint32 `json:"size" yaml:"size"`
}

func (l *containerListing) Table() *cli.Table {
	t := cli.NewTable(l.Path, "group", "type", "file", "offset", "size")
	files := 0
	for _, g := range l.Groups {
		if len(g.Files) == 0 {
			t.Append(strconv.Itoa(g.Index), g.Type, "-", cli.FormatOffset(g.Offset), "")
		}
		for _, f := range g.Files {
			t.Append(strconv.Itoa(g.Index), g.Type, strconv.Itoa(f.Index), cli.FormatOffset(f.Offset), strconv.FormatUint(uint64(f.Size), 10))
			files++
		}
	}
	t.Footer = fmt.Sprintf("%d groups, %d files, base %s", len(l.Groups), files, cli.FormatOffset(l.Base))
	return t
}

func listContainer(path string) (*containerListing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if _, err := f.Seek(baseOffset, io.SeekStart); err != nil {
		return nil, err
	}
	rom, err := sunplus.OpenROM(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return newListing(path, rom), nil
}

func newListing(path string, rom *sunplus.ROM) *containerListing {
	l := &containerListing{
		Path:     path,
		Base:     rom.Base(),
		BaseMark: rom.Header().BaseMark,
	}
	for _, g := range rom.Groups() {
		gl := groupListing{
			Index:    g.Index,
			Type:     g.Name,
			TypeCode: g.Type,
			Offset:   rom.Base() + int64(g.Offset),
			Files:    []fileListing{},
		}
		for i, f := range g.Files {
			gl.Files = append(gl.Files, fileListing{
				Index:  i,
				Offset: rom.Base() + int64(f.Offset),
				Size:   f.Size,
			})
		}
		l.Groups = append(l.Groups, gl)
	}
	return l
}
