package sunplus

import (
	"fmt"
	"strconv"
	"strings"
)

// Locator names a record: either a whole file ("path") or one entry of a
// ROM container inside it ("path:group,index").
type Locator struct {
	Path      string `json:"path" yaml:"path"`
	Group     int    `json:"group" yaml:"group"`
	Index     int    `json:"index" yaml:"index"`
	HasRecord bool   `json:"has_record" yaml:"has_record"`
}

// ParseLocator parses "path" or "path:group,index".
//
// A colon whose suffix contains no comma is treated as part of the path,
// so names like "C:\dump.bin" parse as plain paths.
func ParseLocator(s string) (Locator, error) {
	if s == "" {
		return Locator{}, fmt.Errorf("sunplus: empty locator")
	}
	i := strings.LastIndexByte(s, ':')
	if i < 0 || !strings.Contains(s[i+1:], ",") {
		return Locator{Path: s}, nil
	}
	path, rec := s[:i], s[i+1:]
	if path == "" {
		return Locator{}, fmt.Errorf("sunplus: locator %q has no path", s)
	}
	gs, is, _ := strings.Cut(rec, ",")
	group, err := parseIndex(gs)
	if err != nil {
		return Locator{}, fmt.Errorf("sunplus: locator %q: group: %w", s, err)
	}
	index, err := parseIndex(is)
	if err != nil {
		return Locator{}, fmt.Errorf("sunplus: locator %q: index: %w", s, err)
	}
	return Locator{Path: path, Group: group, Index: index, HasRecord: true}, nil
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative value %d", n)
	}
	return n, nil
}

// String formats the locator back into its textual form.
func (l Locator) String() string {
	if !l.HasRecord {
		return l.Path
	}
	return fmt.Sprintf("%s:%d,%d", l.Path, l.Group, l.Index)
}
