package sunplus

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ContainerMagic is the signature at the start of a ROM container.
const ContainerMagic = "GP_SPIFI"

// Limits applied while reading directory tables. They keep a corrupt
// count from turning into a huge allocation.
const (
	MaxGroups = 4096
	MaxFiles  = 1 << 20
)

// ContainerHeader is the fixed 68-byte header of a ROM container.
type ContainerHeader struct {
	Magic            [8]byte
	_                [14]byte
	BaseMark         uint16
	GroupTypesOffset uint32
	_                [4]byte
	UserData         [32]byte
	GroupCount       uint32
}

// ContainerHeaderSize is the encoded size of ContainerHeader.
const ContainerHeaderSize = 68

// File is one entry of a group. Offset is relative to the container start.
type File struct {
	Offset uint32 `json:"offset" yaml:"offset"`
	Size   uint32 `json:"size" yaml:"size"`
}

// Group is a typed partition of the container.
type Group struct {
	Index  int    `json:"index" yaml:"index"`
	Type   uint8  `json:"type" yaml:"type"`
	Name   string `json:"name" yaml:"name"`
	Offset uint32 `json:"offset" yaml:"offset"`
	Files  []File `json:"files" yaml:"files"`
}

// ROM is a parsed container directory over a seekable stream.
//
// The directory is read once by OpenROM; later calls only seek and read
// record data. A ROM must not be used from more than one goroutine at a
// time because it shares the stream cursor.
type ROM struct {
	r      io.ReadSeeker
	base   int64
	header ContainerHeader
	groups []Group
}

// OpenROM parses the container directory starting at the current position
// of r. That position becomes the base for all relative offsets.
func OpenROM(r io.ReadSeeker) (*ROM, error) {
	base, err := tell(r)
	if err != nil {
		return nil, err
	}
	m := &ROM{r: r, base: base}

	if err := readStruct(r, "container header", &m.header); err != nil {
		return nil, err
	}
	if string(m.header.Magic[:]) != ContainerMagic {
		return nil, fmt.Errorf("%w: got %q", ErrContainerMagicMismatch, m.header.Magic[:])
	}
	n := m.header.GroupCount
	if n > MaxGroups {
		return nil, fmt.Errorf("%w: %d groups", ErrContainerTooLarge, n)
	}

	groupOffsets := make([]uint32, n)
	if err := readStruct(r, "group offsets", groupOffsets); err != nil {
		return nil, err
	}

	if err := m.seek(m.header.GroupTypesOffset); err != nil {
		return nil, err
	}
	types := make([][4]byte, n)
	if err := readStruct(r, "group types", types); err != nil {
		return nil, err
	}

	m.groups = make([]Group, n)
	for i := range m.groups {
		t := types[i]
		if t[1] != 0 || t[2] != 0 || t[3] != 0 {
			return nil, fmt.Errorf("%w: group %d type entry % x", ErrReservedNotZero, i, t)
		}
		files, err := m.readFileTable(groupOffsets[i])
		if err != nil {
			return nil, fmt.Errorf("group %d: %w", i, err)
		}
		m.groups[i] = Group{
			Index:  i,
			Type:   t[0],
			Name:   GroupName(t[0]),
			Offset: groupOffsets[i],
			Files:  files,
		}
	}

	slog.Debug("sunplus: parsed rom directory", "base", base, "groups", n, "types_offset", m.header.GroupTypesOffset)
	return m, nil
}

// readFileTable reads the offset table of one group and derives file sizes
// from consecutive offsets.
func (m *ROM) readFileTable(at uint32) ([]File, error) {
	if err := m.seek(at); err != nil {
		return nil, err
	}
	var count uint32
	if err := readStruct(m.r, "file count", &count); err != nil {
		return nil, err
	}
	if count > MaxFiles {
		return nil, fmt.Errorf("%w: %d files", ErrContainerTooLarge, count)
	}
	offsets := make([]uint32, count+1)
	if err := readStruct(m.r, "file offsets", offsets); err != nil {
		return nil, err
	}
	return FilesFromOffsets(offsets)
}

// FilesFromOffsets turns n+1 cumulative offsets into n files. The offsets
// must be non-decreasing.
func FilesFromOffsets(offsets []uint32) ([]File, error) {
	if len(offsets) == 0 {
		return nil, nil
	}
	files := make([]File, len(offsets)-1)
	for i := range files {
		start, end := offsets[i], offsets[i+1]
		if end < start {
			return nil, fmt.Errorf("%w: offset[%d]=%#x > offset[%d]=%#x", ErrUnorderedOffsets, i, start, i+1, end)
		}
		files[i] = File{Offset: start, Size: end - start}
	}
	return files, nil
}

func (m *ROM) seek(rel uint32) error {
	if _, err := m.r.Seek(m.base+int64(rel), io.SeekStart); err != nil {
		return fmt.Errorf("sunplus: seek %#x: %w", rel, err)
	}
	return nil
}

// Base returns the stream offset of the container start.
func (m *ROM) Base() int64 {
	return m.base
}

// Header returns the container header.
func (m *ROM) Header() ContainerHeader {
	return m.header
}

// Groups returns the groups in directory order.
func (m *ROM) Groups() []Group {
	return m.groups
}

// File returns the directory entry of a file.
func (m *ROM) File(group, file int) (File, error) {
	if group < 0 || group >= len(m.groups) {
		return File{}, fmt.Errorf("%w: group %d of %d", ErrIndexOutOfRange, group, len(m.groups))
	}
	files := m.groups[group].Files
	if file < 0 || file >= len(files) {
		return File{}, fmt.Errorf("%w: file %d of %d in group %d", ErrIndexOutOfRange, file, len(files), group)
	}
	return files[file], nil
}

// Resolve returns the absolute stream offset of a file.
func (m *ROM) Resolve(group, file int) (int64, error) {
	f, err := m.File(group, file)
	if err != nil {
		return 0, err
	}
	return m.base + int64(f.Offset), nil
}

// Seek positions the stream at the start of a file and returns the
// absolute offset.
func (m *ROM) Seek(group, file int) (int64, error) {
	off, err := m.Resolve(group, file)
	if err != nil {
		return 0, err
	}
	if _, err := m.r.Seek(off, io.SeekStart); err != nil {
		return 0, fmt.Errorf("sunplus: seek record: %w", err)
	}
	return off, nil
}

// Read returns the exact bytes of a file.
func (m *ROM) Read(group, file int) ([]byte, error) {
	f, err := m.File(group, file)
	if err != nil {
		return nil, err
	}
	if _, err := m.Seek(group, file); err != nil {
		return nil, err
	}
	buf := make([]byte, f.Size)
	if _, err := io.ReadFull(m.r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: group %d file %d wants %d bytes", ErrTruncatedRead, group, file, f.Size)
		}
		return nil, fmt.Errorf("sunplus: read record: %w", err)
	}
	return buf, nil
}

// OpenRecord seeks to a file and parses its compact header. The stream is
// left at the record payload. Files shorter than a compact header fail with
// ErrTruncatedRead instead of reading into the next file.
func (m *ROM) OpenRecord(group, file int) (*Record, error) {
	f, err := m.File(group, file)
	if err != nil {
		return nil, err
	}
	if f.Size < CompactSize {
		return nil, fmt.Errorf("%w: group %d file %d has %d bytes, header needs %d", ErrTruncatedRead, group, file, f.Size, CompactSize)
	}
	if _, err := m.Seek(group, file); err != nil {
		return nil, err
	}
	return ParseCompact(m.r)
}

// IsContainer reports whether the bytes at the current position of r
// start with the container magic. The position is restored.
func IsContainer(r io.ReadSeeker) (bool, error) {
	pos, err := tell(r)
	if err != nil {
		return false, err
	}
	var magic [8]byte
	_, rerr := io.ReadFull(r, magic[:])
	if _, err := r.Seek(pos, io.SeekStart); err != nil {
		return false, fmt.Errorf("sunplus: rewind: %w", err)
	}
	if rerr != nil {
		if errors.Is(rerr, io.EOF) || errors.Is(rerr, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, fmt.Errorf("sunplus: read magic: %w", rerr)
	}
	return string(magic[:]) == ContainerMagic, nil
}
