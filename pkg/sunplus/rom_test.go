package sunplus

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestOpenROMSingleSpeechGroup(t *testing.T) {
	file := []byte("0123456789ab")
	data := buildROM(t, 1, []testGroup{{typ: GroupSpeech, files: [][]byte{file}}})
	r := bytes.NewReader(data)
	if _, err := r.Seek(1, 0); err != nil {
		t.Fatal(err)
	}

	m, err := OpenROM(r)
	if err != nil {
		t.Fatalf("OpenROM: %v", err)
	}
	if m.Base() != 1 {
		t.Errorf("Base = %d, want 1", m.Base())
	}
	groups := m.Groups()
	if len(groups) != 1 {
		t.Fatalf("len(Groups) = %d, want 1", len(groups))
	}
	g := groups[0]
	if g.Name != "speech" || len(g.Files) != 1 {
		t.Fatalf("group = %+v", g)
	}
	if g.Offset != 0x48 {
		t.Errorf("group offset = %#x, want 0x48", g.Offset)
	}
	if g.Files[0] != (File{Offset: 0x54, Size: 0x0c}) {
		t.Errorf("file = %+v, want {0x54 0x0c}", g.Files[0])
	}

	got, err := m.Read(0, 0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, file) {
		t.Errorf("Read = %q, want %q", got, file)
	}
}

func TestResolveIsRelativeToBase(t *testing.T) {
	groups := []testGroup{
		{typ: GroupSpeech, files: [][]byte{compactBytes(0, 1, 8000), {1, 2, 3}}},
		{typ: GroupMelody, files: [][]byte{{9}, {8, 8}, {7, 7, 7}}},
	}
	for _, lead := range []int{0, 1, 37, 4096} {
		data := buildROM(t, lead, groups)
		r := bytes.NewReader(data)
		r.Seek(int64(lead), 0)
		m, err := OpenROM(r)
		if err != nil {
			t.Fatalf("lead %d: OpenROM: %v", lead, err)
		}
		for gi, g := range m.Groups() {
			for fi, f := range g.Files {
				off, err := m.Resolve(gi, fi)
				if err != nil {
					t.Fatalf("Resolve(%d,%d): %v", gi, fi, err)
				}
				if want := int64(lead) + int64(f.Offset); off != want {
					t.Errorf("lead %d: Resolve(%d,%d) = %d, want %d", lead, gi, fi, off, want)
				}
				got, err := m.Read(gi, fi)
				if err != nil {
					t.Fatalf("Read(%d,%d): %v", gi, fi, err)
				}
				if !bytes.Equal(got, groups[gi].files[fi]) {
					t.Errorf("lead %d: Read(%d,%d) = %x", lead, gi, fi, got)
				}
			}
		}
		if m.Groups()[1].Name != "melody" {
			t.Errorf("group 1 name = %q", m.Groups()[1].Name)
		}
	}
}

func TestResolveOutOfRange(t *testing.T) {
	data := buildROM(t, 0, []testGroup{{typ: 0, files: [][]byte{{1}}}})
	m, err := OpenROM(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range [][2]int{{-1, 0}, {1, 0}, {0, 1}, {0, -1}, {99, 99}} {
		if _, err := m.Resolve(tc[0], tc[1]); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Resolve(%d,%d) err = %v", tc[0], tc[1], err)
		}
		if _, err := m.Read(tc[0], tc[1]); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Read(%d,%d) err = %v", tc[0], tc[1], err)
		}
	}
}

func TestGroupTypeNames(t *testing.T) {
	data := buildROM(t, 0, []testGroup{
		{typ: GroupImage}, {typ: GroupMovie}, {typ: GroupEquation}, {typ: 0x42}, {typ: GroupUnknown},
	})
	m, err := OpenROM(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"image", "movie", "equation", "0x42", "unknown"}
	for i, g := range m.Groups() {
		if g.Name != want[i] {
			t.Errorf("group %d name = %q, want %q", i, g.Name, want[i])
		}
		if len(g.Files) != 0 {
			t.Errorf("group %d has %d files", i, len(g.Files))
		}
	}
}

func TestOpenROMErrors(t *testing.T) {
	good := buildROM(t, 0, []testGroup{{typ: 0, files: [][]byte{{1, 2}, {3}}}})

	t.Run("magic", func(t *testing.T) {
		b := bytes.Clone(good)
		b[3] = 'X'
		if _, err := OpenROM(bytes.NewReader(b)); !errors.Is(err, ErrContainerMagicMismatch) {
			t.Fatalf("err = %v", err)
		}
	})
	t.Run("reserved", func(t *testing.T) {
		b := bytes.Clone(good)
		b[len(b)-1] = 1
		if _, err := OpenROM(bytes.NewReader(b)); !errors.Is(err, ErrReservedNotZero) {
			t.Fatalf("err = %v", err)
		}
	})
	t.Run("unordered", func(t *testing.T) {
		b := bytes.Clone(good)
		// Table at 0x48: count, off0, off1, off2. Push off1 below off0.
		binary.LittleEndian.PutUint32(b[0x48+8:], 0)
		if _, err := OpenROM(bytes.NewReader(b)); !errors.Is(err, ErrUnorderedOffsets) {
			t.Fatalf("err = %v", err)
		}
	})
	t.Run("too many groups", func(t *testing.T) {
		b := bytes.Clone(good)
		binary.LittleEndian.PutUint32(b[64:], MaxGroups+1)
		if _, err := OpenROM(bytes.NewReader(b)); !errors.Is(err, ErrContainerTooLarge) {
			t.Fatalf("err = %v", err)
		}
	})
	t.Run("truncated header", func(t *testing.T) {
		if _, err := OpenROM(bytes.NewReader(good[:40])); !errors.Is(err, ErrTruncatedRead) {
			t.Fatalf("err = %v", err)
		}
	})
	t.Run("truncated record", func(t *testing.T) {
		// Last file claims bytes past the end of the stream.
		b := bytes.Clone(good)
		binary.LittleEndian.PutUint32(b[0x48+12:], 0x10000)
		m, err := OpenROM(bytes.NewReader(b))
		if err != nil {
			t.Fatalf("OpenROM: %v", err)
		}
		if _, err := m.Read(0, 1); !errors.Is(err, ErrTruncatedRead) {
			t.Fatalf("err = %v", err)
		}
	})
}

func TestFilesFromOffsets(t *testing.T) {
	offsets := []uint32{0x10, 0x10, 0x20, 0x35, 0x100}
	files, err := FilesFromOffsets(offsets)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != len(offsets)-1 {
		t.Fatalf("len = %d", len(files))
	}
	var sum uint32
	for i, f := range files {
		if f.Offset != offsets[i] {
			t.Errorf("files[%d].Offset = %#x", i, f.Offset)
		}
		sum += f.Size
	}
	if want := offsets[len(offsets)-1] - offsets[0]; sum != want {
		t.Errorf("sum(sizes) = %#x, want %#x", sum, want)
	}
	if files[0].Size != 0 {
		t.Errorf("empty file size = %d", files[0].Size)
	}

	if _, err := FilesFromOffsets([]uint32{4, 3}); !errors.Is(err, ErrUnorderedOffsets) {
		t.Errorf("err = %v", err)
	}
	if files, err := FilesFromOffsets([]uint32{7}); err != nil || len(files) != 0 {
		t.Errorf("single offset = %v, %v", files, err)
	}
}

func TestOpenRecord(t *testing.T) {
	data := buildROM(t, 5, []testGroup{{typ: 0, files: [][]byte{
		append(compactBytes(0x0d31, uint16(CodecA3400Pro5Bit), 11127), 0xCA, 0xFE),
	}}})
	r := bytes.NewReader(data)
	r.Seek(5, 0)
	m, err := OpenROM(r)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := m.OpenRecord(0, 0)
	if err != nil {
		t.Fatalf("OpenRecord: %v", err)
	}
	off, _ := m.Resolve(0, 0)
	if rec.Offset != off || rec.PayloadOffset != off+CompactSize {
		t.Errorf("offsets = %d/%d, want %d", rec.Offset, rec.PayloadOffset, off)
	}
	if rec.Rate != 11127 || rec.Codec() != "A3400Pro5Bit" {
		t.Errorf("record = %+v", rec)
	}
	if b, _ := r.ReadByte(); b != 0xCA {
		t.Errorf("cursor at %#x, want payload", b)
	}
}

func TestIsContainer(t *testing.T) {
	data := buildROM(t, 0, nil)
	r := bytes.NewReader(data)
	ok, err := IsContainer(r)
	if err != nil || !ok {
		t.Fatalf("IsContainer = %v, %v", ok, err)
	}
	if pos, _ := r.Seek(0, 1); pos != 0 {
		t.Errorf("position not restored: %d", pos)
	}
	ok, err = IsContainer(bytes.NewReader([]byte("GP_")))
	if err != nil || ok {
		t.Errorf("short input = %v, %v", ok, err)
	}
}

func TestOpenRecordShortFile(t *testing.T) {
	data := buildROM(t, 0, []testGroup{{typ: 0, files: [][]byte{
		{0x01, 0x02, 0x03},
		compactBytes(0x0d31, uint16(CodecPCM), 8000),
	}}})
	m, err := OpenROM(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.OpenRecord(0, 0); !errors.Is(err, ErrTruncatedRead) {
		t.Fatalf("OpenRecord(short) err = %v, want ErrTruncatedRead", err)
	}
	if _, err := Detect(bytes.NewReader(data), Locator{Path: "x", Group: 0, Index: 0, HasRecord: true}); !errors.Is(err, ErrTruncatedRead) {
		t.Errorf("Detect(short) err = %v, want ErrTruncatedRead", err)
	}
	if rec, err := m.OpenRecord(0, 1); err != nil || rec.Codec() != "PCM" {
		t.Errorf("OpenRecord(0, 1) = %+v, %v", rec, err)
	}
}
