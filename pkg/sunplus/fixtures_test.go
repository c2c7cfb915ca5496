package sunplus

import (
	"bytes"
	"encoding/binary"
	"testing"
)

type testGroup struct {
	typ   uint8
	files [][]byte
}

// buildROM lays out a container after lead bytes of filler: header, group
// offsets, per-group file tables, file data, then the group type table.
func buildROM(t *testing.T, lead int, groups []testGroup) []byte {
	t.Helper()
	n := len(groups)
	off := ContainerHeaderSize + 4*n

	groupOffsets := make([]uint32, n)
	for i, g := range groups {
		groupOffsets[i] = uint32(off)
		off += 4 + 4*(len(g.files)+1)
	}
	fileOffsets := make([][]uint32, n)
	for i, g := range groups {
		for _, f := range g.files {
			fileOffsets[i] = append(fileOffsets[i], uint32(off))
			off += len(f)
		}
		fileOffsets[i] = append(fileOffsets[i], uint32(off))
	}

	h := ContainerHeader{
		BaseMark:         1,
		GroupTypesOffset: uint32(off),
		GroupCount:       uint32(n),
	}
	copy(h.Magic[:], ContainerMagic)

	var buf bytes.Buffer
	buf.Write(bytes.Repeat([]byte{0xAA}, lead))
	mustWrite(t, &buf, &h)
	mustWrite(t, &buf, groupOffsets)
	for i, g := range groups {
		mustWrite(t, &buf, uint32(len(g.files)))
		mustWrite(t, &buf, fileOffsets[i])
	}
	for _, g := range groups {
		for _, f := range g.files {
			buf.Write(f)
		}
	}
	for _, g := range groups {
		buf.Write([]byte{g.typ, 0, 0, 0})
	}
	return buf.Bytes()
}

func buildStandaloneA(t *testing.T, name [16]byte, v variantA, payload []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	mustWrite(t, &buf, &Header{Magic: HeaderMagic, Name: name, Discriminator: VariantA, Flag: HeaderFlag})
	mustWrite(t, &buf, &v)
	buf.Write(payload)
	return buf.Bytes()
}

func buildStandaloneB(t *testing.T, name [16]byte, v variantB, payload []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	mustWrite(t, &buf, &Header{Magic: HeaderMagic, Name: name, Discriminator: VariantB, Flag: HeaderFlag})
	mustWrite(t, &buf, &v)
	buf.Write(payload)
	return buf.Bytes()
}

func compactBytes(freq, codec, rate uint16) []byte {
	b := make([]byte, CompactSize)
	binary.LittleEndian.PutUint16(b[0:], freq)
	binary.LittleEndian.PutUint16(b[2:], codec)
	binary.LittleEndian.PutUint16(b[4:], rate)
	return b
}

func mustWrite(t *testing.T, buf *bytes.Buffer, v any) {
	t.Helper()
	if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
		t.Fatalf("binary.Write(%T): %v", v, err)
	}
}
