// Package romtest builds synthetic speech images for tests in packages
// that sit on top of sunplus.
package romtest

import (
	"bytes"
	"encoding/binary"

	"github.com/gpspeech/gpspeech/pkg/sunplus"
)

// Group is one group of a synthetic container.
type Group struct {
	Type  uint8
	Files [][]byte
}

// Container lays out a container after lead filler bytes: header, group
// offsets, file tables, file data and finally the group type table. All
// offsets are relative to the container start.
func Container(lead int, groups []Group) []byte {
	n := len(groups)
	off := sunplus.ContainerHeaderSize + 4*n

	groupOffsets := make([]uint32, n)
	for i, g := range groups {
		groupOffsets[i] = uint32(off)
		off += 4 + 4*(len(g.Files)+1)
	}
	fileOffsets := make([][]uint32, n)
	for i, g := range groups {
		for _, f := range g.Files {
			fileOffsets[i] = append(fileOffsets[i], uint32(off))
			off += len(f)
		}
		fileOffsets[i] = append(fileOffsets[i], uint32(off))
	}

	h := sunplus.ContainerHeader{
		BaseMark:         1,
		GroupTypesOffset: uint32(off),
		GroupCount:       uint32(n),
	}
	copy(h.Magic[:], sunplus.ContainerMagic)

	var buf bytes.Buffer
	buf.Write(bytes.Repeat([]byte{0xAA}, lead))
	write(&buf, &h)
	write(&buf, groupOffsets)
	for i, g := range groups {
		write(&buf, uint32(len(g.Files)))
		write(&buf, fileOffsets[i])
	}
	for _, g := range groups {
		for _, f := range g.Files {
			buf.Write(f)
		}
	}
	for _, g := range groups {
		buf.Write([]byte{g.Type, 0, 0, 0})
	}
	return buf.Bytes()
}

// Compact returns a compact header followed by payload.
func Compact(freq, codec, rate uint16, payload []byte) []byte {
	b := make([]byte, sunplus.CompactSize, sunplus.CompactSize+len(payload))
	binary.LittleEndian.PutUint16(b[0:], freq)
	binary.LittleEndian.PutUint16(b[2:], codec)
	binary.LittleEndian.PutUint16(b[4:], rate)
	return append(b, payload...)
}

// StandaloneA returns a "SUNPLUS SPEECH" variant A record.
func StandaloneA(codec uint16, rate uint32, payload []byte) []byte {
	var buf bytes.Buffer
	write(&buf, &sunplus.Header{
		Magic:         sunplus.HeaderMagic,
		Name:          sunplus.NameSunplus,
		Discriminator: sunplus.VariantA,
		Flag:          sunplus.HeaderFlag,
	})
	write(&buf, struct {
		CodecType      uint16
		OrigSampleSize uint16
		Reserved3      uint16
		OrigRate       uint32
		Rate           uint32
		Reserved6      uint16
		Reserved7      uint8
		Reserved8      uint32
		Reserved9      uint16
		Reserved10     uint8
	}{CodecType: codec, OrigSampleSize: 16, OrigRate: rate, Rate: rate})
	buf.Write(payload)
	return buf.Bytes()
}

// binary.Write into a bytes.Buffer only fails for unsupported types.
func write(buf *bytes.Buffer, v any) {
	if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
		panic(err)
	}
}
