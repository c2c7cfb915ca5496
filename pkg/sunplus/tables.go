package sunplus

import "fmt"

// Codec type identifiers as used by the SACM library.
const (
	CodecSACM3400      uint16 = 0x01
	CodecADPCM66       uint16 = 0x03
	CodecS480          uint16 = 0x07
	CodecS530          uint16 = 0x08
	CodecS720          uint16 = 0x09
	CodecS200          uint16 = 0x0b
	CodecS320          uint16 = 0x0c
	CodecA1800         uint16 = 0x0e
	CodecA4800         uint16 = 0x0f
	CodecA3600         uint16 = 0x10
	CodecADPCM34       uint16 = 0x11
	CodecA6400         uint16 = 0x12
	CodecADPCM66E      uint16 = 0x13
	CodecA3400Pro4Bit  uint16 = 0x20
	CodecA3400Pro5Bit  uint16 = 0x21
	CodecA3400Pro6Bit  uint16 = 0x22
	CodecA3400Pro2Bit  uint16 = 0x23
	CodecA3400Pro3Bit  uint16 = 0x24
	CodecA3400ProE4Bit uint16 = 0x25
	CodecA3400ProE5Bit uint16 = 0x26
	CodecS880          uint16 = 0x30
	CodecPCM           uint16 = 0x40
	CodecA1800E        uint16 = 0x60
	CodecIMA           uint16 = 0x61
	CodecHWPCM16Bit    uint16 = 0x83
	CodecHWPCMGPFA     uint16 = 0x84
	CodecAdpcmVBRC74   uint16 = 0x85
	CodecGeo           uint16 = 0x101
)

var codecNames = map[uint16]string{
	CodecSACM3400:      "SACM3400",
	CodecADPCM66:       "ADPCM66",
	CodecS480:          "S480",
	CodecS530:          "S530",
	CodecS720:          "S720",
	CodecS200:          "S200",
	CodecS320:          "S320",
	CodecA1800:         "A1800",
	CodecA4800:         "A4800",
	CodecA3600:         "A3600",
	CodecADPCM34:       "ADPCM34",
	CodecA6400:         "A6400",
	CodecADPCM66E:      "ADPCM66E",
	CodecA3400Pro4Bit:  "A3400Pro4Bit",
	CodecA3400Pro5Bit:  "A3400Pro5Bit",
	CodecA3400Pro6Bit:  "A3400Pro6Bit",
	CodecA3400Pro2Bit:  "A3400Pro2Bit",
	CodecA3400Pro3Bit:  "A3400Pro3Bit",
	CodecA3400ProE4Bit: "A3400ProE4Bit",
	CodecA3400ProE5Bit: "A3400ProE5Bit",
	0x27:               "A3400Pro27",
	0x28:               "A3400Pro28",
	0x29:               "A3400Pro29",
	CodecS880:          "S880",
	CodecPCM:           "PCM",
	0x50:               "AM1100File2Bit",
	0x51:               "AM1100File3Bit",
	0x52:               "AM1100File4Bit",
	0x53:               "AM1100File5Bit",
	0x54:               "AM1100File6Bit",
	CodecA1800E:        "A1800E",
	CodecIMA:           "IMA",
	CodecHWPCM16Bit:    "HWPCM16Bit",
	CodecHWPCMGPFA:     "HWPCMGPFA",
	CodecAdpcmVBRC74:   "AdpcmVBRC74",
	CodecGeo:           "Geo",
}

// CodecName returns the name of a codec type, or its value as four hex
// digits when the type is not known.
func CodecName(id uint16) string {
	if name, ok := codecNames[id]; ok {
		return name
	}
	return fmt.Sprintf("%04x", id)
}

// Group type codes of a ROM container.
const (
	GroupSpeech   uint8 = 0x00
	GroupMelody   uint8 = 0x01
	GroupImage    uint8 = 0x02
	GroupMovie    uint8 = 0x03
	GroupEquation uint8 = 0x80
	GroupUnknown  uint8 = 0xff
)

var groupNames = map[uint8]string{
	GroupSpeech:   "speech",
	GroupMelody:   "melody",
	GroupImage:    "image",
	GroupMovie:    "movie",
	GroupEquation: "equation",
	GroupUnknown:  "unknown",
}

// GroupName returns the name of a group type code. Unknown codes are
// rendered as 0x-prefixed hex, never rejected.
func GroupName(code uint8) string {
	if name, ok := groupNames[code]; ok {
		return name
	}
	return fmt.Sprintf("0x%02x", code)
}
