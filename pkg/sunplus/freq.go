package sunplus

// Frequency code constants. A compact header stores the chip clock as
// 0x1000 - clock/FrequencyStep.
const (
	FrequencyBase uint32 = 0x1000
	FrequencyStep uint32 = 22255
)

// DecodeFrequency maps a packed 12-bit frequency code to Hz.
//
// Codes above 0x1000 saturate to 0.
func DecodeFrequency(code uint16) uint32 {
	c := uint32(code)
	if c > FrequencyBase {
		return 0
	}
	return (FrequencyBase - c) * FrequencyStep
}

// EncodeFrequency is the inverse of DecodeFrequency, truncating rate to a
// multiple of FrequencyStep. Rates at or above 0x1000*FrequencyStep encode
// to 0.
func EncodeFrequency(rate uint32) uint16 {
	steps := rate / FrequencyStep
	if steps >= FrequencyBase {
		return 0
	}
	return uint16(FrequencyBase - steps)
}
