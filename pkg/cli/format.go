package cli

import "fmt"

// FormatBytes formats bytes to human readable string
func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatHz formats a frequency as plain hertz, e.g. "17178960Hz".
func FormatHz(hz uint32) string {
	return fmt.Sprintf("%dHz", hz)
}

// FormatOffset formats a stream offset as 0x-prefixed hex.
func FormatOffset(off int64) string {
	return fmt.Sprintf("0x%08x", off)
}
