package cli

import "testing"

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{1073741824, "1.00 GB"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatBytes(tt.bytes); got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFormatHz(t *testing.T) {
	if got := FormatHz(17178960); got != "17178960Hz" {
		t.Errorf("FormatHz = %q", got)
	}
}

func TestFormatOffset(t *testing.T) {
	if got := FormatOffset(0x54); got != "0x00000054" {
		t.Errorf("FormatOffset = %q", got)
	}
}
