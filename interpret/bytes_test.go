package interpret

import "testing"

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes    float64
		decimals int
		want     string
	}{
		{0, 2, "0 Byte"},
		{0, 5, "0 Byte"},
		{1500, 2, "1.5 KB"},
		{1000, 2, "1 KB"},
		{999, 2, "999 Bytes"},
		{1, 2, "1 Bytes"},
		{1234567, 2, "1.23 MB"},
		{1000000, 2, "1 MB"},
		{8123456789, 2, "8.12 GB"},
		{8123456789, 0, "8 GB"},
		{8123456789, -1, "8.12 GB"},
		{2.5e15, 2, "2.5 PB"},
		{3e27, 2, "3000 YB"},
		{-1500, 2, "-1.5 KB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.bytes, tt.decimals); got != tt.want {
			t.Errorf("FormatBytes(%v, %d) = %q, want %q", tt.bytes, tt.decimals, got, tt.want)
		}
	}
}

func TestSplitBytes(t *testing.T) {
	v, u := SplitBytes("1.5 KB")
	if v != "1.5" || u != "KB" {
		t.Errorf("SplitBytes = %q, %q", v, u)
	}
	v, u = SplitBytes("0 Byte")
	if v != "0" || u != "Byte" {
		t.Errorf("SplitBytes = %q, %q", v, u)
	}
}
