package interpret

import (
	"math"
	"strconv"
	"strings"
)

var byteSizes = []string{"Bytes", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

const byteBase = 1000

// FormatBytes renders a byte count in base-1000 units with decimals+1
// significant digits, dropping trailing zeros: FormatBytes(1500, 2) is
// "1.5 KB". Zero renders as "0 Byte".
func FormatBytes(bytes float64, decimals int) string {
	if bytes == 0 {
		return "0 Byte"
	}

	digits := decimals + 1
	if digits <= 0 {
		digits = 3
	}

	step := 0
	scaled := bytes
	for math.Abs(scaled) >= byteBase && step < len(byteSizes)-1 {
		scaled /= byteBase
		step++
	}

	return significant(scaled, digits) + " " + byteSizes[step]
}

// SplitBytes separates a FormatBytes result into its value and unit.
func SplitBytes(formatted string) (value, unit string) {
	value, unit, _ = strings.Cut(formatted, " ")
	return value, unit
}

// significant formats v rounded to the given number of significant digits.
func significant(v float64, digits int) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	exp := int(math.Floor(math.Log10(math.Abs(v))))
	dec := digits - 1 - exp
	if dec < 0 {
		p := math.Pow(10, float64(-dec))
		v = math.Round(v/p) * p
		dec = 0
	}

	s := strconv.FormatFloat(v, 'f', dec, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}
