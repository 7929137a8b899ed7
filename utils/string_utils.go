package utils

import (
	"strconv"
	"strings"
)

const starGlyph = "⭐"

// FormatThousands renders n with comma thousands separators, e.g. 322966 -> "322,966".
func FormatThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatAverage renders an average with two decimals, or "N/A" when undefined.
func FormatAverage(v float64, defined bool) string {
	if !defined {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Stars repeats the star glyph n times.
func Stars(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(starGlyph, n)
}
