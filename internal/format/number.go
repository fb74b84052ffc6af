package format

import "strings"

// FormatNumberString inserts thousands separators into a decimal string.
// A leading minus sign is preserved.
func FormatNumberString(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	b.Grow(len(sign) + len(s) + len(s)/3)
	b.WriteString(sign)
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// Truncate shortens long digit strings to their first and last n digits.
func Truncate(s string, n int) string {
	if n <= 0 || len(s) <= 2*n+3 {
		return s
	}
	return s[:n] + "..." + s[len(s)-n:]
}
