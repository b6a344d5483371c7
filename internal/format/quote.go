package format

import (
	"math"
	"strconv"
	"strings"

	"jsxstream/internal/lexer"
)

// QuoteString renders s as a double-quoted JavaScript string literal.
func QuoteString(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\v':
			sb.WriteString(`\v`)
		case 0:
			// \0 перед цифрой читался бы как восьмеричный эскейп
			if i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9' {
				sb.WriteString(`\x00`)
			} else {
				sb.WriteString(`\0`)
			}
		case '\u2028':
			sb.WriteString(`\u2028`)
		case '\u2029':
			sb.WriteString(`\u2029`)
		default:
			if r < 0x20 || r == 0x7f {
				sb.WriteString(`\x`)
				sb.WriteString(hex2(byte(r)))
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func hex2(b byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[b>>4], digits[b&0xf]})
}

// EscapeTemplate escapes cooked text for use between template delimiters.
func EscapeTemplate(cooked string) string {
	if !strings.ContainsAny(cooked, "\\`$\r") {
		return cooked
	}
	var sb strings.Builder
	sb.Grow(len(cooked) + 8)
	for i := 0; i < len(cooked); i++ {
		c := cooked[i]
		switch {
		case c == '\\':
			sb.WriteString(`\\`)
		case c == '`':
			sb.WriteString("\\`")
		case c == '$' && i+1 < len(cooked) && cooked[i+1] == '{':
			sb.WriteString(`\$`)
		case c == '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// IsIdentifier reports whether name can be printed as a bare property key.
func IsIdentifier(name string) bool {
	return lexer.IsIdentifier(name)
}

// NumberString formats a number the way JavaScript's ToString does for the
// common cases.
func NumberString(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	// Go пишет 1e-07, в JavaScript 1e-7
	if i := strings.IndexAny(s, "e"); i >= 0 {
		mant, exp := s[:i], s[i+1:]
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if sign == "+" {
			s = mant + "e+" + digits
		} else {
			s = mant + "e-" + digits
		}
	}
	return s
}
