package json

import (
	"github.com/pavanmanishd/arenajson/str"
)

const hexDigits = "0123456789abcdef"

// needsEscape reports whether s holds a byte that appendEscaped rewrites.
func needsEscape(s str.Str) bool {
	for _, c := range s {
		if c < 0x20 || c == 0x7F || c == '"' || c == '\\' {
			return true
		}
	}
	return false
}

// appendEscaped appends s with quotes, backslashes and control characters,
// DEL included, escaped. Other bytes, including non-ASCII ones, are copied as is.
func appendEscaped(b *str.Builder, s str.Str) {
	if !needsEscape(s) {
		b.Append(s)
		return
	}

	start := 0
	for i, c := range s {
		if c >= 0x20 && c != 0x7F && c != '"' && c != '\\' {
			continue
		}
		b.Append(s[start:i])
		start = i + 1

		switch c {
		case '"', '\\':
			b.AppendByte('\\')
			b.AppendByte(c)
		case '\b':
			b.AppendString(`\b`)
		case '\f':
			b.AppendString(`\f`)
		case '\n':
			b.AppendString(`\n`)
		case '\r':
			b.AppendString(`\r`)
		case '\t':
			b.AppendString(`\t`)
		default:
			b.AppendString(`\u00`)
			b.AppendByte(hexDigits[c>>4])
			b.AppendByte(hexDigits[c&0xF])
		}
	}
	b.Append(s[start:])
}
