package str

// IsDigit reports whether c is an ASCII decimal digit.
func IsDigit(c byte) bool { return '0' <= c && c <= '9' }

// IsDigitNoZero reports whether c is an ASCII digit other than '0'.
func IsDigitNoZero(c byte) bool { return '1' <= c && c <= '9' }

// IsHexDigit reports whether c is an ASCII hexadecimal digit.
func IsHexDigit(c byte) bool {
	return IsDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// IsSpace reports whether c is JSON whitespace: space, tab, CR or LF.
func IsSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// IsAlphabetic reports whether c is an ASCII letter.
func IsAlphabetic(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// HexDigitValue returns the value of the hexadecimal digit c.
// It panics if c is not a hex digit.
func HexDigitValue(c byte) byte {
	switch {
	case IsDigit(c):
		return c - '0'
	case 'a' <= c && c <= 'f':
		return 10 + c - 'a'
	case 'A' <= c && c <= 'F':
		return 10 + c - 'A'
	}
	panic("str: not a hex digit")
}

// NextPowerOfTwo returns the smallest power of two >= n, and 1 for n <= 1.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// MaxRune is the largest code point EncodeRune accepts.
const MaxRune = 0x10FFFF

// EncodeRune writes the UTF-8 encoding of c into p and returns the number of
// bytes written: 1 up to 0x7F, 2 up to 0x7FF, 3 up to 0xFFFF, 4 up to
// 0x10FFFF. Surrogate halves are encoded like any other 3-byte code point.
// Values above MaxRune write nothing and return 0. p must have room for 4
// bytes.
func EncodeRune(p []byte, c uint32) int {
	switch {
	case c <= 0x7F:
		p[0] = byte(c)
		return 1
	case c <= 0x7FF:
		p[0] = 0xC0 | byte(c>>6)
		p[1] = 0x80 | byte(c)&0x3F
		return 2
	case c <= 0xFFFF:
		p[0] = 0xE0 | byte(c>>12)
		p[1] = 0x80 | byte(c>>6)&0x3F
		p[2] = 0x80 | byte(c)&0x3F
		return 3
	case c <= MaxRune:
		p[0] = 0xF0 | byte(c>>18)
		p[1] = 0x80 | byte(c>>12)&0x3F
		p[2] = 0x80 | byte(c>>6)&0x3F
		p[3] = 0x80 | byte(c)&0x3F
		return 4
	}
	return 0
}

// RuneLen returns the length announced by the UTF-8 leading byte c, or 0 if
// c cannot start an encoded character.
func RuneLen(c byte) int {
	switch {
	case c < 0x80:
		return 1
	case c&0xE0 == 0xC0:
		return 2
	case c&0xF0 == 0xE0:
		return 3
	case c&0xF8 == 0xF0:
		return 4
	}
	return 0
}

// IsContinuationByte reports whether c is a UTF-8 continuation byte.
func IsContinuationByte(c byte) bool { return c&0xC0 == 0x80 }
