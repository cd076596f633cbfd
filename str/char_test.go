package str

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCharClasses(t *testing.T) {
	for c := 0; c < 256; c++ {
		b := byte(c)
		assert.Equal(t, b >= '0' && b <= '9', IsDigit(b), "IsDigit(%q)", b)
		assert.Equal(t, b >= '1' && b <= '9', IsDigitNoZero(b), "IsDigitNoZero(%q)", b)
	}

	assert.True(t, IsHexDigit('f'))
	assert.True(t, IsHexDigit('F'))
	assert.False(t, IsHexDigit('g'))
	assert.True(t, IsSpace('\t'))
	assert.False(t, IsSpace('\v'))
	assert.True(t, IsAlphabetic('q'))
	assert.False(t, IsAlphabetic('_'))
}

func TestHexDigitValue(t *testing.T) {
	assert.Equal(t, byte(0), HexDigitValue('0'))
	assert.Equal(t, byte(9), HexDigitValue('9'))
	assert.Equal(t, byte(10), HexDigitValue('a'))
	assert.Equal(t, byte(15), HexDigitValue('F'))
	assert.Panics(t, func() { HexDigitValue('x') })
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct{ in, want int }{
		{-5, 1}, {0, 1}, {1, 1}, {2, 2}, {3, 4}, {5, 8}, {16, 16}, {17, 32}, {1000, 1024},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NextPowerOfTwo(tt.in), "NextPowerOfTwo(%d)", tt.in)
	}
}

func TestEncodeRuneMatchesUTF8(t *testing.T) {
	var p [4]byte
	for _, r := range []rune{0, 0x7F, 0x80, 0x7FF, 0x800, 0xFFFF, 0x10000, 0x10FFFF} {
		n := EncodeRune(p[:], uint32(r))
		assert.Equal(t, utf8.RuneLen(r), n, "length of %U", r)
		assert.Equal(t, string(r), string(p[:n]), "encoding of %U", r)
		assert.Equal(t, n, RuneLen(p[0]))
		for _, c := range p[1:n] {
			assert.True(t, IsContinuationByte(c))
		}
	}
	assert.Zero(t, EncodeRune(p[:], 0x110000))
	assert.Zero(t, RuneLen(0x80))
	assert.Zero(t, RuneLen(0xFF))
}
