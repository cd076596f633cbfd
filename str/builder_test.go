package str

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	arena "github.com/pavanmanishd/arenajson"
)

func TestNewBuilder(t *testing.T) {
	a := arena.New(64)
	b := NewBuilder(7, a)

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 8, b.Cap())
	assert.Equal(t, 7, b.Space())
	assert.Equal(t, 8, a.SizeInUse())
	assert.Equal(t, []byte{0}, b.Terminated())
	assert.True(t, b.Build().IsEmpty())
}

func TestBuilderGrowsInPlace(t *testing.T) {
	a := arena.New(64)
	b := NewBuilder(3, a)
	off := b.off

	b.AppendString("abcd")

	assert.Equal(t, off, b.off, "the last allocation must grow without moving")
	assert.Equal(t, 16, b.Cap())
	assert.Equal(t, 16, a.Offset())
	assert.Equal(t, "abcd", b.Build().String())
	assert.Equal(t, []byte("abcd\x00"), b.Terminated())
}

func TestBuilderGrowsByCopy(t *testing.T) {
	a := arena.New(64)
	b := NewBuilder(3, a)
	b.AppendString("ab")

	other := a.Alloc(1, 1, 1)
	other[0] = 'z'

	b.AppendString("cdef")

	assert.Equal(t, 5, b.off, "growth must move past the interleaved allocation")
	assert.Equal(t, 16, b.Cap())
	assert.Equal(t, 5+16, a.Offset())
	assert.Equal(t, "abcdef", b.Build().String())
	assert.Equal(t, byte('z'), other[0], "growth must not touch the interleaved allocation")
}

func TestBuilderTerminator(t *testing.T) {
	a := arena.New(256)
	b := NewBuilder(0, a)

	steps := []func(){
		func() { b.AppendByte('x') },
		func() { b.AppendString("yz") },
		func() { b.Append(FromString("0123456789")) },
		func() { b.AppendMany(' ', 5) },
		func() { b.AppendUint64(42) },
		func() { b.AppendRune(0xE9) },
	}
	for i, step := range steps {
		step()
		term := b.Terminated()
		require.Len(t, term, b.Len()+1, "step %d", i)
		assert.Equal(t, byte(0), term[b.Len()], "step %d", i)
		assert.LessOrEqual(t, b.Len()+1, b.Cap(), "step %d", i)
	}
	assert.Equal(t, "xyz0123456789     42\xc3\xa9", b.Build().String())
}

func TestBuilderAppendNumbers(t *testing.T) {
	a := arena.New(256)
	b := NewBuilder(4, a)

	b.AppendUint64(0)
	b.AppendByte(' ')
	b.AppendUint64(math.MaxUint64)
	b.AppendByte(' ')
	b.AppendInt64(-9)
	b.AppendByte(' ')
	b.AppendInt64(math.MinInt64)
	b.AppendByte(' ')
	b.AppendFloat(12.5, 'f', -1)

	assert.Equal(t, "0 18446744073709551615 -9 -9223372036854775808 12.5", b.Build().String())
}

func TestBuilderAppendManyZero(t *testing.T) {
	a := arena.New(16)
	b := NewBuilder(2, a)

	b.AppendMany('-', 0)
	b.AppendMany('-', -3)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 3, a.Offset())
}

func TestBuilderCapitalizeAndReplace(t *testing.T) {
	a := arena.New(64)
	b := CloneBuilder(FromString("content-type"), a)

	b.CapitalizeAt(0)
	b.CapitalizeAt(8)
	b.CapitalizeAt(7)
	assert.Equal(t, "Content-Type", b.Build().String())

	b.ReplaceByteFrom(3, 't', 'T')
	assert.Equal(t, "ConTenT-Type", b.Build().String())

	assert.Panics(t, func() { b.CapitalizeAt(b.Len()) })
	assert.Panics(t, func() { b.CapitalizeAt(-1) })
}

func TestCloneBuilder(t *testing.T) {
	a := arena.New(64)
	src := FromString("hello")
	b := CloneBuilder(src, a)

	assert.Equal(t, "hello", b.Build().String())
	assert.Equal(t, 0, b.Space())

	b.AppendString(", world")
	assert.Equal(t, "hello, world", b.Build().String())
	assert.Equal(t, "hello", src.String())
}

func TestBuilderExhaustion(t *testing.T) {
	a := arena.New(8)
	b := NewBuilder(3, a)

	assert.Panics(t, func() { b.AppendString("0123456789") })
}

func TestBuilderAppendRune(t *testing.T) {
	tests := []struct {
		name string
		in   uint32
		want []byte
	}{
		{"ascii", 'A', []byte("A")},
		{"two bytes", 0xE9, []byte{0xC3, 0xA9}},
		{"three bytes", 0x20AC, []byte{0xE2, 0x82, 0xAC}},
		{"lone surrogate", 0xD800, []byte{0xED, 0xA0, 0x80}},
		{"four bytes", 0x1F600, []byte{0xF0, 0x9F, 0x98, 0x80}},
		{"above max", MaxRune + 1, []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := arena.New(32)
			b := NewBuilder(0, a)
			b.AppendRune(tt.in)
			assert.Equal(t, tt.want, []byte(b.Build()))
		})
	}
}
