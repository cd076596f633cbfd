package str

import (
	"strconv"

	arena "github.com/pavanmanishd/arenajson"
)

// Builder is a growable byte buffer allocated from an arena. The byte after
// the last appended one is always 0, so the allocation is one byte larger
// than what Cap reports as usable.
//
// When the buffer is the most recent allocation of its arena it grows in
// place; otherwise growth allocates a block of the next power of two and
// copies. Allocating from the same arena between two appends is allowed but
// disables the in-place path for the next growth.
type Builder struct {
	a    *arena.Arena
	off  int    // offset of data within a
	data []byte // whole allocation, len(data) is the capacity
	n    int
}

// NewBuilder allocates a builder able to hold initialCap bytes before it has
// to grow.
func NewBuilder(initialCap int, a *arena.Arena) *Builder {
	if initialCap < 0 {
		initialCap = 0
	}
	off, data := a.AllocOffset(1, 1, initialCap+1)
	return &Builder{a: a, off: off, data: data}
}

// CloneBuilder returns a builder holding a copy of s.
func CloneBuilder(s Str, a *arena.Arena) *Builder {
	b := NewBuilder(len(s), a)
	b.Append(s)
	return b
}

// Len returns the number of bytes appended so far.
func (b *Builder) Len() int { return b.n }

// Cap returns the size of the underlying allocation, terminator included.
func (b *Builder) Cap() int { return len(b.data) }

// Space returns how many bytes can be appended without growing.
func (b *Builder) Space() int { return len(b.data) - b.n - 1 }

// Grow makes room for at least more additional bytes.
func (b *Builder) Grow(more int) {
	if more <= b.Space() {
		return
	}
	newCap := NextPowerOfTwo(len(b.data) + more + 1)

	if b.a.IsLast(b.off, len(b.data)) {
		b.data = b.a.Extend(b.off, len(b.data), newCap-len(b.data))
		return
	}

	off, data := b.a.AllocOffset(1, 1, newCap)
	copy(data, b.data[:b.n])
	b.off, b.data = off, data
}

// Append appends s.
func (b *Builder) Append(s Str) {
	b.Grow(len(s))
	copy(b.data[b.n:], s)
	b.n += len(s)
	b.data[b.n] = 0
}

// AppendString appends s.
func (b *Builder) AppendString(s string) {
	b.Grow(len(s))
	copy(b.data[b.n:], s)
	b.n += len(s)
	b.data[b.n] = 0
}

// AppendByte appends c.
func (b *Builder) AppendByte(c byte) {
	b.Grow(1)
	b.data[b.n] = c
	b.n++
	b.data[b.n] = 0
}

// AppendMany appends count copies of c.
func (b *Builder) AppendMany(c byte, count int) {
	if count <= 0 {
		return
	}
	b.Grow(count)
	for i := 0; i < count; i++ {
		b.data[b.n+i] = c
	}
	b.n += count
	b.data[b.n] = 0
}

// AppendUint64 appends the decimal representation of v.
func (b *Builder) AppendUint64(v uint64) {
	var scratch [20]byte
	b.Append(strconv.AppendUint(scratch[:0], v, 10))
}

// AppendInt64 appends the decimal representation of v.
func (b *Builder) AppendInt64(v int64) {
	var scratch [20]byte
	b.Append(strconv.AppendInt(scratch[:0], v, 10))
}

// AppendFloat appends f in the given strconv format and precision.
func (b *Builder) AppendFloat(f float64, fmt byte, prec int) {
	var scratch [32]byte
	b.Append(strconv.AppendFloat(scratch[:0], f, fmt, prec, 64))
}

// AppendRune appends the UTF-8 encoding of the code point c, see EncodeRune.
// Nothing is appended for values above MaxRune.
func (b *Builder) AppendRune(c uint32) {
	var p [4]byte
	b.Append(p[:EncodeRune(p[:], c)])
}

// CapitalizeAt upper-cases the ASCII letter at pos, if it is one.
func (b *Builder) CapitalizeAt(pos int) {
	if pos < 0 || pos >= b.n {
		panic("str: CapitalizeAt out of range")
	}
	if c := b.data[pos]; 'a' <= c && c <= 'z' {
		b.data[pos] = c - ('a' - 'A')
	}
}

// ReplaceByteFrom replaces every from with to, starting at index start.
func (b *Builder) ReplaceByteFrom(start int, from, to byte) {
	for i := start; i < b.n; i++ {
		if b.data[i] == from {
			b.data[i] = to
		}
	}
}

// Build returns a view over the appended bytes. The view stays valid after
// further appends only if they do not reallocate.
func (b *Builder) Build() Str {
	return Str(b.data[:b.n:b.n])
}

// Terminated returns the appended bytes followed by the 0 terminator.
func (b *Builder) Terminated() []byte {
	return b.data[:b.n+1 : b.n+1]
}
