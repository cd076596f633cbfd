// Package arena implements a fixed-capacity bump allocator (memory arena).
// Typical usage: create one arena per parse or per request, carve many
// short-lived byte blocks from it, then drop or Reset() it in O(1) when the
// unit of work is done.
package arena

import (
	"fmt"
	"math"
	"unsafe"
)

// DefaultCapacity is the capacity used by New when capacity <= 0 (64 KiB).
const DefaultCapacity = 64 << 10

// Arena is a bump allocator over a single contiguous byte region.
// Allocations only move the frontier forward; there is no per-allocation free.
// Not goroutine-safe: use one Arena per unit of work.
type Arena struct {
	buf      []byte
	off      int // frontier, 0 <= off <= len(buf)
	skew     int // address of buf[0] modulo 8
	allocs   int
	profiler Profiler
}

// Option configures an Arena.
type Option func(*Arena)

// WithProfiler attaches p to the arena. Every allocation is reported to it.
func WithProfiler(p Profiler) Option {
	return func(a *Arena) { a.profiler = p }
}

// New creates an Arena owning capacity bytes.
// If capacity <= 0, DefaultCapacity is used.
func New(capacity int, opts ...Option) *Arena {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return FromBuffer(make([]byte, capacity), opts...)
}

// FromBuffer creates an Arena carving its allocations out of buf.
// The caller must not use buf directly while the arena is alive.
func FromBuffer(buf []byte, opts ...Option) *Arena {
	if buf == nil {
		buf = []byte{}
	}
	a := &Arena{
		buf:  buf[:len(buf):len(buf)],
		skew: int(uintptr(unsafe.Pointer(unsafe.SliceData(buf))) & 7),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// OutOfMemoryError is the panic value raised when an allocation does not fit
// in the remaining capacity. Exhaustion is fatal: it is never returned.
type OutOfMemoryError struct {
	Available int
	Requested int
}

func (e *OutOfMemoryError) Error() string {
	return fmt.Sprintf("arena: out of memory: available=%d allocation_size=%d", e.Available, e.Requested)
}

// Alloc returns size*count zeroed bytes aligned to align (1, 2, 4 or 8).
// The returned slice has len == cap, so appending to it never writes into
// neighbouring allocations.
func (a *Arena) Alloc(size, align, count int) []byte {
	_, b := a.AllocOffset(size, align, count)
	return b
}

// AllocOffset is like Alloc but also returns the offset of the block within
// the arena, for use with IsLast and Extend.
func (a *Arena) AllocOffset(size, align, count int) (int, []byte) {
	a.panicIfReleased()
	if align != 1 && align != 2 && align != 4 && align != 8 {
		panic(fmt.Sprintf("arena: invalid alignment %d", align))
	}
	if size <= 0 || count <= 0 {
		panic(fmt.Sprintf("arena: invalid allocation size=%d count=%d", size, count))
	}
	if size > math.MaxInt/count {
		panic(&OutOfMemoryError{Available: a.Available(), Requested: math.MaxInt})
	}

	padding := -(a.skew + a.off) & (align - 1)
	n := padding + size*count
	if n > a.Available() {
		panic(&OutOfMemoryError{Available: a.Available(), Requested: n})
	}

	start := a.off + padding
	a.off += n
	a.allocs++

	b := a.buf[start:a.off:a.off]
	clear(b)

	if a.profiler != nil {
		a.profiler.RecordAlloc(count, n)
	}
	return start, b
}

// IsLast reports whether the block [off, off+size) ends exactly at the
// frontier, i.e. nothing has been allocated after it.
func (a *Arena) IsLast(off, size int) bool {
	if size <= 0 || off < 0 {
		return false
	}
	return off+size == a.off
}

// Extend grows the last allocation [off, off+size) in place by more bytes and
// returns the widened block. The new tail is zeroed.
// It panics if the block is not the last allocation.
func (a *Arena) Extend(off, size, more int) []byte {
	a.panicIfReleased()
	if !a.IsLast(off, size) {
		panic("arena: Extend on a block that is not the last allocation")
	}
	if more < 0 {
		panic(fmt.Sprintf("arena: invalid extension %d", more))
	}
	if more > a.Available() {
		panic(&OutOfMemoryError{Available: a.Available(), Requested: more})
	}

	clear(a.buf[a.off : a.off+more])
	a.off += more

	if a.profiler != nil && more > 0 {
		a.profiler.RecordAlloc(0, more)
	}
	return a.buf[off:a.off:a.off]
}

// Bytes returns the n bytes at off. The range must have been allocated.
func (a *Arena) Bytes(off, n int) []byte {
	a.panicIfReleased()
	if off < 0 || n < 0 || off+n > a.off {
		panic(fmt.Sprintf("arena: range [%d, %d) outside allocated memory", off, off+n))
	}
	return a.buf[off : off+n : off+n]
}

// Offset returns the current frontier.
func (a *Arena) Offset() int {
	return a.off
}

// Available returns the number of bytes left before the arena is exhausted.
func (a *Arena) Available() int {
	return len(a.buf) - a.off
}

// Reset moves the frontier back to the start so the memory can be reused.
// Every block handed out before the call becomes invalid.
func (a *Arena) Reset() {
	a.panicIfReleased()
	a.off = 0
	a.allocs = 0
}

// Release drops the backing memory and makes the arena unusable.
// Any subsequent allocation panics.
func (a *Arena) Release() {
	a.buf = nil
	a.off = 0
	a.allocs = 0
}

// panicIfReleased panics if the arena has been released.
func (a *Arena) panicIfReleased() {
	if a.buf == nil {
		panic("arena: use after Release()")
	}
}
