package arena

// DefaultSlabChunkLen is the number of values per chunk used by NewSlab when
// chunkLen <= 0.
const DefaultSlabChunkLen = 256

// Slab is a chunked typed bump allocator for values that hold Go pointers and
// therefore cannot live inside an Arena's byte region. Values are handed out
// sequentially from fixed-size chunks; chunks never move, so returned pointers
// stay valid until Reset. Not goroutine-safe.
type Slab[T any] struct {
	chunks   [][]T
	chunkLen int
	cur      int // index of the chunk being filled
	next     int // next free slot in chunks[cur]
	n        int
}

// NewSlab creates a Slab whose chunks hold chunkLen values.
// If chunkLen <= 0, DefaultSlabChunkLen is used.
func NewSlab[T any](chunkLen int) *Slab[T] {
	if chunkLen <= 0 {
		chunkLen = DefaultSlabChunkLen
	}
	return &Slab[T]{chunkLen: chunkLen}
}

// New returns a pointer to a zeroed T owned by the slab.
func (s *Slab[T]) New() *T {
	if s.cur >= len(s.chunks) || s.next == len(s.chunks[s.cur]) {
		s.advance()
	}
	v := &s.chunks[s.cur][s.next]
	s.next++
	s.n++
	return v
}

// advance moves to the next chunk, reusing a chunk kept by Reset if any.
func (s *Slab[T]) advance() {
	if len(s.chunks) > 0 && s.next > 0 {
		s.cur++
	}
	s.next = 0
	if s.cur < len(s.chunks) {
		return
	}
	s.chunks = append(s.chunks, make([]T, s.chunkLen))
}

// Len returns the number of values handed out since the last Reset.
func (s *Slab[T]) Len() int {
	return s.n
}

// NumChunks returns the number of chunks allocated by the slab.
func (s *Slab[T]) NumChunks() int {
	return len(s.chunks)
}

// Reset zeroes every handed-out value and keeps the chunks for reuse.
// Pointers returned before the call must not be used afterwards.
func (s *Slab[T]) Reset() {
	for i := 0; i < len(s.chunks) && i <= s.cur; i++ {
		clear(s.chunks[i])
	}
	s.cur = 0
	s.next = 0
	s.n = 0
}
