// Package str provides the byte string primitives the JSON engine is built
// on: Str, an immutable view over bytes it does not own, and Builder, an
// appendable byte buffer carved from an arena.
//
// A Str points either into caller-supplied input or into an arena; it is
// valid for as long as that memory is. Comparisons are byte-exact and no
// encoding is assumed.
package str

import (
	"bytes"

	arena "github.com/pavanmanishd/arenajson"
)

// Str is a read-only view over bytes owned by someone else.
// Methods never modify the viewed bytes.
type Str []byte

// FromString returns a view over a copy of s.
func FromString(s string) Str {
	return Str(s)
}

// Len returns the number of bytes in s.
func (s Str) Len() int { return len(s) }

// IsEmpty reports whether s has no bytes.
func (s Str) IsEmpty() bool { return len(s) == 0 }

// String returns a copy of s as a Go string.
func (s Str) String() string { return string(s) }

// Eq reports whether s and other hold the same bytes.
func (s Str) Eq(other Str) bool { return bytes.Equal(s, other) }

// EqString reports whether s holds exactly the bytes of other.
func (s Str) EqString(other string) bool { return string(s) == other }

// First returns the first byte of s, or 0 if s is empty.
func (s Str) First() byte {
	if len(s) == 0 {
		return 0
	}
	return s[0]
}

// Advance returns s without its first n bytes. It returns an empty Str when
// n > s.Len().
func (s Str) Advance(n int) Str {
	if n < 0 || n > len(s) {
		return nil
	}
	return s[n:]
}

// StartsWith reports whether s begins with prefix.
func (s Str) StartsWith(prefix Str) bool { return bytes.HasPrefix(s, prefix) }

// EndsWith reports whether s ends with suffix.
func (s Str) EndsWith(suffix Str) bool { return bytes.HasSuffix(s, suffix) }

// Find returns the index of the first occurrence of needle in s, or -1.
func (s Str) Find(needle Str) int { return bytes.Index(s, needle) }

// FindByte returns the index of the first c in s, or -1.
func (s Str) FindByte(c byte) int { return bytes.IndexByte(s, c) }

// Contains reports whether needle occurs in s.
func (s Str) Contains(needle Str) bool { return bytes.Contains(s, needle) }

// RFind returns the index of the last occurrence of needle in s, or -1.
func (s Str) RFind(needle Str) int { return bytes.LastIndex(s, needle) }

// RContains reports whether needle occurs in s, searching from the end.
// It is the cheaper test when needle is expected near the end, as with a
// header terminator at the tail of a growing read buffer.
func (s Str) RContains(needle Str) bool { return s.RFind(needle) != -1 }

// Count returns the number of occurrences of c in s.
func (s Str) Count(c byte) int { return bytes.Count(s, []byte{c}) }

// TrimLeft returns s without its leading run of c.
func (s Str) TrimLeft(c byte) Str {
	for len(s) > 0 && s[0] == c {
		s = s[1:]
	}
	return s
}

// SplitResult is the outcome of Split and RSplit. When the separator is not
// found, Left and Right are both the whole input.
type SplitResult struct {
	Left, Right Str
	Pos         int
	Found       bool
}

// Split cuts s around the first sep.
func (s Str) Split(sep byte) SplitResult {
	i := bytes.IndexByte(s, sep)
	if i == -1 {
		return SplitResult{Left: s, Right: s}
	}
	return SplitResult{Left: s[:i], Right: s[i+1:], Pos: i, Found: true}
}

// RSplit cuts s around the last sep.
func (s Str) RSplit(sep byte) SplitResult {
	i := bytes.LastIndexByte(s, sep)
	if i == -1 {
		return SplitResult{Left: s, Right: s}
	}
	return SplitResult{Left: s[:i], Right: s[i+1:], Pos: i, Found: true}
}

// ToUint64 parses s as an unsigned decimal. It returns 0 if s contains any
// byte that is not a digit. Overflow wraps.
func (s Str) ToUint64() uint64 {
	var n uint64
	for _, c := range s {
		if !IsDigit(c) {
			return 0
		}
		n = n*10 + uint64(c-'0')
	}
	return n
}

// Clone copies s into memory allocated from a. An empty s is returned as is
// without allocating.
func (s Str) Clone(a *arena.Arena) Str {
	if len(s) == 0 {
		return s
	}
	b := a.Alloc(1, 1, len(s))
	copy(b, s)
	return Str(b)
}
