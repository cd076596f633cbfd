// Package cursor implements a forward-only read position over a str.Str.
//
// Every operation works on bytes already in memory: nothing blocks and
// nothing allocates. Peek and Next return 0 at the end of input rather than
// failing, so callers that care must check IsAtEnd.
package cursor

import (
	"github.com/pavanmanishd/arenajson/str"
)

// Cursor is a read position over an immutable byte view.
// The zero value is a cursor over empty input.
type Cursor struct {
	s   str.Str
	pos int
}

// New returns a cursor positioned at the start of s.
func New(s str.Str) *Cursor {
	return &Cursor{s: s}
}

// Pos returns the number of bytes consumed so far.
func (c *Cursor) Pos() int { return c.pos }

// SetPos moves the cursor to pos. It panics if pos is outside the input.
func (c *Cursor) SetPos(pos int) {
	if pos < 0 || pos > len(c.s) {
		panic("cursor: position out of range")
	}
	c.pos = pos
}

// IsAtEnd reports whether all input has been consumed.
func (c *Cursor) IsAtEnd() bool { return c.pos >= len(c.s) }

// Remaining returns the bytes not consumed yet.
func (c *Cursor) Remaining() str.Str { return c.s.Advance(c.pos) }

// Peek returns the next byte without consuming it, or 0 at the end.
func (c *Cursor) Peek() byte {
	if c.IsAtEnd() {
		return 0
	}
	return c.s[c.pos]
}

// Next consumes and returns one byte, or returns 0 at the end.
func (c *Cursor) Next() byte {
	if c.IsAtEnd() {
		return 0
	}
	b := c.s[c.pos]
	c.pos++
	return b
}

// Match consumes needle if the remaining input starts with it.
// Nothing matches at the end of input, not even an empty needle.
func (c *Cursor) Match(needle str.Str) bool {
	if c.IsAtEnd() {
		return false
	}
	if !c.Remaining().StartsWith(needle) {
		return false
	}
	c.pos += len(needle)
	return true
}

// MatchString is Match for a Go string needle.
func (c *Cursor) MatchString(needle string) bool {
	return c.Match(str.FromString(needle))
}

// MatchChar consumes the next byte if it equals b.
func (c *Cursor) MatchChar(b byte) bool {
	if c.IsAtEnd() || c.s[c.pos] != b {
		return false
	}
	c.pos++
	return true
}

// MatchCharOneOf consumes the next byte if it is one of needles and returns it.
func (c *Cursor) MatchCharOneOf(needles str.Str) (byte, bool) {
	if c.IsAtEnd() {
		return 0, false
	}
	b := c.s[c.pos]
	if needles.FindByte(b) == -1 {
		return 0, false
	}
	c.pos++
	return b, true
}

// MatchUntilExcl returns the bytes up to the next occurrence of needle and
// leaves the cursor on the needle. If needle does not occur, it returns nil
// and the cursor does not move.
func (c *Cursor) MatchUntilExcl(needle str.Str) str.Str {
	rem := c.Remaining()
	i := rem.Find(needle)
	if i == -1 {
		return nil
	}
	c.pos += i
	return rem[:i:i]
}

// MatchUntilExclChar is MatchUntilExcl for a single byte needle.
func (c *Cursor) MatchUntilExclChar(b byte) str.Str {
	res := c.Remaining().Split(b)
	if !res.Found {
		return nil
	}
	c.pos += res.Pos
	return res.Left[:res.Pos:res.Pos]
}

// SkipSpaces consumes a maximal run of space, tab, CR and LF.
func (c *Cursor) SkipSpaces() {
	for c.pos < len(c.s) && str.IsSpace(c.s[c.pos]) {
		c.pos++
	}
}

// NextRune consumes one UTF-8 encoded character and returns its bytes. The
// length comes from the leading byte and every following byte must be a
// continuation byte; the encoded value itself is not checked. On failure it
// returns false, with the bytes examined so far consumed.
func (c *Cursor) NextRune() ([]byte, bool) {
	if c.IsAtEnd() {
		return nil, false
	}
	start := c.pos
	n := str.RuneLen(c.Next())
	if n == 0 {
		return nil, false
	}
	for i := 1; i < n; i++ {
		if c.IsAtEnd() || !str.IsContinuationByte(c.Next()) {
			return nil, false
		}
	}
	return c.s[start:c.pos:c.pos], true
}
