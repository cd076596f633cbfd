package json

import (
	"math"
	"strconv"

	arena "github.com/pavanmanishd/arenajson"
	"github.com/pavanmanishd/arenajson/cursor"
	"github.com/pavanmanishd/arenajson/str"
)

// DefaultMaxDepth is the nesting limit used when Parser.MaxDepth is 0.
const DefaultMaxDepth = 512

// Parser parses JSON values. The zero value is ready to use.
//
// A Parser owns the memory of the nodes it returns and recycles it on the
// next call to Parse: a tree stays valid until then, the same way arena
// memory stays valid until the arena is reset. Not goroutine-safe.
type Parser struct {
	// MaxDepth bounds the nesting of arrays and objects. Deeper input is
	// rejected. 0 means DefaultMaxDepth.
	MaxDepth int

	// AllowBareExponent accepts an exponent on a number without a fraction,
	// as in 1e5. By default only 1.0e5 is accepted.
	AllowBareExponent bool

	nodes *arena.Slab[Node]
}

// Parse parses one JSON value from c, with the default settings.
// See Parser.Parse.
func Parse(c *cursor.Cursor, a *arena.Arena) *Node {
	var p Parser
	return p.Parse(c, a)
}

// ParseBytes parses b, which must hold exactly one JSON value surrounded by
// optional whitespace.
func ParseBytes(b []byte, a *arena.Arena) *Node {
	var p Parser
	return p.ParseBytes(b, a)
}

// Parse parses one JSON value starting at the cursor, skipping whitespace
// around it. Decoded strings are allocated from a.
//
// It returns nil if the input is not valid JSON. The cursor is then left
// somewhere at or before the first offending byte, and anything allocated
// from a so far stays allocated. Bytes after the value are not examined.
func (p *Parser) Parse(c *cursor.Cursor, a *arena.Arena) *Node {
	if p.nodes == nil {
		p.nodes = arena.NewSlab[Node](0)
	} else {
		p.nodes.Reset()
	}

	maxDepth := p.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	d := decoder{
		c:                 c,
		a:                 a,
		nodes:             p.nodes,
		maxDepth:          maxDepth,
		allowBareExponent: p.AllowBareExponent,
	}
	return d.value(0)
}

// ParseBytes is the package-level ParseBytes with p's settings.
func (p *Parser) ParseBytes(b []byte, a *arena.Arena) *Node {
	c := cursor.New(b)
	n := p.Parse(c, a)
	if n == nil || !c.IsAtEnd() {
		return nil
	}
	return n
}

type decoder struct {
	c                 *cursor.Cursor
	a                 *arena.Arena
	nodes             *arena.Slab[Node]
	maxDepth          int
	allowBareExponent bool
}

func (d *decoder) newNode(k Kind) *Node {
	n := d.nodes.New()
	n.kind = k
	return n
}

// value parses one value and the whitespace following it.
func (d *decoder) value(depth int) *Node {
	d.c.SkipSpaces()

	var n *Node
	switch c := d.c.Peek(); {
	case c == 'n':
		n = d.null()
	case c == 't' || c == 'f':
		n = d.boolean()
	case c == '"':
		n = d.stringNode()
	case c == '[':
		n = d.array(depth + 1)
	case c == '{':
		n = d.object(depth + 1)
	case c == '-' || str.IsDigit(c):
		n = d.number()
	}
	if n == nil {
		return nil
	}

	d.c.SkipSpaces()
	return n
}

func (d *decoder) null() *Node {
	if !d.c.MatchString("null") {
		return nil
	}
	return d.newNode(KindNull)
}

func (d *decoder) boolean() *Node {
	var v bool
	switch {
	case d.c.MatchString("true"):
		v = true
	case d.c.MatchString("false"):
	default:
		return nil
	}
	n := d.newNode(KindBool)
	n.b = v
	return n
}

// number parses
//
//	-? (0 | [1-9][0-9]*) (\.[0-9]+ ([eE][+-]?[0-9]+)?)?
//
// The exponent also becomes legal without a fraction when bare exponents are
// allowed. A number directly followed by a byte that could continue it, as in
// 0123 or 1.2.3, is rejected.
func (d *decoder) number() *Node {
	start, rest := d.c.Pos(), d.c.Remaining()

	d.c.MatchChar('-')
	switch {
	case d.c.MatchChar('0'):
	case str.IsDigitNoZero(d.c.Peek()):
		d.digits()
	default:
		return nil
	}

	frac := false
	if d.c.MatchChar('.') {
		if d.digits() == 0 {
			return nil
		}
		frac = true
	}

	if frac || d.allowBareExponent {
		if _, ok := d.c.MatchCharOneOf(str.Str("eE")); ok {
			d.c.MatchCharOneOf(str.Str("+-"))
			if d.digits() == 0 {
				return nil
			}
		}
	}

	switch d.c.Peek() {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', '.', 'e', 'E', '+', '-':
		return nil
	}

	text := rest[:d.c.Pos()-start]
	v, err := strconv.ParseFloat(string(text), 64)
	if err != nil || math.IsInf(v, 0) {
		return nil
	}

	n := d.newNode(KindNumber)
	n.num = v
	return n
}

// digits consumes a run of decimal digits and returns its length.
func (d *decoder) digits() int {
	n := 0
	for str.IsDigit(d.c.Peek()) {
		d.c.Next()
		n++
	}
	return n
}

func (d *decoder) stringNode() *Node {
	s, ok := d.stringBytes()
	if !ok {
		return nil
	}
	n := d.newNode(KindString)
	n.s = s
	return n
}

// stringBytes parses a quoted string and returns its decoded bytes, copied
// into the arena.
func (d *decoder) stringBytes() (str.Str, bool) {
	if !d.c.MatchChar('"') {
		return nil, false
	}

	// Decoding never makes a string longer, so the distance to the next
	// quote is enough unless the string contains escaped quotes.
	initialCap := d.c.Remaining().FindByte('"')
	if initialCap < 0 {
		return nil, false
	}
	b := str.NewBuilder(initialCap, d.a)

	for {
		rem := d.c.Remaining()
		run := 0
		for run < len(rem) {
			c := rem[run]
			if c < 0x20 || c >= 0x7F || c == '"' || c == '\\' {
				break
			}
			run++
		}
		if run > 0 {
			b.Append(rem[:run])
			d.c.SetPos(d.c.Pos() + run)
		}

		if d.c.IsAtEnd() {
			return nil, false
		}

		switch c := d.c.Peek(); {
		case c == '"':
			d.c.Next()
			return b.Build(), true
		case c == '\\':
			d.c.Next()
			if !d.escape(b) {
				return nil, false
			}
		case c < 0x20 || c == 0x7F:
			return nil, false
		default:
			r, ok := d.c.NextRune()
			if !ok {
				return nil, false
			}
			b.Append(r)
		}
	}
}

// escape decodes the escape sequence following a backslash.
func (d *decoder) escape(b *str.Builder) bool {
	switch c := d.c.Next(); c {
	case '"', '\\', '/':
		b.AppendByte(c)
	case 'b':
		b.AppendByte('\b')
	case 'f':
		b.AppendByte('\f')
	case 'n':
		b.AppendByte('\n')
	case 'r':
		b.AppendByte('\r')
	case 't':
		b.AppendByte('\t')
	case 'u':
		r, ok := d.hex4()
		if !ok {
			return false
		}
		if isHighSurrogate(r) {
			if lo, ok := d.lowSurrogate(); ok {
				r = 0x10000 + (r-0xD800)<<10 + (lo - 0xDC00)
			}
		}
		b.AppendRune(r)
	default:
		return false
	}
	return true
}

// lowSurrogate consumes a \uXXXX escape holding a low surrogate. Anything
// else is left unconsumed.
func (d *decoder) lowSurrogate() (uint32, bool) {
	pos := d.c.Pos()
	if d.c.MatchString(`\u`) {
		if r, ok := d.hex4(); ok && isLowSurrogate(r) {
			return r, true
		}
	}
	d.c.SetPos(pos)
	return 0, false
}

func (d *decoder) hex4() (uint32, bool) {
	var r uint32
	for i := 0; i < 4; i++ {
		c := d.c.Next()
		if !str.IsHexDigit(c) {
			return 0, false
		}
		r = r<<4 | uint32(str.HexDigitValue(c))
	}
	return r, true
}

func isHighSurrogate(r uint32) bool { return 0xD800 <= r && r <= 0xDBFF }
func isLowSurrogate(r uint32) bool  { return 0xDC00 <= r && r <= 0xDFFF }

func (d *decoder) array(depth int) *Node {
	if depth > d.maxDepth {
		return nil
	}
	d.c.Next() // [

	n := d.newNode(KindArray)
	d.c.SkipSpaces()
	if d.c.MatchChar(']') {
		return n
	}

	for {
		item := d.value(depth)
		if item == nil {
			return nil
		}
		n.items = append(n.items, item)

		switch sep, _ := d.c.MatchCharOneOf(str.Str(",]")); sep {
		case ']':
			return n
		case ',':
			d.c.SkipSpaces()
			if d.c.Peek() == ']' {
				return nil
			}
		default:
			return nil
		}
	}
}

func (d *decoder) object(depth int) *Node {
	if depth > d.maxDepth {
		return nil
	}
	d.c.Next() // {

	n := d.newNode(KindObject)
	d.c.SkipSpaces()
	if d.c.MatchChar('}') {
		return n
	}

	for {
		if d.c.Peek() != '"' {
			return nil
		}
		key, ok := d.stringBytes()
		if !ok {
			return nil
		}
		d.c.SkipSpaces()
		if !d.c.MatchChar(':') {
			return nil
		}
		v := d.value(depth)
		if v == nil {
			return nil
		}
		n.members = append(n.members, Member{Key: key, Value: v})

		switch sep, _ := d.c.MatchCharOneOf(str.Str(",}")); sep {
		case '}':
			return n
		case ',':
			d.c.SkipSpaces()
			if d.c.Peek() == '}' {
				return nil
			}
		default:
			return nil
		}
	}
}
