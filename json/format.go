package json

import (
	"math"

	arena "github.com/pavanmanishd/arenajson"
	"github.com/pavanmanishd/arenajson/str"
)

const (
	defaultIndent = 2

	// formatInitialCap is the first builder capacity used by Format. The
	// builder is the arena's last allocation while formatting, so it grows
	// in place rather than by copying.
	formatInitialCap = 256
)

// Formatter pretty-prints node trees. The zero value prints the canonical
// form: two spaces per level, numbers truncated to their integral part and
// string bytes written between quotes exactly as stored.
type Formatter struct {
	// Indent is the number of spaces per nesting level. 0 means 2.
	Indent int

	// EscapeStrings escapes quotes, backslashes and control characters in
	// strings and keys, so the output is always valid JSON.
	EscapeStrings bool

	// PreciseNumbers prints the shortest decimal that parses back to the
	// same number instead of its integral part. Exponents are never used.
	PreciseNumbers bool
}

// Format formats n with the default Formatter. A nil node formats to an
// empty Str.
func Format(n *Node, a *arena.Arena) str.Str {
	var f Formatter
	return f.Format(n, a)
}

// Format formats n into memory allocated from a. A nil node formats to an
// empty Str without allocating.
func (f Formatter) Format(n *Node, a *arena.Arena) str.Str {
	if n == nil {
		return nil
	}
	b := str.NewBuilder(formatInitialCap, a)
	f.Append(b, n)
	return b.Build()
}

// Append formats n at the end of b. Nothing is appended for a nil node.
func (f Formatter) Append(b *str.Builder, n *Node) {
	if n == nil {
		return
	}
	if f.Indent <= 0 {
		f.Indent = defaultIndent
	}
	f.appendNode(b, n, 0)
}

func (f Formatter) appendNode(b *str.Builder, n *Node, indent int) {
	switch n.kind {
	case KindNull:
		b.AppendString("null")
	case KindBool:
		if n.b {
			b.AppendString("true")
		} else {
			b.AppendString("false")
		}
	case KindNumber:
		f.appendNumber(b, n.num)
	case KindString:
		f.appendString(b, n.s)
	case KindArray:
		if len(n.items) == 0 {
			b.AppendString("[]")
			return
		}
		b.AppendString("[\n")
		for i, item := range n.items {
			b.AppendMany(' ', indent+f.Indent)
			f.appendNode(b, item, indent+f.Indent)
			if i < len(n.items)-1 {
				b.AppendString(",\n")
			}
		}
		b.AppendByte('\n')
		b.AppendMany(' ', indent)
		b.AppendByte(']')
	case KindObject:
		if len(n.members) == 0 {
			b.AppendString("{}")
			return
		}
		b.AppendString("{\n")
		for i, m := range n.members {
			b.AppendMany(' ', indent+f.Indent)
			f.appendString(b, m.Key)
			b.AppendString(": ")
			f.appendNode(b, m.Value, indent+f.Indent)
			if i < len(n.members)-1 {
				b.AppendString(",\n")
			}
		}
		b.AppendByte('\n')
		b.AppendMany(' ', indent)
		b.AppendByte('}')
	default:
		panic("json: format of invalid node")
	}
}

func (f Formatter) appendNumber(b *str.Builder, v float64) {
	if !f.PreciseNumbers {
		v = math.Trunc(v)
	}
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	if f.PreciseNumbers {
		b.AppendFloat(v, 'f', -1)
	} else {
		b.AppendFloat(v, 'f', 0)
	}
}

func (f Formatter) appendString(b *str.Builder, s str.Str) {
	b.AppendByte('"')
	if f.EscapeStrings {
		appendEscaped(b, s)
	} else {
		b.Append(s)
	}
	b.AppendByte('"')
}
