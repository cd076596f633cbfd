// Package json parses and pretty-prints JSON documents over an arena.
//
// Parse builds a tree of Nodes from a cursor; decoded string bytes are
// carved from the arena and nodes come from the parser's slab, so a whole
// document is reclaimed at once by dropping (or resetting) both. Format turns
// a tree back into canonical two-space indented text, also allocated from an
// arena.
//
// Malformed input is not an error value: Parse returns nil. Arena exhaustion
// panics like every other arena allocation.
package json

import (
	"github.com/pavanmanishd/arenajson/str"
)

// Kind is the type of a JSON value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Node is one value of a parsed document. Only the payload matching Kind is
// set. Nodes are never modified once the parser returns them.
type Node struct {
	kind    Kind
	b       bool
	num     float64
	s       str.Str
	items   []*Node
	members []Member
}

// Member is one key/value pair of an object.
type Member struct {
	Key   str.Str
	Value *Node
}

// Kind returns the type of n. A nil node is KindInvalid.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindInvalid
	}
	return n.kind
}

// Bool returns the value of a KindBool node.
func (n *Node) Bool() bool { return n.b }

// Number returns the value of a KindNumber node.
func (n *Node) Number() float64 { return n.num }

// Str returns the decoded bytes of a KindString node.
func (n *Node) Str() str.Str { return n.s }

// Len returns the number of elements of an array or members of an object,
// and 0 for scalars.
func (n *Node) Len() int {
	switch n.Kind() {
	case KindArray:
		return len(n.items)
	case KindObject:
		return len(n.members)
	}
	return 0
}

// Items returns the elements of an array in source order.
func (n *Node) Items() []*Node { return n.items }

// Index returns the i-th element of an array, or nil if out of range.
func (n *Node) Index(i int) *Node {
	if n.Kind() != KindArray || i < 0 || i >= len(n.items) {
		return nil
	}
	return n.items[i]
}

// Members returns the members of an object in source order. Duplicate keys
// are kept.
func (n *Node) Members() []Member { return n.members }

// Lookup returns the values of every member named key, in source order.
// No decision is made between duplicates.
func (n *Node) Lookup(key string) []*Node {
	if n.Kind() != KindObject {
		return nil
	}
	var res []*Node
	for _, m := range n.members {
		if m.Key.EqString(key) {
			res = append(res, m.Value)
		}
	}
	return res
}

// Keys returns the member keys of an object in source order.
func (n *Node) Keys() []str.Str {
	if n.Kind() != KindObject {
		return nil
	}
	keys := make([]str.Str, len(n.members))
	for i, m := range n.members {
		keys[i] = m.Key
	}
	return keys
}
