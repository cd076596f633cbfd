package json

import (
	"testing"

	arena "github.com/pavanmanishd/arenajson"
)

// FuzzParseFormat parses arbitrary input and checks that formatting is
// stable: whatever the formatter prints must parse and print identically.
func FuzzParseFormat(f *testing.F) {
	seeds := []string{
		"null",
		"[12, 3]",
		`{ "foo": 12, "bar": [true,false], "baz": "hello" }`,
		`"é😀"`,
		"-0.5",
		"1.23e4",
		"[[[[]]]]",
		"0123",
		`{"a":`,
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}

	formatter := Formatter{EscapeStrings: true, PreciseNumbers: true}
	f.Fuzz(func(t *testing.T, in []byte) {
		a := arena.New(4 << 20)
		n := ParseBytes(in, a)
		if n == nil {
			return
		}

		once := formatter.Format(n, a)
		again := ParseBytes(once, a)
		if again == nil {
			t.Fatalf("formatted output does not parse:\n%s", once)
		}
		twice := formatter.Format(again, a)
		if !once.Eq(twice) {
			t.Fatalf("format is not idempotent:\n%s\n---\n%s", once, twice)
		}
	})
}
