package json_test

import (
	"fmt"
	"strings"

	arena "github.com/pavanmanishd/arenajson"
	"github.com/pavanmanishd/arenajson/cursor"
	"github.com/pavanmanishd/arenajson/json"
	"github.com/pavanmanishd/arenajson/str"
)

// Example parses a document and pretty-prints it, all from one arena
func Example() {
	a := arena.New(4096)
	defer a.Release()

	c := cursor.New(str.FromString(`{ "foo": 12, "bar": [true,false], "baz": "hello" }`))
	doc := json.Parse(c, a)
	if doc == nil {
		fmt.Println("invalid JSON")
		return
	}
	fmt.Println(json.Format(doc, a))

	// Output:
	// {
	//   "foo": 12,
	//   "bar": [
	//     true,
	//     false
	//   ],
	//   "baz": "hello"
	// }
}

// ExampleParse_invalid shows that malformed input yields nil
func ExampleParse_invalid() {
	a := arena.New(1024)
	for _, in := range []string{"[12, ]", "0123", "1e5", "[12, 3]"} {
		doc := json.Parse(cursor.New(str.FromString(in)), a)
		fmt.Printf("%-8s valid=%t\n", in, doc != nil)
	}

	// Output:
	// [12, ]   valid=false
	// 0123     valid=false
	// 1e5      valid=false
	// [12, 3]  valid=true
}

// ExampleNode_Lookup walks a parsed object
func ExampleNode_Lookup() {
	a := arena.New(1024)
	doc := json.ParseBytes([]byte(`{"id": 7, "tags": ["x", "y"], "id": 8}`), a)

	var keys []string
	for _, key := range doc.Keys() {
		keys = append(keys, key.String())
	}
	fmt.Println(strings.Join(keys, " "))
	for _, v := range doc.Lookup("id") {
		fmt.Println("id =", v.Number())
	}
	fmt.Println("tags:", doc.Lookup("tags")[0].Len(), doc.Lookup("tags")[0].Index(1).Str())

	// Output:
	// id tags id
	// id = 7
	// id = 8
	// tags: 2 y
}

// ExampleFormatter shows the non-canonical output options
func ExampleFormatter() {
	a := arena.New(4096)
	doc := json.ParseBytes([]byte(`{"pi": 3.14159, "quote": "say \"hi\""}`), a)

	fmt.Println(json.Format(doc, a))
	fmt.Println(json.Formatter{Indent: 1, EscapeStrings: true, PreciseNumbers: true}.Format(doc, a))

	// Output:
	// {
	//   "pi": 3,
	//   "quote": "say "hi""
	// }
	// {
	//  "pi": 3.14159,
	//  "quote": "say \"hi\""
	// }
}
