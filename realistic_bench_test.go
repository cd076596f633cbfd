package arena

import (
	"runtime"
	"testing"
)

// BenchmarkRealisticUsage compares the allocation patterns of one parse
// against the Go heap.
func BenchmarkRealisticUsage(b *testing.B) {

	// Many small allocations with periodic cleanup
	b.Run("ManySmallAllocs/Arena", func(b *testing.B) {
		a := New(64 * 1024)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := 0; j < 100; j++ {
				a.Alloc(1, 8, 64)
			}
			// Simulates request cleanup
			a.Reset()
		}
	})

	b.Run("ManySmallAllocs/Builtin", func(b *testing.B) {
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			objects := make([][]byte, 100)
			for j := 0; j < 100; j++ {
				objects[j] = make([]byte, 64)
			}
			if i%10 == 0 {
				runtime.GC()
			}
		}
	})

	// Growing one buffer, the string builder pattern
	b.Run("GrowInPlace/Arena", func(b *testing.B) {
		a := New(1024 * 1024)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			off, buf := a.AllocOffset(1, 1, 64)
			for j := 0; j < 8; j++ {
				buf = a.Extend(off, len(buf), len(buf))
			}
			buf[0] = byte(i)
			a.Reset()
		}
	})

	b.Run("GrowInPlace/Builtin", func(b *testing.B) {
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			buf := make([]byte, 64)
			for j := 0; j < 8; j++ {
				buf = append(buf, make([]byte, len(buf))...)
			}
			buf[0] = byte(i)
		}
	})

	// Parse tree nodes, recycled between documents
	type node struct {
		kind  int
		num   float64
		items []*node
	}

	b.Run("Nodes/Slab", func(b *testing.B) {
		s := NewSlab[node](256)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			root := s.New()
			for j := 0; j < 100; j++ {
				root.items = append(root.items, s.New())
			}
			s.Reset()
		}
	})

	b.Run("Nodes/Builtin", func(b *testing.B) {
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			root := &node{}
			for j := 0; j < 100; j++ {
				root.items = append(root.items, &node{})
			}
		}
	})
}
