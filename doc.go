// Package arena implements a fixed-capacity bump allocator (memory arena) and
// is the memory model underneath the arena-backed JSON engine of this module.
//
// # Overview
//
// An arena owns one contiguous byte region and serves allocations by
// advancing a single frontier. There is no way to free one allocation: the
// whole arena is reclaimed at once, by Reset or by dropping it. This suits
// work that is naturally scoped:
//
//   - One parse or one format call
//   - One request handled by a server
//   - Temporary buffers with batch cleanup
//
// # Basic Usage
//
//	a := arena.New(64 << 10) // 64 KiB
//	defer a.Release()
//
//	buf := a.Alloc(1, 1, 128)   // 128 zeroed bytes
//	words := a.Alloc(8, 8, 16)  // 16 8-byte aligned slots
//
//	a.Reset() // O(1), every block handed out so far becomes invalid
//
// An arena can also be laid over memory the caller already owns:
//
//	var mem [256]byte
//	a := arena.FromBuffer(mem[:])
//
// # Growing the last allocation
//
// Because allocations are never reordered nor freed, a block that ends
// exactly at the frontier can be grown in place:
//
//	off, b := a.AllocOffset(1, 1, 16)
//	if a.IsLast(off, len(b)) {
//		b = a.Extend(off, len(b), 16) // now 32 bytes, no copy
//	}
//
// The str.Builder type relies on this to append without copying as long as
// nothing else is allocated from the same arena in between.
//
// # Exhaustion
//
// Running out of capacity is not a recoverable error. Alloc and Extend panic
// with an *OutOfMemoryError; size arenas conservatively.
//
// # Typed values
//
// Values holding Go pointers must not be stored in the byte region, the
// garbage collector would not see them. Slab[T] hands out such values from
// fixed-size chunks with the same bulk-reset lifetime.
//
// # Profiling
//
// A Profiler attached with WithProfiler observes every allocation. The
// heapprof package provides one that attributes allocations to call stacks.
//
// # Metrics
//
//	m := a.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization*100)
//	fmt.Printf("Memory in use: %d bytes\n", m.SizeInUse)
package arena
