package arena

// Profiler receives allocation events from an Arena. objects is the number of
// elements requested and bytes the number of bytes consumed, padding included.
// In-place extensions report zero objects.
//
// A Profiler shared between arenas must be safe for concurrent use.
type Profiler interface {
	RecordAlloc(objects, bytes int)
}

// ProfilerFunc adapts a function to the Profiler interface.
type ProfilerFunc func(objects, bytes int)

// RecordAlloc calls f(objects, bytes).
func (f ProfilerFunc) RecordAlloc(objects, bytes int) {
	f(objects, bytes)
}
