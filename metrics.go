package arena

// SizeInUse returns the number of bytes consumed by allocations, alignment
// padding included.
func (a *Arena) SizeInUse() int {
	return a.off
}

// Capacity returns the total number of bytes the arena can hand out.
func (a *Arena) Capacity() int {
	return len(a.buf)
}

// Allocations returns the number of Alloc calls served since creation or the
// last Reset. In-place extensions are not counted.
func (a *Arena) Allocations() int {
	return a.allocs
}

// Utilization returns the ratio of bytes in use to total capacity (0.0 to 1.0).
// Returns 0.0 if the arena has no capacity.
func (a *Arena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.SizeInUse()) / float64(capacity)
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() ArenaMetrics {
	return ArenaMetrics{
		SizeInUse:   a.SizeInUse(),
		Capacity:    a.Capacity(),
		Available:   a.Available(),
		Allocations: a.Allocations(),
		Utilization: a.Utilization(),
	}
}

// ArenaMetrics contains statistical information about an arena.
type ArenaMetrics struct {
	SizeInUse   int     // Bytes currently allocated
	Capacity    int     // Total capacity in bytes
	Available   int     // Bytes left
	Allocations int     // Number of allocations
	Utilization float64 // Ratio of used to total capacity (0.0-1.0)
}
