// Package heapprof attributes arena allocations to the call stacks that made
// them.
//
// A Profile is attached to arenas with arena.WithProfiler. Every allocation
// captures the current call stack, and counts are aggregated per distinct
// stack. The result can be written as a legacy text heap profile (the format
// understood by pprof and older perftools), as a pprof protobuf profile, or
// exported to Prometheus.
//
// Arena memory is only reclaimed in bulk, so in-use counts always equal the
// cumulative ones.
package heapprof

import (
	"encoding/binary"
	"os"
	"runtime"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/atomic"

	arena "github.com/pavanmanishd/arenajson"
)

// DefaultMaxDepth is the default number of frames kept per call stack.
const DefaultMaxDepth = 64

// StackCapturer records the program counters of the calling goroutine.
//
// Capture fills pcs with return addresses, innermost first, and returns how
// many it wrote. skip is the number of frames to omit above the caller of
// Capture: 0 starts at the function that called Capture.
type StackCapturer interface {
	Capture(skip int, pcs []uintptr) int
}

// RuntimeStack captures stacks with runtime.Callers.
type RuntimeStack struct{}

func (RuntimeStack) Capture(skip int, pcs []uintptr) int {
	// Skip runtime.Callers and Capture itself.
	return runtime.Callers(skip+2, pcs)
}

// StackFunc adapts a function to the StackCapturer interface.
type StackFunc func(skip int, pcs []uintptr) int

func (f StackFunc) Capture(skip int, pcs []uintptr) int { return f(skip, pcs) }

// Option configures a Profile.
type Option func(*Profile)

// WithStackCapturer replaces the default RuntimeStack.
func WithStackCapturer(s StackCapturer) Option {
	return func(p *Profile) { p.stacks = s }
}

// WithMaxDepth limits the number of frames kept per call stack.
// Values <= 0 are ignored.
func WithMaxDepth(depth int) Option {
	return func(p *Profile) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// WithMapsReader replaces the source of the MAPPED_LIBRARIES section, which
// defaults to the contents of /proc/self/maps.
func WithMapsReader(read func() ([]byte, error)) Option {
	return func(p *Profile) { p.readMaps = read }
}

// Record is the aggregate of every allocation made from one call stack.
type Record struct {
	Stack        []uintptr
	InUseObjects int64
	InUseBytes   int64
	AllocObjects int64
	AllocBytes   int64
}

// Totals are the sums over all records.
type Totals struct {
	InUseObjects int64
	InUseBytes   int64
	AllocObjects int64
	AllocBytes   int64
	Records      int
}

// Profile aggregates allocations by call stack. It implements
// arena.Profiler and is safe for concurrent use, so many arenas on many
// goroutines may share one Profile.
type Profile struct {
	stacks   StackCapturer
	maxDepth int
	readMaps func() ([]byte, error)

	inUseObjects atomic.Int64
	inUseBytes   atomic.Int64
	allocObjects atomic.Int64
	allocBytes   atomic.Int64

	mtx     sync.Mutex
	records []*Record
	index   map[uint64][]int // stack fingerprint -> positions in records
	pool    sync.Pool
}

var _ arena.Profiler = (*Profile)(nil)

// New creates an empty profile.
func New(opts ...Option) *Profile {
	p := &Profile{
		stacks:   RuntimeStack{},
		maxDepth: DefaultMaxDepth,
		readMaps: readProcMaps,
		index:    map[uint64][]int{},
	}
	for _, o := range opts {
		o(p)
	}
	p.pool.New = func() any {
		buf := make([]uintptr, p.maxDepth)
		return &buf
	}
	return p
}

// RecordAlloc attributes an allocation of bytes bytes holding objects
// values to the caller's call stack.
func (p *Profile) RecordAlloc(objects, bytes int) {
	bufp := p.pool.Get().(*[]uintptr)
	defer p.pool.Put(bufp)

	// Skip RecordAlloc itself.
	n := min(p.stacks.Capture(1, *bufp), len(*bufp))
	stack := (*bufp)[:n]
	fp := fingerprint(stack)

	p.allocObjects.Add(int64(objects))
	p.allocBytes.Add(int64(bytes))
	p.inUseObjects.Add(int64(objects))
	p.inUseBytes.Add(int64(bytes))

	p.mtx.Lock()
	defer p.mtx.Unlock()

	r := p.lookup(fp, stack)
	if r == nil {
		r = &Record{Stack: slices.Clone(stack)}
		p.index[fp] = append(p.index[fp], len(p.records))
		p.records = append(p.records, r)
	}
	r.AllocObjects += int64(objects)
	r.AllocBytes += int64(bytes)
	r.InUseObjects += int64(objects)
	r.InUseBytes += int64(bytes)
}

// lookup returns the record for stack, or nil. p.mtx must be held.
func (p *Profile) lookup(fp uint64, stack []uintptr) *Record {
	for _, i := range p.index[fp] {
		if slices.Equal(p.records[i].Stack, stack) {
			return p.records[i]
		}
	}
	return nil
}

// Records returns a copy of the records, in the order their call stacks were
// first seen.
func (p *Profile) Records() []Record {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	res := make([]Record, len(p.records))
	for i, r := range p.records {
		res[i] = *r
		res[i].Stack = slices.Clone(r.Stack)
	}
	return res
}

// Totals returns the sums over all recorded allocations.
func (p *Profile) Totals() Totals {
	p.mtx.Lock()
	records := len(p.records)
	p.mtx.Unlock()

	return Totals{
		InUseObjects: p.inUseObjects.Load(),
		InUseBytes:   p.inUseBytes.Load(),
		AllocObjects: p.allocObjects.Load(),
		AllocBytes:   p.allocBytes.Load(),
		Records:      records,
	}
}

func fingerprint(stack []uintptr) uint64 {
	var (
		d xxhash.Digest
		b [8]byte
	)
	d.Reset()
	for _, pc := range stack {
		binary.LittleEndian.PutUint64(b[:], uint64(pc))
		_, _ = d.Write(b[:])
	}
	return d.Sum64()
}

func readProcMaps() ([]byte, error) {
	return os.ReadFile("/proc/self/maps")
}
