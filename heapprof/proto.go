package heapprof

import (
	"io"
	"runtime"
	"time"

	"github.com/google/pprof/profile"
	"github.com/pkg/errors"
)

// Proto converts the profile to the pprof protobuf representation. Frames
// are symbolized against the running binary.
func (p *Profile) Proto() *profile.Profile {
	records := p.Records()

	prof := &profile.Profile{
		SampleType: []*profile.ValueType{
			{Type: "alloc_objects", Unit: "count"},
			{Type: "alloc_space", Unit: "bytes"},
			{Type: "inuse_objects", Unit: "count"},
			{Type: "inuse_space", Unit: "bytes"},
		},
		DefaultSampleType: "alloc_space",
		PeriodType:        &profile.ValueType{Type: "space", Unit: "bytes"},
		Period:            1,
		TimeNanos:         time.Now().UnixNano(),
	}

	locations := map[uintptr]*profile.Location{}
	functions := map[string]*profile.Function{}

	location := func(pc uintptr) *profile.Location {
		if loc, ok := locations[pc]; ok {
			return loc
		}
		addr := callSite(pc)
		loc := &profile.Location{
			ID:      uint64(len(prof.Location) + 1),
			Address: uint64(addr),
		}
		if fn := runtime.FuncForPC(addr); fn != nil {
			file, line := fn.FileLine(addr)
			f, ok := functions[fn.Name()]
			if !ok {
				f = &profile.Function{
					ID:         uint64(len(prof.Function) + 1),
					Name:       fn.Name(),
					SystemName: fn.Name(),
					Filename:   file,
				}
				functions[fn.Name()] = f
				prof.Function = append(prof.Function, f)
			}
			loc.Line = []profile.Line{{Function: f, Line: int64(line)}}
		}
		locations[pc] = loc
		prof.Location = append(prof.Location, loc)
		return loc
	}

	for _, r := range records {
		s := &profile.Sample{
			Value: []int64{r.AllocObjects, r.AllocBytes, r.InUseObjects, r.InUseBytes},
		}
		for _, pc := range r.Stack {
			s.Location = append(s.Location, location(pc))
		}
		prof.Sample = append(prof.Sample, s)
	}
	return prof
}

// WriteProto writes the gzipped protobuf form of the profile, as read by
// go tool pprof.
func (p *Profile) WriteProto(w io.Writer) error {
	return errors.Wrap(p.Proto().Write(w), "write pprof profile")
}
