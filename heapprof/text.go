package heapprof

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// WriteText writes the profile in the legacy text heap profile format:
//
//	heap profile: <in use objects>: <in use bytes> [     <objects>:    <bytes>] @ heapprofile
//	<in use objects>: <in use bytes> [<objects>: <bytes>] @ <addr> <addr> ...
//	...
//
//	MAPPED_LIBRARIES:
//	<contents of /proc/self/maps>
//
// There is one line per distinct call stack. Addresses point inside the call
// instruction of each frame rather than at the return address. An unreadable
// mappings source leaves the MAPPED_LIBRARIES section empty.
func (p *Profile) WriteText(w io.Writer) error {
	totals := p.Totals()
	records := p.Records()

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "heap profile: %d: %d [     %d:    %d] @ heapprofile\n",
		totals.InUseObjects, totals.InUseBytes, totals.AllocObjects, totals.AllocBytes)

	for _, r := range records {
		fmt.Fprintf(bw, "%d: %d [%d: %d] @ ", r.InUseObjects, r.InUseBytes, r.AllocObjects, r.AllocBytes)
		for _, pc := range r.Stack {
			fmt.Fprintf(bw, "%#x ", callSite(pc))
		}
		bw.WriteByte('\n')
	}

	bw.WriteString("\nMAPPED_LIBRARIES:\n")
	if maps, err := p.readMaps(); err == nil {
		bw.Write(maps)
	}

	return errors.Wrap(bw.Flush(), "write heap profile")
}

// callSite turns a return address into an address inside the call.
func callSite(pc uintptr) uintptr {
	if pc == 0 {
		return 0
	}
	return pc - 1
}
