package simcore

import (
	"github.com/sarchlab/vmpagesim/policy"
	"github.com/sarchlab/vmpagesim/workload"
)

// Frame is one physical RAM frame. An unoccupied frame carries none of the
// identity fields; Occupied gates all of them.
type Frame struct {
	ID       int
	Occupied bool

	PageID              policy.PageID
	PID                 workload.PID
	LoadedTimestamp     float64
	LastAccessTimestamp float64
	ReferenceBit        bool
}

// clear resets a frame to unoccupied, dropping every per-frame field. It is
// the only way a frame's identity fields should be wiped, keeping the
// frame/page bidirectional mapping easy to audit.
func (f *Frame) clear() {
	*f = Frame{ID: f.ID}
}

// occupy installs a page's identity into a free frame.
func (f *Frame) occupy(id policy.PageID, pid workload.PID, now float64) {
	f.Occupied = true
	f.PageID = id
	f.PID = pid
	f.LoadedTimestamp = now
	f.LastAccessTimestamp = now
	f.ReferenceBit = false
}
