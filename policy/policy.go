// Package policy implements the replacement-policy interface and the six
// concrete policies the simulator can compare: FIFO, Second Chance, MRU,
// LRU, Random and Optimal. A policy is a pure function of a read-only
// Context to a Decision; it never mutates simulator state itself.
package policy

import (
	"fmt"

	"github.com/sarchlab/vmpagesim/prng"
	"github.com/sarchlab/vmpagesim/workload"
)

// Name is a closed enumeration of the six supported replacement policies.
type Name string

// The six replacement policies this package implements.
const (
	FIFO Name = "FIFO"
	SC   Name = "SC"
	MRU  Name = "MRU"
	LRU  Name = "LRU"
	RND  Name = "RND"
	OPT  Name = "OPT"
)

// Names lists every supported policy, in the order the UI presents them.
func Names() []Name {
	return []Name{FIFO, SC, MRU, LRU, RND, OPT}
}

// Valid reports whether n is one of the six known policy names.
func (n Name) Valid() bool {
	switch n {
	case FIFO, SC, MRU, LRU, RND, OPT:
		return true
	default:
		return false
	}
}

// PageID is the stable identity of a logical page: the allocation it
// belongs to plus its index within that allocation.
type PageID struct {
	Ptr   workload.PtrID
	Index int
}

// String renders a PageID for logging and error messages.
func (id PageID) String() string {
	return fmt.Sprintf("%d.%d", id.Ptr, id.Index)
}

// FrameView is the read-only picture of one occupied RAM frame a policy is
// allowed to see. Frames that are not occupied never appear here; a policy
// asked to decide with no occupied frame at all should fail loudly rather
// than guess.
type FrameView struct {
	FrameID             int
	PageID              PageID
	PtrID               workload.PtrID
	LoadedTimestamp     float64
	LastAccessTimestamp float64
	ReferenceBit        bool
}

// Context carries everything a Decide call may consult. Only OPT reads
// Future/FutureIndex; only SC reads HandPosition; only RND reads RNG.
type Context struct {
	// Occupied is the set of currently occupied frames, in frame-id order.
	Occupied []FrameView

	// Future is the full instruction stream and FutureIndex is the index
	// of the instruction about to be applied. OPT uses Future[FutureIndex:]
	// as its lookahead window; every other policy ignores both fields.
	Future      []workload.Instruction
	FutureIndex int

	// HandPosition is the Second Chance clock hand's current position,
	// expressed as an index into Occupied (not a frame id). SC is the only
	// policy that reads or advances it.
	HandPosition int

	// RNG is the policy-owned pseudo-random source. Only RND draws from it.
	RNG *prng.Source
}

// Decision is what a policy returns: which frame to evict and, for
// policies that need it, auxiliary bookkeeping the engine must apply
// atomically with the eviction.
type Decision struct {
	VictimFrameID int
	VictimPageID  PageID

	// NextHandPosition and ClearRefBits are meaningful only for SC; other
	// policies leave them zero/nil and the engine ignores them.
	NextHandPosition int
	ClearRefBits     []PageID
}

// Policy picks a victim frame when RAM is full.
type Policy interface {
	Decide(ctx Context) Decision
}

// Decide dispatches to the concrete policy named by n. It panics if ctx has
// no occupied frames: reaching a policy at all implies RAM is full, so an
// empty Occupied set is an engine bug, not a workload problem.
func Decide(n Name, ctx Context) Decision {
	if len(ctx.Occupied) == 0 {
		panic("policy: Decide called with no occupied frames")
	}

	switch n {
	case FIFO:
		return decideFIFO(ctx)
	case SC:
		return decideSC(ctx)
	case MRU:
		return decideMRU(ctx)
	case LRU:
		return decideLRU(ctx)
	case RND:
		return decideRND(ctx)
	case OPT:
		return decideOPT(ctx)
	default:
		panic(fmt.Sprintf("policy: unknown algorithm %q", n))
	}
}
