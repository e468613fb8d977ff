package policy

import (
	"math"

	"github.com/sarchlab/vmpagesim/workload"
)

// decideOPT evicts the occupied frame whose owning ptr_id is referenced
// furthest in the future, using ctx.Future[ctx.FutureIndex:] as the
// lookahead window. A ptr_id with no future `use` has infinite distance.
// Ties are broken by the smallest frame id. `delete` and `kill` are not
// considered uses; neither is `new`.
func decideOPT(ctx Context) Decision {
	victim := ctx.Occupied[0]
	victimDist := nextUseDistance(ctx, victim.PtrID)

	for _, f := range ctx.Occupied[1:] {
		d := nextUseDistance(ctx, f.PtrID)
		if d > victimDist {
			victim = f
			victimDist = d
		}
	}

	return Decision{VictimFrameID: victim.FrameID, VictimPageID: victim.PageID}
}

func nextUseDistance(ctx Context, ptr workload.PtrID) int {
	for i := ctx.FutureIndex; i < len(ctx.Future); i++ {
		in := ctx.Future[i]
		if in.Kind == workload.KindUse && in.PtrID == ptr {
			return i
		}
	}

	return math.MaxInt
}
