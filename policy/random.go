package policy

// decideRND draws an index uniformly over occupied frames from the
// policy's own RNG.
func decideRND(ctx Context) Decision {
	i := ctx.RNG.Intn(len(ctx.Occupied))
	victim := ctx.Occupied[i]

	return Decision{VictimFrameID: victim.FrameID, VictimPageID: victim.PageID}
}
