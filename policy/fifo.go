package policy

// decideFIFO evicts the occupied frame with the smallest loaded timestamp,
// breaking ties by the smallest frame id.
func decideFIFO(ctx Context) Decision {
	victim := ctx.Occupied[0]

	for _, f := range ctx.Occupied[1:] {
		if f.LoadedTimestamp < victim.LoadedTimestamp {
			victim = f
		}
	}

	return Decision{VictimFrameID: victim.FrameID, VictimPageID: victim.PageID}
}
