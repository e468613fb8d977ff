package policy

// decideLRU evicts the occupied frame with the smallest last-access
// timestamp, breaking ties by the smallest frame id.
func decideLRU(ctx Context) Decision {
	victim := ctx.Occupied[0]

	for _, f := range ctx.Occupied[1:] {
		if f.LastAccessTimestamp < victim.LastAccessTimestamp {
			victim = f
		}
	}

	return Decision{VictimFrameID: victim.FrameID, VictimPageID: victim.PageID}
}
