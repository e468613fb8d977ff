package policy

// decideMRU evicts the occupied frame with the largest last-access
// timestamp, breaking ties by the smallest frame id.
func decideMRU(ctx Context) Decision {
	victim := ctx.Occupied[0]

	for _, f := range ctx.Occupied[1:] {
		if f.LastAccessTimestamp > victim.LastAccessTimestamp {
			victim = f
		}
	}

	return Decision{VictimFrameID: victim.FrameID, VictimPageID: victim.PageID}
}
