package policy

// decideSC walks the clock hand starting at ctx.HandPosition. Every page
// with reference bit 1 is scheduled for clearing and the hand advances;
// the first page found with reference bit 0 is the victim. If a full
// sweep finds every occupied frame with bit 1, the victim falls back to
// the frame originally under the hand (pure FIFO), and every other frame
// visited during the sweep is still scheduled for clearing.
func decideSC(ctx Context) Decision {
	n := len(ctx.Occupied)
	hand := ((ctx.HandPosition % n) + n) % n

	var cleared []PageID
	victimIdx := -1

	for i := 0; i < n; i++ {
		idx := (hand + i) % n
		f := ctx.Occupied[idx]

		if !f.ReferenceBit {
			victimIdx = idx
			break
		}

		cleared = append(cleared, f.PageID)
	}

	if victimIdx == -1 {
		victimIdx = hand
		cleared = removePageID(cleared, ctx.Occupied[victimIdx].PageID)
	}

	victim := ctx.Occupied[victimIdx]

	return Decision{
		VictimFrameID:    victim.FrameID,
		VictimPageID:     victim.PageID,
		NextHandPosition: (victimIdx + 1) % n,
		ClearRefBits:     cleared,
	}
}

func removePageID(ids []PageID, target PageID) []PageID {
	for i, id := range ids {
		if id == target {
			return append(ids[:i], ids[i+1:]...)
		}
	}

	return ids
}
