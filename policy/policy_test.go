package policy_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/vmpagesim/policy"
	"github.com/sarchlab/vmpagesim/prng"
	"github.com/sarchlab/vmpagesim/workload"
)

func page(ptr workload.PtrID, index int) policy.PageID {
	return policy.PageID{Ptr: ptr, Index: index}
}

var _ = Describe("Decide", func() {
	It("panics when there are no occupied frames", func() {
		Expect(func() {
			policy.Decide(policy.FIFO, policy.Context{})
		}).To(Panic())
	})

	It("panics on an unknown algorithm name", func() {
		ctx := policy.Context{Occupied: []policy.FrameView{{FrameID: 0}}}
		Expect(func() {
			policy.Decide(policy.Name("bogus"), ctx)
		}).To(Panic())
	})
})

var _ = Describe("FIFO", func() {
	It("evicts the frame with the smallest loaded timestamp", func() {
		ctx := policy.Context{Occupied: []policy.FrameView{
			{FrameID: 0, PageID: page(1, 0), LoadedTimestamp: 3},
			{FrameID: 1, PageID: page(2, 0), LoadedTimestamp: 1},
			{FrameID: 2, PageID: page(3, 0), LoadedTimestamp: 2},
		}}

		d := policy.Decide(policy.FIFO, ctx)

		Expect(d.VictimFrameID).To(Equal(1))
		Expect(d.VictimPageID).To(Equal(page(2, 0)))
	})

	It("breaks ties by the smallest frame id", func() {
		ctx := policy.Context{Occupied: []policy.FrameView{
			{FrameID: 0, PageID: page(1, 0), LoadedTimestamp: 5},
			{FrameID: 1, PageID: page(2, 0), LoadedTimestamp: 5},
		}}

		d := policy.Decide(policy.FIFO, ctx)

		Expect(d.VictimFrameID).To(Equal(0))
	})
})

var _ = Describe("LRU and MRU", func() {
	// Three pages loaded, page 1 is used again, then a fourth page needs
	// a frame. LRU should evict page 2 (oldest last access); MRU should
	// evict page 1 (most recently touched).
	ctxFor := func() policy.Context {
		return policy.Context{Occupied: []policy.FrameView{
			{FrameID: 0, PageID: page(1, 0), LastAccessTimestamp: 4},
			{FrameID: 1, PageID: page(2, 0), LastAccessTimestamp: 1},
			{FrameID: 2, PageID: page(3, 0), LastAccessTimestamp: 2},
		}}
	}

	It("LRU evicts the smallest last-access timestamp", func() {
		d := policy.Decide(policy.LRU, ctxFor())
		Expect(d.VictimPageID).To(Equal(page(2, 0)))
	})

	It("MRU evicts the largest last-access timestamp", func() {
		d := policy.Decide(policy.MRU, ctxFor())
		Expect(d.VictimPageID).To(Equal(page(1, 0)))
	})
})

var _ = Describe("SC", func() {
	It("skips referenced pages, clearing their bit, and evicts the first unreferenced one", func() {
		// Pages 1 and 2 have R=1, page 3 has R=0, hand at position 0.
		ctx := policy.Context{
			HandPosition: 0,
			Occupied: []policy.FrameView{
				{FrameID: 0, PageID: page(1, 0), ReferenceBit: true},
				{FrameID: 1, PageID: page(2, 0), ReferenceBit: true},
				{FrameID: 2, PageID: page(3, 0), ReferenceBit: false},
			},
		}

		d := policy.Decide(policy.SC, ctx)

		Expect(d.VictimPageID).To(Equal(page(3, 0)))
		Expect(d.VictimFrameID).To(Equal(2))
		Expect(d.ClearRefBits).To(ConsistOf(page(1, 0), page(2, 0)))
		Expect(d.NextHandPosition).To(Equal(0))
	})

	It("falls back to pure FIFO when every frame is referenced", func() {
		ctx := policy.Context{
			HandPosition: 1,
			Occupied: []policy.FrameView{
				{FrameID: 0, PageID: page(1, 0), ReferenceBit: true},
				{FrameID: 1, PageID: page(2, 0), ReferenceBit: true},
				{FrameID: 2, PageID: page(3, 0), ReferenceBit: true},
			},
		}

		d := policy.Decide(policy.SC, ctx)

		Expect(d.VictimPageID).To(Equal(page(2, 0)))
		Expect(d.ClearRefBits).To(ConsistOf(page(3, 0), page(1, 0)))
		Expect(d.NextHandPosition).To(Equal(2))
	})

	It("wraps the hand position modulo the occupied count", func() {
		ctx := policy.Context{
			HandPosition: 7,
			Occupied: []policy.FrameView{
				{FrameID: 0, PageID: page(1, 0), ReferenceBit: false},
				{FrameID: 1, PageID: page(2, 0), ReferenceBit: false},
			},
		}

		d := policy.Decide(policy.SC, ctx)

		Expect(d.VictimFrameID).To(Equal(1))
	})
})

var _ = Describe("RND", func() {
	It("only ever picks an occupied frame, deterministically per RNG", func() {
		occupied := []policy.FrameView{
			{FrameID: 0, PageID: page(1, 0)},
			{FrameID: 1, PageID: page(2, 0)},
			{FrameID: 2, PageID: page(3, 0)},
		}

		a := policy.Decide(policy.RND, policy.Context{Occupied: occupied, RNG: prng.New("s").Derive("RND")})
		b := policy.Decide(policy.RND, policy.Context{Occupied: occupied, RNG: prng.New("s").Derive("RND")})

		Expect(a).To(Equal(b))

		found := false
		for _, f := range occupied {
			if f.FrameID == a.VictimFrameID {
				found = true
			}
		}
		Expect(found).To(BeTrue())
	})
})

var _ = Describe("OPT", func() {
	It("evicts the page whose ptr_id is never used again", func() {
		// Pages 1..3 loaded, then use(1), use(2); the future beyond this
		// point contains no further use of ptr 3.
		future := []workload.Instruction{
			workload.Use(1),
			workload.Use(2),
			workload.New("P1", 4096, 4),
		}

		ctx := policy.Context{
			Occupied: []policy.FrameView{
				{FrameID: 0, PageID: page(1, 0), PtrID: 1},
				{FrameID: 1, PageID: page(2, 0), PtrID: 2},
				{FrameID: 2, PageID: page(3, 0), PtrID: 3},
			},
			Future:      future,
			FutureIndex: 0,
		}

		d := policy.Decide(policy.OPT, ctx)

		Expect(d.VictimPageID).To(Equal(page(3, 0)))
	})

	It("does not treat new, delete or kill as a use", func() {
		future := []workload.Instruction{
			workload.Delete(2),
			workload.Kill("P1"),
			workload.New("P2", 100, 4),
			workload.Use(1),
		}

		ctx := policy.Context{
			Occupied: []policy.FrameView{
				{FrameID: 0, PageID: page(1, 0), PtrID: 1},
				{FrameID: 1, PageID: page(2, 0), PtrID: 2},
			},
			Future:      future,
			FutureIndex: 0,
		}

		d := policy.Decide(policy.OPT, ctx)

		// ptr 2 is never `use`d again (only deleted), so it has infinite
		// distance and must be evicted over ptr 1, which is used at index 3.
		Expect(d.VictimPageID).To(Equal(page(2, 0)))
	})
})
