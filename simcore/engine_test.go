package simcore_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/vmpagesim/policy"
	"github.com/sarchlab/vmpagesim/simcore"
	"github.com/sarchlab/vmpagesim/workload"
)

func build(algo policy.Name, frames int) *simcore.Engine {
	return simcore.MakeBuilder().
		WithAlgorithm(algo).
		WithFrameCount(frames).
		WithSeed("engine-test").
		Build()
}

func apply(e *simcore.Engine, instructions ...workload.Instruction) {
	for i, in := range instructions {
		Expect(e.Apply(in, instructions, i)).To(Succeed())
	}
}

var _ = Describe("Engine", func() {
	// S1: FIFO basic. Four single-page 4 KB allocations into 3 frames.
	It("evicts the oldest page under FIFO once RAM is full", func() {
		e := build(policy.FIFO, 3)

		apply(e,
			workload.New("A", 4096, 1),
			workload.New("A", 4096, 2),
			workload.New("A", 4096, 3),
			workload.New("A", 4096, 4),
		)

		m := e.Metrics()
		Expect(m.PageHits).To(Equal(3))
		Expect(m.PageFaults).To(Equal(1))
		Expect(m.TotalTime).To(Equal(8.0))

		resident := residentPageIDs(e)
		Expect(resident).To(ConsistOf(policy.PageID{Ptr: 2}, policy.PageID{Ptr: 3}, policy.PageID{Ptr: 4}))
	})

	// S2: LRU vs MRU disagree once page 1 is re-used.
	It("LRU evicts the oldest last access, MRU evicts the most recent", func() {
		instructions := []workload.Instruction{
			workload.New("A", 4096, 1),
			workload.New("A", 4096, 2),
			workload.New("A", 4096, 3),
			workload.Use(1),
			workload.New("A", 4096, 4),
		}

		lru := build(policy.LRU, 3)
		apply(lru, instructions...)
		Expect(residentPageIDs(lru)).NotTo(ContainElement(policy.PageID{Ptr: 2}))

		mru := build(policy.MRU, 3)
		apply(mru, instructions...)
		Expect(residentPageIDs(mru)).NotTo(ContainElement(policy.PageID{Ptr: 1}))
	})

	// S3: Second Chance skips referenced pages before evicting.
	It("SC evicts the first unreferenced page after clearing referenced ones", func() {
		instructions := []workload.Instruction{
			workload.New("A", 4096, 1),
			workload.New("A", 4096, 2),
			workload.New("A", 4096, 3),
			workload.Use(1),
			workload.Use(2),
			workload.New("A", 4096, 4),
		}

		e := build(policy.SC, 3)
		apply(e, instructions...)

		Expect(residentPageIDs(e)).NotTo(ContainElement(policy.PageID{Ptr: 3}))
		Expect(residentPageIDs(e)).To(ContainElement(policy.PageID{Ptr: 1}))
		Expect(residentPageIDs(e)).To(ContainElement(policy.PageID{Ptr: 2}))
	})

	// S4: OPT looks ahead and evicts the page never used again. When the
	// fourth page needs a frame, ptrs 1 and 2 are used later in the stream
	// and ptr 3 is not.
	It("OPT evicts the page with no future use", func() {
		instructions := []workload.Instruction{
			workload.New("A", 4096, 1),
			workload.New("A", 4096, 2),
			workload.New("A", 4096, 3),
			workload.New("A", 4096, 4),
			workload.Use(1),
			workload.Use(2),
		}

		e := build(policy.OPT, 3)
		apply(e, instructions...)

		Expect(residentPageIDs(e)).NotTo(ContainElement(policy.PageID{Ptr: 3}))
	})

	// S5: deleting a pointer frees its frame for reuse without a fault.
	It("delete frees a frame so a later new does not fault", func() {
		e := build(policy.FIFO, 3)

		apply(e,
			workload.New("A", 4096, 1),
			workload.New("A", 4096, 2),
			workload.New("A", 4096, 3),
			workload.Delete(2),
			workload.New("A", 4096, 4),
		)

		Expect(e.Metrics().PageFaults).To(Equal(0))
		Expect(residentPageIDs(e)).To(ConsistOf(
			policy.PageID{Ptr: 1}, policy.PageID{Ptr: 3}, policy.PageID{Ptr: 4}))
	})

	// S6: killing a process removes exactly its pages, resident or not.
	It("kill removes exactly the killed process's pages", func() {
		e := build(policy.FIFO, 3)

		apply(e,
			workload.New("A", 4096, 1),
			workload.New("A", 4096, 2),
			workload.New("A", 4096, 3),
			workload.New("B", 4096, 4),
			workload.New("B", 4096, 5),
			workload.New("B", 4096, 6),
			workload.Kill("A"),
		)

		Expect(e.Metrics().RunningProcesses).To(Equal(1))

		for _, p := range e.Pages() {
			Expect(p.PID).To(Equal(workload.PID("B")))
		}
	})

	It("logs and no-ops a use on an unknown ptr_id", func() {
		e := build(policy.FIFO, 3)

		err := e.Apply(workload.Use(999), nil, 0)
		Expect(err).To(HaveOccurred())
		Expect(e.Metrics().PageHits).To(Equal(0))
		Expect(e.Metrics().PageFaults).To(Equal(0))
	})

	It("treats delete of an already-deleted ptr_id as a no-op", func() {
		e := build(policy.FIFO, 3)

		apply(e, workload.New("A", 4096, 1), workload.Delete(1))

		err := e.Apply(workload.Delete(1), nil, 0)
		Expect(err).To(HaveOccurred())
	})

	It("computes internal fragmentation from the last, partial page of an allocation", func() {
		e := build(policy.FIFO, 3)

		apply(e, workload.New("A", 5000, 1)) // 2 pages: 4096 full + 904 content

		Expect(e.Metrics().InternalFragmentationKB).To(BeNumerically("~", float64(4096-904)/1024, 1e-9))
	})

	It("keeps ram_used_kb plus free frames worth equal to total capacity", func() {
		e := build(policy.LRU, 5)

		apply(e,
			workload.New("A", 4096, 1),
			workload.New("A", 4096, 2),
			workload.New("A", 4096, 3),
		)

		free := 0
		for _, f := range e.Frames() {
			if !f.Occupied {
				free++
			}
		}

		Expect(e.Metrics().RAMUsedKB + free*4).To(Equal(5 * 4))
	})
})

func residentPageIDs(e *simcore.Engine) []policy.PageID {
	var ids []policy.PageID
	for _, f := range e.Frames() {
		if f.Occupied {
			ids = append(ids, f.PageID)
		}
	}

	return ids
}
