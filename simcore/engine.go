// Package simcore implements the per-policy simulation engine: the MMU,
// the fixed array of RAM frames, and the metrics bundle described in the
// spec's data model. One Engine instance runs a single replacement policy
// over an instruction stream; the session package runs two of them (OPT
// and a chosen policy) in lock-step over the same stream.
package simcore

import (
	"log"
	"sort"

	"github.com/sarchlab/vmpagesim/policy"
	"github.com/sarchlab/vmpagesim/prng"
	"github.com/sarchlab/vmpagesim/workload"
)

// Engine is a single policy's replay state: its RAM frames, its MMU, its
// metrics, and (for Second Chance) its clock hand. Two Engines never share
// mutable state; each owns everything it touches.
type Engine struct {
	algo   policy.Name
	frames []Frame
	mmu    *mmu
	metric Metrics
	hand   int
	rng    *prng.Source

	nextDiskAddr uint64
	logger       *log.Logger
}

// Algorithm reports which policy this engine is running.
func (e *Engine) Algorithm() policy.Name {
	return e.algo
}

// Metrics returns a copy of the current metrics snapshot.
func (e *Engine) Metrics() Metrics {
	return e.metric
}

// Frames returns a copy of the frame array, in frame-id order.
func (e *Engine) Frames() []Frame {
	out := make([]Frame, len(e.frames))
	copy(out, e.frames)

	return out
}

// Pages returns every live logical page, sorted by (ptr_id, index) so
// snapshots are deterministic and diffable across two engines.
func (e *Engine) Pages() []Page {
	out := make([]Page, 0, len(e.mmu.pages))
	for _, p := range e.mmu.pages {
		out = append(out, *p)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].PtrID != out[j].PtrID {
			return out[i].PtrID < out[j].PtrID
		}

		return out[i].Index < out[j].Index
	})

	return out
}

// HandPosition reports the Second Chance clock hand, meaningless for any
// other policy.
func (e *Engine) HandPosition() int {
	return e.hand
}

// Apply advances the engine by exactly one instruction. future and
// futureIndex are the full instruction stream and the index of instr
// within it; only OPT reads them. A non-nil, non-panic error is always an
// UnknownPointerError: the instruction was a logged no-op, not a failure
// of the engine itself.
func (e *Engine) Apply(instr workload.Instruction, future []workload.Instruction, futureIndex int) error {
	var err error

	switch instr.Kind {
	case workload.KindNew:
		e.applyNew(instr, future, futureIndex)
	case workload.KindUse:
		err = e.applyUse(instr, future, futureIndex)
	case workload.KindDelete:
		err = e.applyDelete(instr)
	case workload.KindKill:
		e.applyKill(instr)
	default:
		panic(&InvariantViolationError{Detail: "unrecognized instruction kind"})
	}

	e.metric.Recompute(e.frames, e.mmu, len(e.frames))
	e.checkInvariants()

	if err != nil && e.logger != nil {
		e.logger.Printf("%s: %v (%s)", e.algo, err, instr)
	}

	return err
}

func (e *Engine) applyNew(instr workload.Instruction, future []workload.Instruction, futureIndex int) {
	count, lastContent := numPages(instr.SizeBytes)

	for idx := 0; idx < count; idx++ {
		content := PageSizeBytes
		if idx == count-1 {
			content = lastContent
		}

		id := policy.PageID{Ptr: instr.PtrID, Index: idx}
		page := &Page{
			ID:               id,
			PID:              instr.PID,
			PtrID:            instr.PtrID,
			Index:            idx,
			ContentSizeBytes: content,
		}

		e.mmu.insert(page)

		hit := e.install(page, future, futureIndex)
		page.LastAccessTimestamp = page.LoadedTimestamp
		page.ReferenceBit = false
		e.frames[page.FrameID].ReferenceBit = false

		if hit {
			e.metric.recordHit()
		} else {
			e.metric.recordFault()
		}
	}
}

func (e *Engine) applyUse(instr workload.Instruction, future []workload.Instruction, futureIndex int) error {
	pages, ok := e.mmu.pagesOf(instr.PtrID)
	if !ok {
		return &UnknownPointerError{Op: "use"}
	}

	for _, id := range pages {
		page, ok := e.mmu.get(id)
		if !ok {
			panic(&InvariantViolationError{Detail: "active pointer references a page missing from the MMU"})
		}

		now := e.metric.TotalTime
		page.LastAccessTimestamp = now
		page.ReferenceBit = true

		if page.Resident {
			e.frames[page.FrameID].LastAccessTimestamp = now
			e.frames[page.FrameID].ReferenceBit = true
			e.metric.recordHit()

			continue
		}

		e.install(page, future, futureIndex)
		e.metric.recordFault()

		e.frames[page.FrameID].ReferenceBit = true
		e.frames[page.FrameID].LastAccessTimestamp = page.LastAccessTimestamp
	}

	return nil
}

func (e *Engine) applyDelete(instr workload.Instruction) error {
	pages, ok := e.mmu.pagesOf(instr.PtrID)
	if !ok {
		return &UnknownPointerError{Op: "delete"}
	}

	for _, id := range pages {
		page, ok := e.mmu.get(id)
		if !ok {
			panic(&InvariantViolationError{Detail: "active pointer references a page missing from the MMU"})
		}

		if page.Resident {
			e.frames[page.FrameID].clear()
		}

		e.mmu.remove(id)
	}

	e.mmu.dropPointer(instr.PtrID)

	return nil
}

func (e *Engine) applyKill(instr workload.Instruction) {
	for _, ptr := range e.mmu.ptrsOwnedBy(instr.PID) {
		if err := e.applyDelete(workload.Delete(ptr)); err != nil {
			panic(&InvariantViolationError{Detail: "kill found a ptr_id already gone from active pointers"})
		}
	}
}

// install finds a home for page: a free frame if one exists, otherwise the
// victim chosen by the engine's policy. It reports whether a free frame
// was used as opposed to an eviction; the caller is responsible for
// recording the outcome in the metrics (applyNew counts a free frame as a
// hit, applyUse records a fault either way).
func (e *Engine) install(page *Page, future []workload.Instruction, futureIndex int) bool {
	now := e.metric.TotalTime

	if idx, ok := e.freeFrame(); ok {
		e.frames[idx].occupy(page.ID, page.PID, now)
		page.Resident = true
		page.FrameID = idx
		page.LoadedTimestamp = now

		return true
	}

	ctx := e.buildContext(future, futureIndex)
	if len(ctx.Occupied) == 0 {
		panic(&InvariantViolationError{Detail: "policy asked to evict from empty RAM"})
	}

	dec := policy.Decide(e.algo, ctx)
	e.evict(dec)

	e.frames[dec.VictimFrameID].occupy(page.ID, page.PID, now)
	page.Resident = true
	page.FrameID = dec.VictimFrameID
	page.LoadedTimestamp = now

	if e.algo == policy.SC {
		e.hand = dec.NextHandPosition

		for _, cleared := range dec.ClearRefBits {
			if p, ok := e.mmu.get(cleared); ok {
				p.ReferenceBit = false

				if p.Resident {
					e.frames[p.FrameID].ReferenceBit = false
				}
			}
		}
	}

	return false
}

func (e *Engine) evict(dec policy.Decision) {
	victim, ok := e.mmu.get(dec.VictimPageID)
	if !ok {
		panic(&InvariantViolationError{Detail: "policy selected a victim page absent from the MMU"})
	}

	victim.Resident = false
	victim.FrameID = 0
	victim.DiskAddress = e.nextDiskAddr
	e.nextDiskAddr++

	e.frames[dec.VictimFrameID].clear()
}

func (e *Engine) freeFrame() (int, bool) {
	for i := range e.frames {
		if !e.frames[i].Occupied {
			return i, true
		}
	}

	return 0, false
}

func (e *Engine) buildContext(future []workload.Instruction, futureIndex int) policy.Context {
	occupied := make([]policy.FrameView, 0, len(e.frames))

	for _, f := range e.frames {
		if !f.Occupied {
			continue
		}

		occupied = append(occupied, policy.FrameView{
			FrameID:             f.ID,
			PageID:              f.PageID,
			PtrID:               f.PageID.Ptr,
			LoadedTimestamp:     f.LoadedTimestamp,
			LastAccessTimestamp: f.LastAccessTimestamp,
			ReferenceBit:        f.ReferenceBit,
		})
	}

	return policy.Context{
		Occupied:     occupied,
		Future:       future,
		FutureIndex:  futureIndex,
		HandPosition: e.hand,
		RNG:          e.rng,
	}
}

// checkInvariants re-derives the bidirectional frame/page mapping and
// panics with an InvariantViolationError if it does not hold. It runs
// after every Apply, since the mapping must hold after every instruction.
func (e *Engine) checkInvariants() {
	for _, f := range e.frames {
		if !f.Occupied {
			continue
		}

		page, ok := e.mmu.get(f.PageID)
		if !ok || !page.Resident || page.FrameID != f.ID {
			panic(&InvariantViolationError{
				Detail: "frame " + f.PageID.String() + " and its page disagree on residency",
			})
		}
	}

	for _, p := range e.mmu.pages {
		if !p.Resident {
			continue
		}

		if p.FrameID < 0 || p.FrameID >= len(e.frames) ||
			!e.frames[p.FrameID].Occupied || e.frames[p.FrameID].PageID != p.ID {
			panic(&InvariantViolationError{
				Detail: "page " + p.ID.String() + " and its frame disagree on residency",
			})
		}
	}

	if e.metric.ThrashingTime > e.metric.TotalTime {
		panic(&InvariantViolationError{Detail: "thrashing time exceeds total time"})
	}
}
