package workload

import (
	"fmt"

	"github.com/sarchlab/vmpagesim/prng"
)

// GenerateConfig bounds a generated workload.
type GenerateConfig struct {
	ProcessCount int
	OpCount      int
	Seed         string

	// MinAllocBytes and MaxAllocBytes bound the size drawn for a `new`.
	// Zero values fall back to the textbook defaults of 100 bytes and
	// 16 KB used throughout the spec's worked examples.
	MinAllocBytes int
	MaxAllocBytes int
}

func (c GenerateConfig) withDefaults() GenerateConfig {
	if c.MinAllocBytes <= 0 {
		c.MinAllocBytes = 100
	}

	if c.MaxAllocBytes <= 0 {
		c.MaxAllocBytes = 16 * 1024
	}

	return c
}

type processState struct {
	pid   PID
	ptrs  []PtrID
	dying bool
}

func (p *processState) removePtr(ptr PtrID) {
	for i, id := range p.ptrs {
		if id == ptr {
			p.ptrs = append(p.ptrs[:i], p.ptrs[i+1:]...)
			return
		}
	}
}

// Generate produces a deterministic instruction stream and reports the
// next unused PtrID, so a caller can extend the stream later without
// colliding allocation ids.
func Generate(cfg GenerateConfig) (instructions []Instruction, nextPtrID PtrID) {
	cfg = cfg.withDefaults()

	rnd := prng.New(cfg.Seed)
	next := PtrID(1)

	processes := make([]*processState, cfg.ProcessCount)
	for i := range processes {
		processes[i] = &processState{pid: PID(fmt.Sprintf("P%d", i+1))}
	}

	instructions = make([]Instruction, 0, cfg.OpCount)

	for len(instructions) < cfg.OpCount {
		proc := pickLivingProcess(processes, rnd)
		if proc == nil {
			break
		}

		instructions, next = appendStep(instructions, proc, rnd, cfg, next, len(instructions))
	}

	// Any process still alive at the end gets a final kill appended, and
	// the stream is truncated back to OpCount afterwards. The loop above
	// only stops early once every process is dying, so whenever kills are
	// appended the stream already holds OpCount instructions and the
	// truncation drops all of them: processes still alive at the end have
	// no terminating kill in the emitted stream (see DESIGN.md).
	for _, p := range processes {
		if !p.dying && len(p.ptrs) > 0 {
			instructions = append(instructions, Kill(p.pid))
			p.dying = true
			p.ptrs = nil
		}
	}

	if len(instructions) > cfg.OpCount {
		instructions = instructions[:cfg.OpCount]
	}

	return instructions, next
}

func pickLivingProcess(processes []*processState, rnd *prng.Source) *processState {
	living := make([]*processState, 0, len(processes))
	for _, p := range processes {
		if !p.dying {
			living = append(living, p)
		}
	}

	if len(living) == 0 {
		return nil
	}

	return living[rnd.Intn(len(living))]
}

func appendStep(
	instructions []Instruction,
	proc *processState,
	rnd *prng.Source,
	cfg GenerateConfig,
	next PtrID,
	stepIndex int,
) ([]Instruction, PtrID) {
	if len(proc.ptrs) == 0 {
		return appendNew(instructions, proc, rnd, cfg, next), next + 1
	}

	u := rnd.Float64()

	switch {
	case u < 0.1:
		// A kill this early in the stream would starve later steps of
		// live pointers to exercise, so downgrade to a `new` for the
		// first quarter of the run.
		if stepIndex < cfg.OpCount/4 {
			return appendNew(instructions, proc, rnd, cfg, next), next + 1
		}

		proc.dying = true
		proc.ptrs = nil

		return append(instructions, Kill(proc.pid)), next
	case u < 0.5:
		return appendNew(instructions, proc, rnd, cfg, next), next + 1
	case u < 0.8:
		ptr := proc.ptrs[rnd.Intn(len(proc.ptrs))]
		return append(instructions, Use(ptr)), next
	default:
		ptr := proc.ptrs[rnd.Intn(len(proc.ptrs))]
		proc.removePtr(ptr)

		return append(instructions, Delete(ptr)), next
	}
}

func appendNew(
	instructions []Instruction,
	proc *processState,
	rnd *prng.Source,
	cfg GenerateConfig,
	ptr PtrID,
) []Instruction {
	span := cfg.MaxAllocBytes - cfg.MinAllocBytes + 1
	size := cfg.MinAllocBytes + rnd.Intn(span)

	proc.ptrs = append(proc.ptrs, ptr)

	return append(instructions, New(proc.pid, size, ptr))
}
