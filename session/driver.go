// Package session implements the dual-policy driver: it runs OPT and a
// user-chosen policy in lock-step over the same instruction stream so the
// two can be compared on identical input.
package session

import (
	"fmt"

	"github.com/rs/xid"

	"github.com/sarchlab/vmpagesim/policy"
	"github.com/sarchlab/vmpagesim/simcore"
	"github.com/sarchlab/vmpagesim/workload"
)

// StepOutcome reports what happened after one Step call.
type StepOutcome struct {
	ReachedEnd bool
}

// Session holds two engine instances - one fixed to OPT, one to the
// caller's chosen policy - and advances them together, instruction by
// instruction. The two engines never share mutable state; Session only
// coordinates which instruction each sees next.
type Session struct {
	id   string
	algo policy.Name
	seed string

	frameCount       int
	instructions     []workload.Instruction
	initialNextPtrID workload.PtrID

	index  int
	opt    *simcore.Engine
	chosen *simcore.Engine
}

// ID returns the session's unique identifier, useful for correlating
// traces recorded via the trace package across a session's lifetime.
func (s *Session) ID() string {
	return s.id
}

// NextPtrID returns the next unused ptr_id following this session's
// instruction stream, as produced alongside it by workload.Generate or
// workload.Parse. A caller that wants to extend the stream with more
// instructions and rebuild the session uses this to keep ptr_ids globally
// sequential instead of colliding with ones already in use.
func (s *Session) NextPtrID() workload.PtrID {
	return s.initialNextPtrID
}

// Step applies the next instruction to both engines and advances the
// cursor. A step is atomic: both engines fully process instruction i
// before Step returns. Calling Step after the stream is exhausted is a
// no-op that reports ReachedEnd again.
func (s *Session) Step() StepOutcome {
	if s.index >= len(s.instructions) {
		return StepOutcome{ReachedEnd: true}
	}

	instr := s.instructions[s.index]

	// OPT alone receives the future suffix and its start index; the
	// chosen policy's context carries neither.
	_ = s.opt.Apply(instr, s.instructions, s.index)
	_ = s.chosen.Apply(instr, nil, 0)

	s.index++

	return StepOutcome{ReachedEnd: s.index >= len(s.instructions)}
}

// Reset reconstructs both engines from the original seed and next ptr id,
// rewinding the cursor to the start of the instruction stream.
func (s *Session) Reset() {
	s.index = 0
	s.opt = buildEngine(policy.OPT, s.seed, s.frameCount)
	s.chosen = buildEngine(s.algo, s.seed, s.frameCount)
}

// Snapshot returns a read-only view of both engines' current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		OPT:    viewOf(s.opt),
		Chosen: viewOf(s.chosen),
	}
}

// AtEnd reports whether every instruction has already been applied.
func (s *Session) AtEnd() bool {
	return s.index >= len(s.instructions)
}

func buildEngine(algo policy.Name, seed string, frameCount int) *simcore.Engine {
	return simcore.MakeBuilder().
		WithAlgorithm(algo).
		WithSeed(seed).
		WithFrameCount(frameCount).
		Build()
}

// Builder constructs a Session. It mirrors simcore.Builder's fluent style.
type Builder struct {
	seed             string
	algo             policy.Name
	frameCount       int
	instructions     []workload.Instruction
	initialNextPtrID workload.PtrID
}

// MakeBuilder returns a Builder defaulted to the spec's RAM capacity.
func MakeBuilder() Builder {
	return Builder{frameCount: simcore.TotalRAMFrames}
}

// WithSeed sets the seed both engines derive their RNG streams from.
func (b Builder) WithSeed(seed string) Builder {
	b.seed = seed
	return b
}

// WithAlgorithm sets the policy compared against OPT.
func (b Builder) WithAlgorithm(algo policy.Name) Builder {
	b.algo = algo
	return b
}

// WithFrameCount overrides the RAM capacity given to both engines.
func (b Builder) WithFrameCount(n int) Builder {
	b.frameCount = n
	return b
}

// WithInstructions sets the shared instruction stream and the next unused
// ptr_id following it, as produced by workload.Generate or workload.Parse.
func (b Builder) WithInstructions(instructions []workload.Instruction, nextPtrID workload.PtrID) Builder {
	b.instructions = instructions
	b.initialNextPtrID = nextPtrID

	return b
}

// Build validates the configuration and returns a ready-to-step Session.
func (b Builder) Build() (*Session, error) {
	if !b.algo.Valid() {
		return nil, fmt.Errorf("session: %q is not a known algorithm", b.algo)
	}

	if b.frameCount <= 0 {
		return nil, fmt.Errorf("session: frame count must be positive, got %d", b.frameCount)
	}

	s := &Session{
		id:               xid.New().String(),
		algo:             b.algo,
		seed:             b.seed,
		frameCount:       b.frameCount,
		instructions:     b.instructions,
		initialNextPtrID: b.initialNextPtrID,
	}

	s.Reset()

	return s, nil
}
