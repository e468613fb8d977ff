package simcore

import (
	"log"
	"os"

	"github.com/sarchlab/vmpagesim/policy"
	"github.com/sarchlab/vmpagesim/prng"
)

// TotalRAMFrames is the default RAM capacity: 100 frames of 4 KB, 400 KB
// total. Builder.WithFrameCount overrides it for callers that want a
// different capacity.
const TotalRAMFrames = 100

// Builder constructs an Engine. Its fluent With* methods mirror the rest
// of the simulator's construction style: each returns a new Builder value
// so a partially configured Builder can be reused safely.
type Builder struct {
	algo       policy.Name
	frameCount int
	seed       string
	logger     *log.Logger
}

// MakeBuilder returns a Builder with the spec's default RAM capacity.
func MakeBuilder() Builder {
	return Builder{
		frameCount: TotalRAMFrames,
		logger:     log.New(os.Stderr, "simcore: ", log.LstdFlags),
	}
}

// WithAlgorithm sets which replacement policy the built Engine will run.
func (b Builder) WithAlgorithm(algo policy.Name) Builder {
	b.algo = algo
	return b
}

// WithFrameCount overrides the RAM capacity, in frames.
func (b Builder) WithFrameCount(n int) Builder {
	b.frameCount = n
	return b
}

// WithSeed sets the base seed. The Engine derives its own RNG stream from
// seed||algorithm name so Random's choices stay reproducible and
// independent of every other policy's stream.
func (b Builder) WithSeed(seed string) Builder {
	b.seed = seed
	return b
}

// WithLogger overrides where UnknownPointer warnings are logged.
func (b Builder) WithLogger(logger *log.Logger) Builder {
	b.logger = logger
	return b
}

// Build returns a freshly constructed Engine, with every frame free and
// every metric at zero.
func (b Builder) Build() *Engine {
	if !b.algo.Valid() {
		panic("simcore: Builder.Build called without a valid algorithm")
	}

	frames := make([]Frame, b.frameCount)
	for i := range frames {
		frames[i] = Frame{ID: i}
	}

	base := prng.New(b.seed)

	return &Engine{
		algo:   b.algo,
		frames: frames,
		mmu:    newMMU(),
		rng:    base.Derive(string(b.algo)),
		logger: b.logger,
	}
}
