// Package prng provides the deterministic pseudo-random source shared by
// workload generation and the Random replacement policy. The same seed
// string always produces the same stream on any host.
package prng

import (
	"hash/fnv"
	"math/rand"
)

// Source is a named, seeded pseudo-random source. It wraps math/rand.Rand
// so callers get the usual Intn/Float64 surface while the seed derivation
// stays centralized here.
type Source struct {
	name string
	rnd  *rand.Rand
}

// New creates a Source seeded from seed. Two Sources built from the same
// seed produce identical streams.
func New(seed string) *Source {
	return &Source{name: seed, rnd: rand.New(rand.NewSource(seedToInt64(seed)))}
}

// Derive returns a new, independent Source seeded from seed||suffix. This
// is how each policy gets its own stream: seed||algorithm_name.
func (s *Source) Derive(suffix string) *Source {
	return New(s.name + suffix)
}

// Name reports the string this source was seeded from.
func (s *Source) Name() string {
	return s.name
}

// Intn returns a pseudo-random int in [0, n).
func (s *Source) Intn(n int) int {
	return s.rnd.Intn(n)
}

// Float64 returns a pseudo-random float in [0, 1).
func (s *Source) Float64() float64 {
	return s.rnd.Float64()
}

// seedToInt64 hashes an arbitrary seed string into an int64 suitable for
// rand.NewSource. FNV-1a is used purely for its determinism and speed, not
// for any cryptographic property.
func seedToInt64(seed string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed))

	v := h.Sum64()
	if v == 0 {
		return 1
	}

	return int64(v)
}
