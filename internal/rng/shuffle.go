// Package rng implements the pseudo-random source the engine
// uses to reshuffle the structuring-element order and each element's
// offset order on every iteration (spec §4.4.4). It wraps math/rand the
// way the teacher's dsp.VP8Random wraps a hand-rolled generator: a small
// struct holding the generator state, seeded once, reused for the
// lifetime of a single engine run. It is not safe for concurrent use,
// matching spec §5's single-threaded-per-run resource model.
package rng

import (
	"math/rand"
	"time"
)

// Source is the engine's shuffle source.
type Source struct {
	r *rand.Rand
}

// New returns a Source seeded from seed, or from the wall clock when seed
// is negative (the CLI convention of -1 meaning "use time", spec §6).
func New(seed int64) *Source {
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// Shuffle permutes a sequence of length n in place via swap, using
// Fisher-Yates / Algorithm P: for j from n-1 down to 1, draw U uniform in
// [0,1), let k = floor(j*U), and swap j and k.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	for j := n - 1; j >= 1; j-- {
		u := s.r.Float64()
		k := int(float64(j) * u)
		swap(j, k)
	}
}

// Permutation returns a freshly shuffled permutation of [0, n).
func (s *Source) Permutation(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	s.Shuffle(n, func(i, j int) { p[i], p[j] = p[j], p[i] })
	return p
}

// Bool draws a uniform random boolean, used by the CLI to fill
// structuring element content.
func (s *Source) Bool() bool {
	return s.r.Float64() < 0.5
}
