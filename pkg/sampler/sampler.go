// Package sampler provides the by-name pluggable sample generators.
// Importing it registers the "random" and "stratified" samplers.
package sampler

import (
	"math"
	"math/rand"

	"github.com/kferran/go-spiral-tracer/pkg/core"
)

func init() {
	core.RegisterSampler("random", func() core.Sampler { return NewRandomSampler(0) })
	core.RegisterSampler("stratified", func() core.Sampler { return NewStratifiedSampler(0) })
}

// RandomSampler draws independent uniform samples from a seeded generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a random sampler with the given seed
func NewRandomSampler(seed int64) *RandomSampler {
	return &RandomSampler{random: rand.New(rand.NewSource(seed))}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() core.Vec2 {
	return core.NewVec2(r.random.Float64(), r.random.Float64())
}

// RoundSize accepts any positive sample count
func (r *RandomSampler) RoundSize(size int) int {
	return max(1, size)
}

// Reset reseeds the sample sequence
func (r *RandomSampler) Reset(seed int64) {
	r.random = rand.New(rand.NewSource(seed))
}

// StratifiedSampler jitters samples inside the cells of a square grid, so a
// pixel's samples cover the sample domain more evenly than independent
// draws. The per-pixel sample count must be a perfect square.
type StratifiedSampler struct {
	random  *rand.Rand
	dim     int // Strata per axis
	stratum int // Next stratum index for Get2D
}

// NewStratifiedSampler creates a stratified sampler with the given seed
func NewStratifiedSampler(seed int64) *StratifiedSampler {
	return &StratifiedSampler{random: rand.New(rand.NewSource(seed)), dim: 1}
}

// Get1D returns a random float64 in [0, 1)
func (s *StratifiedSampler) Get1D() float64 {
	return s.random.Float64()
}

// Get2D returns a jittered position inside the next stratum, cycling
// through all dim×dim strata
func (s *StratifiedSampler) Get2D() core.Vec2 {
	cell := s.stratum
	s.stratum = (s.stratum + 1) % (s.dim * s.dim)

	cellX := cell % s.dim
	cellY := cell / s.dim
	inv := 1.0 / float64(s.dim)
	return core.NewVec2(
		(float64(cellX)+s.random.Float64())*inv,
		(float64(cellY)+s.random.Float64())*inv,
	)
}

// RoundSize rounds the requested sample count up to the next perfect square
// and fixes the stratum grid accordingly
func (s *StratifiedSampler) RoundSize(size int) int {
	if size < 1 {
		size = 1
	}
	dim := int(math.Ceil(math.Sqrt(float64(size))))
	s.dim = dim
	return dim * dim
}

// Reset reseeds the sample sequence and restarts the stratum cycle
func (s *StratifiedSampler) Reset(seed int64) {
	s.random = rand.New(rand.NewSource(seed))
	s.stratum = 0
}
