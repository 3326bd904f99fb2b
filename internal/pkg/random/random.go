// Package random provides a seedable source of randomness so callers that add
// jitter to display values can be made deterministic in tests.
package random

import (
	"math/rand"
	"sync"
)

// Source yields pseudo-random floats in [0, 1).
type Source interface {
	Float64() float64
}

type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Source seeded with seed. It is safe for concurrent use.
func New(seed int64) Source {
	return &lockedSource{rnd: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}

// Fixed always returns v.
type Fixed float64

func (f Fixed) Float64() float64 { return float64(f) }
