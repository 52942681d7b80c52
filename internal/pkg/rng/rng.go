// Package rng makes the game's random draws injectable, the same way
// clock and idgen are. Capture resolution, rewards, and summons all
// consume a Source so tests can pin outcomes or run seeded convergence
// checks.
package rng

import (
	"math/rand/v2"
	"sync"
)

// Source yields uniform random values. Implementations must be safe for
// concurrent use.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n). Panics if n <= 0.
	IntN(n int) int
}

// system draws from the process-global generator, which is already
// concurrency-safe.
type system struct{}

// New returns the production source.
func New() Source {
	return system{}
}

func (system) Float64() float64 {
	return rand.Float64()
}

func (system) IntN(n int) int {
	return rand.IntN(n)
}

// Seeded is a deterministic source for tests. A mutex guards the
// underlying generator, which is not safe on its own.
type Seeded struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeeded returns a source producing a reproducible stream.
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float64 returns the next uniform value in [0, 1).
func (s *Seeded) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// IntN returns the next uniform value in [0, n).
func (s *Seeded) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// Fixed returns a canned sequence of Float64 values, cycling when
// exhausted. IntN always returns 0. Useful for forcing capture
// outcomes.
type Fixed struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewFixed returns a source that replays values in order.
func NewFixed(values ...float64) *Fixed {
	return &Fixed{values: values}
}

// Float64 returns the next canned value.
func (f *Fixed) Float64() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.values) == 0 {
		return 0
	}
	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}

// IntN returns 0.
func (f *Fixed) IntN(n int) int {
	return 0
}

// SetValues replaces the canned sequence and restarts it.
func (f *Fixed) SetValues(values ...float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = values
	f.next = 0
}
