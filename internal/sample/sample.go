// Package sample draws the uniform and normal variates used to seed
// particles, jitter them, and pick new drift targets.
package sample

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Sampler is not safe for concurrent use; the package-level helpers are.
type Sampler struct {
	rng *rand.Rand
}

// New returns a sampler seeded with seed, or with the current time if seed is 0.
func New(seed int64) *Sampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// FromSource wraps an existing source, typically a fixed one in tests.
func FromSource(src rand.Source) *Sampler {
	return &Sampler{rng: rand.New(src)}
}

// Uniform returns a value in [low, high).
func (s *Sampler) Uniform(low, high float64) float64 {
	return s.rng.Float64()*(high-low) + low
}

// StandardNormal uses the Box-Muller transform and discards the sine deviate.
func (s *Sampler) StandardNormal() float64 {
	u1 := s.rng.Float64()
	for u1 == 0 {
		u1 = s.rng.Float64()
	}
	u2 := s.rng.Float64()

	r := math.Sqrt(-2 * math.Log(u1))
	theta := 2 * math.Pi * u2
	return r * math.Cos(theta)
}

func (s *Sampler) Normal(mean, std float64) float64 {
	return mean + std*s.StandardNormal()
}

var (
	defaultMu      sync.Mutex
	defaultSampler = New(0)
)

// Seed reseeds the process-wide sampler.
func Seed(seed int64) {
	defaultMu.Lock()
	defaultSampler = New(seed)
	defaultMu.Unlock()
}

func Uniform(low, high float64) float64 {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultSampler.Uniform(low, high)
}

func StandardNormal() float64 {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultSampler.StandardNormal()
}

func Normal(mean, std float64) float64 {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultSampler.Normal(mean, std)
}
