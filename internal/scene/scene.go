// Package scene owns the particle set and the global color drift, and turns
// frame pulses into physics steps and strokes on a surface.
package scene

import (
	"fmt"
	"image/color"
	"time"

	"github.com/san-kum/lorenzglow/internal/dynamo"
	"github.com/san-kum/lorenzglow/internal/particle"
	"github.com/san-kum/lorenzglow/internal/physics"
	"github.com/san-kum/lorenzglow/internal/render"
)

const (
	DefaultSpeedScale = 0.4
	DefaultDTCeiling  = 0.05
	DefaultSeedRange  = 5.0
)

type Options struct {
	Field      dynamo.System
	Integrator dynamo.Integrator
	// SpeedScale converts wall-clock seconds into integration time.
	SpeedScale float64
	// DTCeiling is the longest frame interval, in seconds, that still
	// advances the simulation. Longer frames only repaint the background.
	DTCeiling float64
	// SeedRange bounds the uniform draw of each initial coordinate.
	SeedRange float64
	Bounds    Bounds
	Sizing    Sizing
	// Particle is the template for every particle; Capacity, Field,
	// Integrator and Noise are filled in by the scene.
	Particle   particle.Options
	Background color.Color
}

func DefaultOptions() Options {
	return Options{
		Field:      physics.NewCanonicalLorenz(),
		SpeedScale: DefaultSpeedScale,
		DTCeiling:  DefaultDTCeiling,
		SeedRange:  DefaultSeedRange,
		Bounds:     DefaultBounds(),
		Sizing:     DefaultSizing(),
		Particle:   particle.Options{Jitter: particle.DefaultJitter()},
		Background: color.Black,
	}
}

// Random is what the scene needs from a sampler: drift draws, seed draws and
// particle jitter.
type Random interface {
	Sampler
	particle.Noise
}

// FrameStats describes one call to Frame.
type FrameStats struct {
	Frame     int
	DT        float64
	Gated     bool
	Segments  int
	Commits   int
	Resets    int
	Particles int
	Width     int
	Height    int
	Palette   particle.Palette
}

// Scene is driven from a single goroutine.
type Scene struct {
	opts      Options
	rng       Random
	drift     Drift
	particles []*particle.Particle

	width, height int
	background    color.Color

	last    time.Time
	started bool
	frame   int
}

// New fills every zero or degenerate field of opts from DefaultOptions. The
// particle template is taken as given.
func New(opts Options, rng Random) *Scene {
	def := DefaultOptions()
	if opts.Field == nil {
		opts.Field = def.Field
	}
	if opts.SpeedScale <= 0 {
		opts.SpeedScale = def.SpeedScale
	}
	if opts.DTCeiling <= 0 {
		opts.DTCeiling = def.DTCeiling
	}
	if opts.SeedRange <= 0 {
		opts.SeedRange = def.SeedRange
	}
	if !opts.Bounds.Valid() {
		opts.Bounds = def.Bounds
	}
	if opts.Sizing == (Sizing{}) {
		opts.Sizing = def.Sizing
	}
	if opts.Background == nil {
		opts.Background = def.Background
	}
	return &Scene{
		opts:       opts,
		rng:        rng,
		drift:      NewDrift(rng),
		width:      1,
		height:     1,
		background: opts.Background,
	}
}

// Populate replaces the particle set with count fresh particles, each with a
// trail of the given capacity.
func (s *Scene) Populate(count, trail int) error {
	po := s.opts.Particle
	po.Field = s.opts.Field
	po.Integrator = s.opts.Integrator
	po.Noise = s.rng
	po.Capacity = trail

	r := s.opts.SeedRange
	ps := make([]*particle.Particle, 0, count)
	for i := 0; i < count; i++ {
		p, err := particle.New(po, s.rng.Uniform(-r, r), s.rng.Uniform(-r, r), s.rng.Uniform(-r, r))
		if err != nil {
			return fmt.Errorf("populating particle %d: %w", i, err)
		}
		ps = append(ps, p)
	}
	s.particles = ps
	return nil
}

func (s *Scene) Resize(width, height int) {
	s.width, s.height = width, height
}

func (s *Scene) SetBackground(c color.Color) {
	if c != nil {
		s.background = c
	}
}

// Start sets the reference timestamp for the first frame.
func (s *Scene) Start(now time.Time) {
	s.last = now
	s.started = true
}

func (s *Scene) Particles() []*particle.Particle { return s.particles }
func (s *Scene) Drift() Drift                    { return s.drift }
func (s *Scene) Size() (int, int)                { return s.width, s.height }
func (s *Scene) Background() color.Color         { return s.background }
func (s *Scene) Options() Options                { return s.opts }

// Gated reports whether a frame interval is too long to integrate.
func (s *Scene) Gated(dt float64) bool {
	return dt > s.opts.DTCeiling
}

// Frame paints one frame: background, then, unless the interval since the
// previous frame exceeds the ceiling, one drift step and one update and draw
// per particle.
func (s *Scene) Frame(surf render.Surface, now time.Time) FrameStats {
	if !s.started {
		s.Start(now)
	}
	dt := now.Sub(s.last).Seconds()
	if dt < 0 {
		dt = 0
	}

	st := FrameStats{
		Frame:     s.frame,
		DT:        dt,
		Gated:     s.Gated(dt),
		Particles: len(s.particles),
		Width:     s.width,
		Height:    s.height,
	}

	view := ComputeView(s.width, s.height, s.opts.Bounds)
	surf.Fill(s.background)
	surf.SetLineWidth(s.opts.Sizing.Pick(s.width, s.height).LineWidth)

	if !st.Gated {
		h := dt * s.opts.SpeedScale
		s.drift.Step(h, s.rng)
		pal := s.drift.Palette()
		for _, p := range s.particles {
			r := p.Resets()
			if p.Update(h) {
				st.Commits++
			}
			st.Resets += p.Resets() - r
			st.Segments += p.Draw(surf, view, pal)
		}
	}
	st.Palette = s.drift.Palette()

	s.last = now
	s.frame++
	return st
}

// Tick advances drift and particles by dt seconds without drawing. It
// reports false, changing nothing, when dt exceeds the ceiling.
func (s *Scene) Tick(dt float64) bool {
	if dt < 0 {
		dt = 0
	}
	if s.Gated(dt) {
		return false
	}
	h := dt * s.opts.SpeedScale
	s.drift.Step(h, s.rng)
	for _, p := range s.particles {
		p.Update(h)
	}
	return true
}
