// Package particle integrates a single point along a vector field and keeps
// a fixed-size circular trail of where it has been.
package particle

import (
	"fmt"
	"math"

	"github.com/san-kum/lorenzglow/internal/dynamo"
	"github.com/san-kum/lorenzglow/internal/integrators"
	"github.com/san-kum/lorenzglow/internal/render"
	"github.com/san-kum/lorenzglow/internal/sample"
)

const (
	DefaultCommitThreshold = 0.01
	DefaultAlphaDecimals   = 2
	DefaultJitterThreshold = 50.0
	DefaultJitterStd       = 0.1
	DefaultDivergenceBound = 1e6
)

// Axis selects which state coordinate drives the vertical screen position.
type Axis int

const (
	AxisZ Axis = iota
	AxisY
)

func (a Axis) index() int {
	if a == AxisY {
		return 1
	}
	return 2
}

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "z"
}

// ParseAxis accepts "y" or "z"; anything else is an error.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "z", "":
		return AxisZ, nil
	case "y":
		return AxisY, nil
	}
	return AxisZ, fmt.Errorf("particle: unknown projection axis %q", s)
}

// Noise supplies the normal deviates used for jitter.
type Noise interface {
	Normal(mean, std float64) float64
}

type defaultNoise struct{}

func (defaultNoise) Normal(mean, std float64) float64 { return sample.Normal(mean, std) }

// Jitter adds normal noise to each coordinate whenever the squared speed is
// below Threshold, so particles do not stall near fixed points.
type Jitter struct {
	Enabled   bool
	Threshold float64
	Std       float64
}

func DefaultJitter() Jitter {
	return Jitter{Enabled: true, Threshold: DefaultJitterThreshold, Std: DefaultJitterStd}
}

type Options struct {
	Field      dynamo.System
	Integrator dynamo.Integrator // Euler when nil
	Noise      Noise             // process-wide sampler when nil
	Capacity   int
	// CommitThreshold is the squared distance a point must move before it
	// is appended to the trail. Zero means DefaultCommitThreshold.
	CommitThreshold float64
	Jitter          Jitter
	Vertical        Axis
	// AlphaDecimals is the rounding applied to segment alpha. Zero means
	// DefaultAlphaDecimals.
	AlphaDecimals int
	// DivergenceBound is the distance from the origin past which a state is
	// treated as diverged and the particle is re-seeded. Zero means
	// DefaultDivergenceBound; negative disables the distance check.
	DivergenceBound float64
}

// View maps attractor coordinates to surface pixels.
type View struct {
	CenterX, CenterY float64
	ScaleX, ScaleY   float64
}

// Palette is the global color state a trail is drawn with.
type Palette struct {
	HuePosition float64
	HueRange    float64
	HueRotation float64
	Saturation  float64
	Light       float64
}

// Trail is a fixed-capacity ring of committed positions.
type Trail struct {
	X, Y, Z []float64
}

func newTrail(n int, x, y, z float64) Trail {
	t := Trail{X: make([]float64, n), Y: make([]float64, n), Z: make([]float64, n)}
	for i := 0; i < n; i++ {
		t.X[i], t.Y[i], t.Z[i] = x, y, z
	}
	return t
}

func (t Trail) Len() int { return len(t.X) }

func (t Trail) At(i int) (x, y, z float64) { return t.X[i], t.Y[i], t.Z[i] }

func (t Trail) axis(i int) []float64 {
	switch i {
	case 0:
		return t.X
	case 1:
		return t.Y
	}
	return t.Z
}

type Particle struct {
	field     dynamo.System
	integ     dynamo.Integrator
	noise     Noise
	jitter    Jitter
	threshold float64
	vertical  Axis
	decimals  int
	bound     float64

	seed   dynamo.State
	state  dynamo.State
	trail  Trail
	cursor int
	resets int
}

// New seeds a particle at (x0, y0, z0) with every trail slot set to that
// position.
func New(opts Options, x0, y0, z0 float64) (*Particle, error) {
	if opts.Capacity < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTrailTooShort, opts.Capacity)
	}
	seed := dynamo.State{x0, y0, z0}
	if !seed.IsValid() {
		return nil, ErrBadSeed
	}
	if opts.Field == nil || opts.Field.StateDim() != 3 {
		return nil, dynamo.ErrDimensionMismatch
	}

	p := &Particle{
		field:     opts.Field,
		integ:     opts.Integrator,
		noise:     opts.Noise,
		jitter:    opts.Jitter,
		threshold: opts.CommitThreshold,
		vertical:  opts.Vertical,
		decimals:  opts.AlphaDecimals,
		bound:     opts.DivergenceBound,
		seed:      seed,
		state:     seed.Clone(),
		trail:     newTrail(opts.Capacity, x0, y0, z0),
	}
	if p.integ == nil {
		p.integ = integrators.NewEuler()
	}
	if p.noise == nil {
		p.noise = defaultNoise{}
	}
	if p.threshold == 0 {
		p.threshold = DefaultCommitThreshold
	}
	if p.decimals == 0 {
		p.decimals = DefaultAlphaDecimals
	}
	if p.bound == 0 {
		p.bound = DefaultDivergenceBound
	}
	return p, nil
}

func (p *Particle) State() dynamo.State { return p.state.Clone() }
func (p *Particle) Trail() Trail        { return p.trail }
func (p *Particle) Cursor() int         { return p.cursor }

// Resets counts how many times the particle has been sent back to its seed.
func (p *Particle) Resets() int { return p.resets }

// Update advances the particle by one step of size h and reports whether a
// new point was committed to the trail. A step that leaves the state
// non-finite or beyond the divergence bound re-seeds the particle instead.
func (p *Particle) Update(h float64) bool {
	d := p.field.Derive(p.state, 0)
	next := p.integ.Step(p.field, p.state, 0, h)

	if p.jitter.Enabled && d.NormSquared() < p.jitter.Threshold {
		for i := range next {
			next[i] += p.noise.Normal(0, p.jitter.Std)
		}
	}
	if next.Check(p.bound) != nil {
		p.reseed()
		return false
	}
	p.state = next
	return p.commit()
}

func (p *Particle) reseed() {
	p.state = p.seed.Clone()
	p.trail = newTrail(p.trail.Len(), p.seed[0], p.seed[1], p.seed[2])
	p.cursor = 0
	p.resets++
}

func (p *Particle) commit() bool {
	lx, ly, lz := p.trail.At(p.cursor)
	dx, dy, dz := p.state[0]-lx, p.state[1]-ly, p.state[2]-lz
	if dx*dx+dy*dy+dz*dz <= p.threshold {
		return false
	}
	p.cursor = modInt(p.cursor+1, p.trail.Len())
	p.trail.X[p.cursor] = p.state[0]
	p.trail.Y[p.cursor] = p.state[1]
	p.trail.Z[p.cursor] = p.state[2]
	return true
}

// Draw strokes the trail from oldest to newest, one line per consecutive
// pair of points, and returns the number of strokes issued.
func (p *Particle) Draw(s render.Surface, v View, pal Palette) int {
	n := p.trail.Len()
	xs, ys := p.trail.X, p.trail.Y
	vs := p.trail.axis(p.vertical.index())
	sat := int(math.Floor(pal.Saturation))
	light := int(math.Floor(pal.Light))

	for i := 0; i < n-1; i++ {
		i1 := modInt(p.cursor+1+i, n)
		i2 := modInt(p.cursor+2+i, n)

		alpha := RoundTo(float64(modInt(i1-p.cursor, n))/float64(n), p.decimals)
		angle := DirectionAngle(xs[i2]-xs[i1], ys[i2]-ys[i1])
		c := render.HSLA{
			H: SegmentHue(angle, pal.HueRotation, pal.HueRange, pal.HuePosition),
			S: sat,
			L: light,
			A: alpha,
		}

		s.StrokeLine(
			v.CenterX+xs[i1]*v.ScaleX, v.CenterY-vs[i1]*v.ScaleY,
			v.CenterX+xs[i2]*v.ScaleX, v.CenterY-vs[i2]*v.ScaleY,
			c,
		)
	}
	return n - 1
}
