package scene

import (
	"math"

	"github.com/san-kum/lorenzglow/internal/particle"
)

// Bounds is the logical box, in attractor units, that is fitted to the
// surface. Y0/Y1 bound the vertical projection axis.
type Bounds struct {
	X0, X1 float64
	Y0, Y1 float64
}

func DefaultBounds() Bounds { return Bounds{X0: -25, X1: 25, Y0: -10, Y1: 60} }

// Valid reports whether both spans are finite and positive.
func (b Bounds) Valid() bool {
	dx, dy := b.X1-b.X0, b.Y1-b.Y0
	return dx > 0 && dy > 0 && !math.IsInf(dx, 0) && !math.IsInf(dy, 0)
}

// ComputeView derives scale and center offsets for a surface of the given
// pixel size. Sizes below one pixel are treated as one, and invalid bounds
// as DefaultBounds.
func ComputeView(width, height int, b Bounds) particle.View {
	if !b.Valid() {
		b = DefaultBounds()
	}
	w, h := float64(max(width, 1)), float64(max(height, 1))

	scaleY := h / (b.Y1 - b.Y0)
	scaleX := (b.Y1 - b.Y0) / (b.X1 - b.X0) * scaleY
	return particle.View{
		CenterX: w/2 + (b.X1+b.X0)/2*scaleX,
		CenterY: h/2 + (b.Y1+b.Y0)/2*scaleY,
		ScaleX:  scaleX,
		ScaleY:  scaleY,
	}
}

// Tier is a particle budget chosen from the surface size.
type Tier struct {
	Particles int
	Trail     int
	LineWidth float64
}

// Sizing picks Large when the surface is strictly wider than MinWidth and
// strictly taller than MinHeight, Small otherwise.
type Sizing struct {
	MinWidth, MinHeight int
	Large, Small        Tier
}

func DefaultSizing() Sizing {
	return Sizing{
		MinWidth:  1024,
		MinHeight: 800,
		Large:     Tier{Particles: 40, Trail: 60, LineWidth: 4},
		Small:     Tier{Particles: 20, Trail: 40, LineWidth: 2},
	}
}

func (s Sizing) IsLarge(width, height int) bool {
	return width > s.MinWidth && height > s.MinHeight
}

func (s Sizing) Pick(width, height int) Tier {
	if s.IsLarge(width, height) {
		return s.Large
	}
	return s.Small
}
