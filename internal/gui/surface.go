package gui

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/lorenzglow/internal/render"
)

// Surface draws straight to the current raylib frame. It must be used
// between rl.BeginDrawing and rl.EndDrawing.
type Surface struct {
	width, height int
	lineWidth     float32
}

func NewSurface(width, height int) *Surface {
	return &Surface{width: width, height: height, lineWidth: 1}
}

func (s *Surface) Size() (int, int)        { return s.width, s.height }
func (s *Surface) Resize(width, height int) { s.width, s.height = width, height }
func (s *Surface) SetLineWidth(w float64)   { s.lineWidth = float32(w) }

func (s *Surface) Fill(c color.Color) {
	rl.ClearBackground(toRaylib(c))
}

func (s *Surface) StrokeLine(x0, y0, x1, y1 float64, c render.HSLA) {
	rl.DrawLineEx(
		rl.NewVector2(float32(x0), float32(y0)),
		rl.NewVector2(float32(x1), float32(y1)),
		s.lineWidth,
		hslaToRaylib(c),
	)
}

// hslaToRaylib keeps alpha separate; raylib blends non-premultiplied colors.
func hslaToRaylib(c render.HSLA) rl.Color {
	o := c.Opaque()
	return rl.NewColor(unit8(o.R), unit8(o.G), unit8(o.B), unit8(c.A))
}

func toRaylib(c color.Color) rl.Color {
	if h, ok := c.(render.HSLA); ok {
		return hslaToRaylib(h)
	}
	o := render.ToColorful(c)
	return rl.NewColor(unit8(o.R), unit8(o.G), unit8(o.B), 255)
}

func unit8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
