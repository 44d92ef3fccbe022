package render

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrBadColor = errors.New("render: unparseable color")

// HSLA is a CSS-style color: H in degrees, S and L in percent, A in [0, 1].
type HSLA struct {
	H, S, L int
	A       float64
}

func (c HSLA) String() string {
	return fmt.Sprintf("hsla(%d, %d%%, %d%%, %s)", c.H, c.S, c.L, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// Opaque is the color with alpha ignored.
func (c HSLA) Opaque() colorful.Color {
	return colorful.Hsl(float64(c.H), float64(c.S)/100, float64(c.L)/100).Clamped()
}

// RGBA implements color.Color with alpha-premultiplied components.
func (c HSLA) RGBA() (r, g, b, a uint32) {
	o := c.Opaque()
	alpha := c.A
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	a = uint32(alpha*0xffff + 0.5)
	r = uint32(o.R*alpha*0xffff + 0.5)
	g = uint32(o.G*alpha*0xffff + 0.5)
	b = uint32(o.B*alpha*0xffff + 0.5)
	return
}

// Over composites c on top of an opaque backdrop.
func (c HSLA) Over(backdrop colorful.Color) colorful.Color {
	return backdrop.BlendRgb(c.Opaque(), c.A).Clamped()
}

// ParseColor accepts "#rgb" and "#rrggbb".
func ParseColor(s string) (colorful.Color, error) {
	if len(s) == 4 && s[0] == '#' {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w %q: %v", ErrBadColor, s, err)
	}
	return c, nil
}

// ToColorful converts any color.Color to an opaque colorful.Color.
func ToColorful(c color.Color) colorful.Color {
	if cc, ok := c.(colorful.Color); ok {
		return cc
	}
	cc, _ := colorful.MakeColor(c)
	return cc
}
