package viz

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/lorenzglow/internal/render"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

type cell struct {
	dots   rune
	ink    colorful.Color
	stroke uint64
}

// Canvas is a braille surface: each terminal cell holds 2x4 sub-pixels that
// share one foreground color. Surface coordinates are sub-pixels.
type Canvas struct {
	Width, Height int // in cells
	cells         [][]cell
	background    colorful.Color
	lineWidth     float64
	stroke        uint64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{lineWidth: 1}
	c.resizeCells(w, h)
	return c
}

func (c *Canvas) resizeCells(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.Width, c.Height = w, h
	c.cells = make([][]cell, h)
	for i := range c.cells {
		c.cells[i] = make([]cell, w)
	}
	c.Clear()
}

// Size is in sub-pixels.
func (c *Canvas) Size() (int, int) { return c.Width * 2, c.Height * 4 }

// Resize takes sub-pixel dimensions and rounds up to whole cells.
func (c *Canvas) Resize(w, h int) {
	c.resizeCells((w+1)/2, (h+3)/4)
}

// ResizeCells sets the canvas size in terminal cells.
func (c *Canvas) ResizeCells(cols, rows int) { c.resizeCells(cols, rows) }

func (c *Canvas) Fill(bg color.Color) {
	c.background = render.ToColorful(bg)
	c.Clear()
}

func (c *Canvas) SetLineWidth(w float64) { c.lineWidth = w }

// StrokeLine composites col once over each touched cell. Line widths are
// given in surface pixels; a braille sub-pixel is about two of them across.
// The segment is clipped to the canvas first, and thickness is laid along
// the minor axis so steep and flat lines widen alike.
func (c *Canvas) StrokeLine(x0, y0, x1, y1 float64, col render.HSLA) {
	c.stroke++
	thick := int(math.Round(c.lineWidth / 2))
	if thick < 1 {
		thick = 1
	}
	w, h := c.Size()
	pad := float64(thick)
	x0, y0, x1, y1, ok := clipSegment(x0, y0, x1, y1, -pad, -pad, float64(w-1)+pad, float64(h-1)+pad)
	if !ok {
		return
	}
	ix0, iy0 := int(math.Round(x0)), int(math.Round(y0))
	ix1, iy1 := int(math.Round(x1)), int(math.Round(y1))

	ox, oy := 0, 1
	if absInt(iy1-iy0) > absInt(ix1-ix0) {
		ox, oy = 1, 0
	}
	for k := 0; k < thick; k++ {
		o := k - (thick-1)/2
		c.line(ix0+o*ox, iy0+o*oy, ix1+o*ox, iy1+o*oy, col)
	}
}

const (
	outLeft = 1 << iota
	outRight
	outTop
	outBottom
)

func outcode(x, y, xmin, ymin, xmax, ymax float64) int {
	code := 0
	if x < xmin {
		code |= outLeft
	} else if x > xmax {
		code |= outRight
	}
	if y < ymin {
		code |= outTop
	} else if y > ymax {
		code |= outBottom
	}
	return code
}

// clipSegment is Cohen-Sutherland against [xmin, xmax] x [ymin, ymax]. It
// reports false for segments that miss the box or have a non-finite end.
func clipSegment(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (float64, float64, float64, float64, bool) {
	for _, v := range [...]float64{x0, y0, x1, y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, 0, 0, false
		}
	}
	c0 := outcode(x0, y0, xmin, ymin, xmax, ymax)
	c1 := outcode(x1, y1, xmin, ymin, xmax, ymax)
	for i := 0; i < 8; i++ {
		if c0|c1 == 0 {
			return x0, y0, x1, y1, true
		}
		if c0&c1 != 0 {
			return 0, 0, 0, 0, false
		}
		out := c0
		if out == 0 {
			out = c1
		}
		var x, y float64
		switch {
		case out&outBottom != 0:
			x, y = lerp(x0, x1, ratio(ymax, y0, y1)), ymax
		case out&outTop != 0:
			x, y = lerp(x0, x1, ratio(ymin, y0, y1)), ymin
		case out&outRight != 0:
			x, y = xmax, lerp(y0, y1, ratio(xmax, x0, x1))
		default:
			x, y = xmin, lerp(y0, y1, ratio(xmin, x0, x1))
		}
		if out == c0 {
			x0, y0 = x, y
			c0 = outcode(x0, y0, xmin, ymin, xmax, ymax)
		} else {
			x1, y1 = x, y
			c1 = outcode(x1, y1, xmin, ymin, xmax, ymax)
		}
	}
	return x0, y0, x1, y1, c0|c1 == 0
}

// ratio is where v falls between a and b. Halving keeps the differences of
// huge coordinates finite.
func ratio(v, a, b float64) float64 {
	return (v/2 - a/2) / (b/2 - a/2)
}

func lerp(a, b, t float64) float64 { return a*(1-t) + b*t }

func (c *Canvas) cellAt(x, y int) (*cell, rune, bool) {
	if x < 0 || y < 0 {
		return nil, 0, false
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return nil, 0, false
	}
	return &c.cells[row][col], pixelMap[y%4][x%2], true
}

func (c *Canvas) set(x, y int, col render.HSLA) {
	c.stroke++
	c.plot(x, y, col)
}

func (c *Canvas) plot(x, y int, col render.HSLA) {
	cl, bit, ok := c.cellAt(x, y)
	if !ok {
		return
	}
	if cl.stroke != c.stroke {
		base := c.background
		if cl.dots != 0 {
			base = cl.ink
		}
		cl.ink = col.Over(base)
		cl.stroke = c.stroke
	}
	cl.dots |= bit
}

func (c *Canvas) lit(x, y int) bool {
	cl, bit, ok := c.cellAt(x, y)
	return ok && cl.dots&bit != 0
}

// inkAt is the color of the cell holding sub-pixel (x, y).
func (c *Canvas) inkAt(x, y int) colorful.Color {
	cl, _, ok := c.cellAt(x, y)
	if !ok || cl.dots == 0 {
		return c.background
	}
	return cl.ink
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = cell{}
		}
	}
}

// line uses Bresenham's algorithm.
func (c *Canvas) line(x0, y0, x1, y1 int, col render.HSLA) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.plot(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Plain renders the dots without color.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for _, row := range c.cells {
		for _, cl := range row {
			b.WriteRune(brailleBlank + cl.dots)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// String renders the canvas with truecolor styles, one style run per span of
// equally colored cells.
func (c *Canvas) String() string {
	bg := lipgloss.Color(c.background.Hex())
	var b strings.Builder
	for _, row := range c.cells {
		var run strings.Builder
		runInk := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			st := lipgloss.NewStyle().Background(bg)
			if runInk != "" {
				st = st.Foreground(lipgloss.Color(runInk))
			}
			b.WriteString(st.Render(run.String()))
			run.Reset()
		}
		for _, cl := range row {
			ink := ""
			if cl.dots != 0 {
				ink = cl.ink.Hex()
			}
			if ink != runInk {
				flush()
				runInk = ink
			}
			run.WriteRune(brailleBlank + cl.dots)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
