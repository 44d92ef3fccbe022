// Package render defines the drawing surface the scene paints on and the
// colors it paints with.
package render

import "image/color"

// Surface is a 2D drawing target in pixel coordinates, origin top-left.
type Surface interface {
	Size() (width, height int)
	Fill(c color.Color)
	SetLineWidth(w float64)
	StrokeLine(x0, y0, x1, y1 float64, c HSLA)
}

// Resizer is implemented by surfaces whose backing store can be resized by
// the host.
type Resizer interface {
	Resize(width, height int)
}
