package render

import "image/color"

type Segment struct {
	X0, Y0, X1, Y1 float64
	Color          HSLA
	Width          float64
}

// Recorder is an in-memory Surface holding the operations of the current
// frame. Fill starts a new frame.
type Recorder struct {
	width, height int
	Background    color.Color
	LineWidth     float64
	Segments      []Segment
	Fills         int
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: width, height: height, LineWidth: 1}
}

func (r *Recorder) Size() (int, int)        { return r.width, r.height }
func (r *Recorder) Resize(width, height int) { r.width, r.height = width, height }
func (r *Recorder) SetLineWidth(w float64)   { r.LineWidth = w }

func (r *Recorder) Fill(c color.Color) {
	r.Background = c
	r.Segments = r.Segments[:0]
	r.Fills++
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1 float64, c HSLA) {
	r.Segments = append(r.Segments, Segment{x0, y0, x1, y1, c, r.LineWidth})
}

// Snapshot returns a copy of the current frame's operations.
func (r *Recorder) Snapshot() *Recorder {
	cp := *r
	cp.Segments = append([]Segment(nil), r.Segments...)
	return &cp
}
