// Package export writes recorded frames to files.
package export

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/lorenzglow/internal/render"
)

// FrameToSVG converts the frame held by rec to an SVG document. Segments of
// the same color and width share one path, in first-drawn order.
func FrameToSVG(rec *render.Recorder) string {
	if rec == nil {
		return ""
	}
	width, height := rec.Size()
	bg := "#000000"
	if rec.Background != nil {
		bg = render.ToColorful(rec.Background).Hex()
	}

	type batch struct {
		color render.HSLA
		width float64
		d     strings.Builder
	}
	var order []*batch
	byKey := make(map[string]*batch)
	for _, s := range rec.Segments {
		key := s.Color.String() + "/" + strconv.FormatFloat(s.Width, 'f', -1, 64)
		b, ok := byKey[key]
		if !ok {
			b = &batch{color: s.Color, width: s.Width}
			byKey[key] = b
			order = append(order, b)
		} else {
			b.d.WriteByte(' ')
		}
		fmt.Fprintf(&b.d, "M%.1f,%.1f L%.1f,%.1f", s.X0, s.Y0, s.X1, s.Y1)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="none" stroke-linecap="round">
`, width, height, width, height, bg))

	for _, b := range order {
		sb.WriteString(fmt.Sprintf(`<path stroke="%s" stroke-opacity="%s" stroke-width="%s" d="%s"/>
`,
			b.color.Opaque().Hex(),
			strconv.FormatFloat(b.color.A, 'f', -1, 64),
			strconv.FormatFloat(b.width, 'f', -1, 64),
			b.d.String()))
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// WriteSVG writes the frame held by rec to path.
func WriteSVG(path string, rec *render.Recorder) error {
	if err := os.WriteFile(path, []byte(FrameToSVG(rec)), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
