package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/lorenzglow/internal/render"
)

func TestFrameToSVGBatchesByColor(t *testing.T) {
	rec := render.NewRecorder(200, 100)
	bg, _ := colorful.Hex("#101010")
	rec.Fill(bg)
	rec.SetLineWidth(2)

	red := render.HSLA{H: 0, S: 100, L: 50, A: 0.5}
	blue := render.HSLA{H: 240, S: 100, L: 50, A: 1}
	rec.StrokeLine(0, 0, 10, 10, red)
	rec.StrokeLine(10, 10, 20, 20, blue)
	rec.StrokeLine(20, 20, 30, 30, red)

	svg := FrameToSVG(rec)

	if n := strings.Count(svg, "<path"); n != 2 {
		t.Fatalf("expected 2 paths, got %d", n)
	}
	if !strings.Contains(svg, `fill="#101010"`) {
		t.Error("expected background rect")
	}
	if !strings.Contains(svg, `stroke="#ff0000" stroke-opacity="0.5" stroke-width="2" d="M0.0,0.0 L10.0,10.0 M20.0,20.0 L30.0,30.0"`) {
		t.Errorf("expected both red segments in one path, got:\n%s", svg)
	}
	if strings.Index(svg, "#ff0000") > strings.Index(svg, "#0000ff") {
		t.Error("expected paths in first-drawn order")
	}
	if !strings.Contains(svg, `width="200" height="100"`) {
		t.Error("expected surface dimensions")
	}
}

func TestFrameToSVGEmpty(t *testing.T) {
	if FrameToSVG(nil) != "" {
		t.Error("expected empty output for nil recorder")
	}
	svg := FrameToSVG(render.NewRecorder(10, 10))
	if strings.Contains(svg, "<path") {
		t.Error("expected no paths for an empty frame")
	}
	if !strings.Contains(svg, `fill="#000000"`) {
		t.Error("expected black background by default")
	}
}

func TestWriteSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.svg")
	rec := render.NewRecorder(10, 10)
	rec.StrokeLine(0, 0, 1, 1, render.HSLA{H: 120, S: 50, L: 50, A: 1})
	if err := WriteSVG(path, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "<?xml") {
		t.Errorf("expected xml header, got %q", string(data[:20]))
	}
}
