package telemetry

import (
	"bytes"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/lorenzglow/internal/particle"
	"github.com/san-kum/lorenzglow/internal/scene"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func frame(i int, dt float64, gated bool) scene.FrameStats {
	st := scene.FrameStats{
		Frame:     i,
		DT:        dt,
		Gated:     gated,
		Particles: 20,
		Palette:   particle.Palette{HueRange: float64(100 + i)},
	}
	if !gated {
		st.Segments = 780
		st.Commits = 10
	}
	return st
}

func TestCollectorWindowWraps(t *testing.T) {
	c := NewCollector(Options{Window: 3, Logger: quietLogger()})
	for i := 0; i < 5; i++ {
		c.Observe(frame(i, 0.016, false))
	}

	recs := c.Records()
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	for i, want := range []int{2, 3, 4} {
		if recs[i].Frame != want {
			t.Errorf("record %d: expected frame %d, got %d", i, want, recs[i].Frame)
		}
	}
	if c.Total() != 5 {
		t.Errorf("expected total 5, got %d", c.Total())
	}
	hr := c.HueRanges()
	if hr[0] != 102 || hr[2] != 104 {
		t.Errorf("unexpected hue ranges %v", hr)
	}
}

func TestSummary(t *testing.T) {
	c := NewCollector(Options{Window: 10, Logger: quietLogger()})
	c.Observe(frame(0, 0, false))
	c.Observe(frame(1, 0.02, false))
	c.Observe(frame(2, 0.02, false))
	c.Observe(frame(3, 0.2, true))

	s := c.Summary()
	if s.Frames != 4 {
		t.Errorf("expected 4 frames, got %d", s.Frames)
	}
	if s.Gated != 1 {
		t.Errorf("expected 1 gated frame, got %d", s.Gated)
	}
	wantMean := (0.02 + 0.02 + 0.2) / 3
	if math.Abs(s.DTMean-wantMean) > 1e-12 {
		t.Errorf("expected dt mean %v, got %v", wantMean, s.DTMean)
	}
	if s.DTP50 != 0.02 {
		t.Errorf("expected median dt 0.02, got %v", s.DTP50)
	}
	if s.DTP95 != 0.2 {
		t.Errorf("expected p95 dt 0.2, got %v", s.DTP95)
	}
	if math.Abs(s.FPS-1/wantMean) > 1e-9 {
		t.Errorf("expected fps %v, got %v", 1/wantMean, s.FPS)
	}
	// three drawn frames of 20 particles, 10 commits each
	if math.Abs(s.CommitRate-0.5) > 1e-12 {
		t.Errorf("expected commit rate 0.5, got %v", s.CommitRate)
	}
}

func TestSummaryEmpty(t *testing.T) {
	s := NewCollector(Options{Logger: quietLogger()}).Summary()
	if s.Frames != 0 || s.FPS != 0 {
		t.Errorf("expected zero summary, got %+v", s)
	}
}

func TestPeriodicLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	c := NewCollector(Options{Window: 8, Every: 2, Logger: logger})
	for i := 0; i < 5; i++ {
		c.Observe(frame(i, 0.016, false))
	}
	if n := strings.Count(buf.String(), "msg=telemetry"); n != 2 {
		t.Errorf("expected 2 summary lines, got %d:\n%s", n, buf.String())
	}
	if !strings.Contains(buf.String(), "window.fps=") {
		t.Errorf("expected grouped summary attributes, got %s", buf.String())
	}
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	c := NewCollector(Options{Window: 4, Logger: quietLogger(), CSV: NewCSVWriter(&buf)})
	c.Observe(frame(0, 0, false))
	c.Observe(frame(1, 0.3, true))
	c.Observe(frame(2, 0.016, false))

	if n := strings.Count(buf.String(), "frame,dt"); n != 1 {
		t.Fatalf("expected a single header, got %d", n)
	}
	recs, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(recs))
	}
	if !recs[1].Gated || recs[1].Segments != 0 {
		t.Errorf("expected gated row without segments, got %+v", recs[1])
	}
	if recs[2].HueRange != 102 {
		t.Errorf("expected hue range 102, got %v", recs[2].HueRange)
	}
}

type failingWriter struct{ calls int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.calls++
	return 0, io.ErrClosedPipe
}

func TestCSVFailureDisablesOutput(t *testing.T) {
	fw := &failingWriter{}
	c := NewCollector(Options{Logger: quietLogger(), CSV: NewCSVWriter(fw)})
	c.Observe(frame(0, 0, false))
	calls := fw.calls
	c.Observe(frame(1, 0.016, false))

	if c.Err() == nil {
		t.Fatal("expected csv error to be kept")
	}
	if fw.calls != calls {
		t.Errorf("expected no writes after failure, got %d more", fw.calls-calls)
	}
}
