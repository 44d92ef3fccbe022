// Package telemetry keeps a rolling window of frame statistics, logs a
// summary of it periodically and optionally appends every frame to a CSV file.
package telemetry

import (
	"log/slog"
	"sort"

	"github.com/san-kum/lorenzglow/internal/scene"
	"gonum.org/v1/gonum/stat"
)

// FrameRecord is one CSV row.
type FrameRecord struct {
	Frame       int     `csv:"frame"`
	DT          float64 `csv:"dt"`
	Gated       bool    `csv:"gated"`
	Segments    int     `csv:"segments"`
	Commits     int     `csv:"commits"`
	Resets      int     `csv:"resets"`
	Particles   int     `csv:"particles"`
	Width       int     `csv:"width"`
	Height      int     `csv:"height"`
	HueRange    float64 `csv:"hue_range"`
	HuePosition float64 `csv:"hue_position"`
	HueRotation float64 `csv:"hue_rotation"`
	Saturation  float64 `csv:"saturation"`
	Light       float64 `csv:"light"`
}

func RecordOf(st scene.FrameStats) FrameRecord {
	return FrameRecord{
		Frame:       st.Frame,
		DT:          st.DT,
		Gated:       st.Gated,
		Segments:    st.Segments,
		Commits:     st.Commits,
		Resets:      st.Resets,
		Particles:   st.Particles,
		Width:       st.Width,
		Height:      st.Height,
		HueRange:    st.Palette.HueRange,
		HuePosition: st.Palette.HuePosition,
		HueRotation: st.Palette.HueRotation,
		Saturation:  st.Palette.Saturation,
		Light:       st.Palette.Light,
	}
}

// Summary describes the frames currently in the window.
type Summary struct {
	Frames       int
	Gated        int
	DTMean       float64
	DTStd        float64
	DTP50        float64
	DTP95        float64
	FPS          float64
	SegmentsMean float64
	CommitRate   float64
	HueRangeMean float64
}

func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("frames", s.Frames),
		slog.Int("gated", s.Gated),
		slog.Float64("dt_mean", s.DTMean),
		slog.Float64("dt_std", s.DTStd),
		slog.Float64("dt_p50", s.DTP50),
		slog.Float64("dt_p95", s.DTP95),
		slog.Float64("fps", s.FPS),
		slog.Float64("segments_mean", s.SegmentsMean),
		slog.Float64("commit_rate", s.CommitRate),
		slog.Float64("hue_range_mean", s.HueRangeMean),
	)
}

type Options struct {
	// Window is the number of most recent frames kept for the summary.
	Window int
	// Every logs a summary after this many observed frames; 0 disables it.
	Every  int
	Logger *slog.Logger
	// CSV receives every observed frame when non-nil.
	CSV *CSVWriter
}

const DefaultWindow = 600

// Collector is driven from the goroutine that renders frames.
type Collector struct {
	opts   Options
	ring   []FrameRecord
	next   int
	filled bool
	total  int
	err    error
}

func NewCollector(opts Options) *Collector {
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Collector{opts: opts, ring: make([]FrameRecord, opts.Window)}
}

// Observe records one frame. A CSV write failure is logged once and then
// disables the CSV output.
func (c *Collector) Observe(st scene.FrameStats) {
	rec := RecordOf(st)
	c.ring[c.next] = rec
	c.next = (c.next + 1) % len(c.ring)
	if c.next == 0 {
		c.filled = true
	}
	c.total++

	if c.opts.CSV != nil && c.err == nil {
		if err := c.opts.CSV.Write(rec); err != nil {
			c.err = err
			c.opts.Logger.Error("telemetry csv disabled", "err", err)
		}
	}

	if c.opts.Every > 0 && c.total%c.opts.Every == 0 {
		c.opts.Logger.Info("telemetry", "window", c.Summary())
	}
}

// Total is the number of frames observed since creation.
func (c *Collector) Total() int { return c.total }

// Err returns the CSV error that disabled the output, if any.
func (c *Collector) Err() error { return c.err }

// Records returns the window, oldest first.
func (c *Collector) Records() []FrameRecord {
	if !c.filled {
		return append([]FrameRecord(nil), c.ring[:c.next]...)
	}
	out := make([]FrameRecord, 0, len(c.ring))
	out = append(out, c.ring[c.next:]...)
	return append(out, c.ring[:c.next]...)
}

// HueRanges returns the hue range of every frame in the window, oldest first.
func (c *Collector) HueRanges() []float64 {
	recs := c.Records()
	out := make([]float64, len(recs))
	for i, r := range recs {
		out[i] = r.HueRange
	}
	return out
}

// Summary computes statistics over the window. Frame interval statistics
// skip the first frame, whose interval is always zero.
func (c *Collector) Summary() Summary {
	recs := c.Records()
	s := Summary{Frames: len(recs)}
	if len(recs) == 0 {
		return s
	}

	dts := make([]float64, 0, len(recs))
	segs := make([]float64, len(recs))
	hues := make([]float64, len(recs))
	commits, particles := 0, 0
	for i, r := range recs {
		if r.Gated {
			s.Gated++
		}
		if r.Frame > 0 {
			dts = append(dts, r.DT)
		}
		segs[i] = float64(r.Segments)
		hues[i] = r.HueRange
		if !r.Gated {
			commits += r.Commits
			particles += r.Particles
		}
	}

	s.SegmentsMean = stat.Mean(segs, nil)
	s.HueRangeMean = stat.Mean(hues, nil)
	if particles > 0 {
		s.CommitRate = float64(commits) / float64(particles)
	}

	if len(dts) > 0 {
		s.DTMean, s.DTStd = stat.MeanStdDev(dts, nil)
		if len(dts) == 1 {
			s.DTStd = 0
		}
		sort.Float64s(dts)
		s.DTP50 = stat.Quantile(0.5, stat.Empirical, dts, nil)
		s.DTP95 = stat.Quantile(0.95, stat.Empirical, dts, nil)
		if s.DTMean > 0 {
			s.FPS = 1 / s.DTMean
		}
	}
	return s
}
