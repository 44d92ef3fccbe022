package host

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/san-kum/lorenzglow/internal/config"
	"github.com/san-kum/lorenzglow/internal/render"
	"github.com/san-kum/lorenzglow/internal/sample"
	"github.com/san-kum/lorenzglow/internal/scene"
)

type Options struct {
	Config *config.Config
	Logger *slog.Logger
	// Random defaults to a sampler seeded from Config.Seed.
	Random scene.Random
	// Now defaults to time.Now.
	Now func() time.Time
	// OnFrame is called after every painted frame.
	OnFrame func(scene.FrameStats)
}

// Adapter is driven from a single goroutine; use a Mailbox to reach it from
// others.
type Adapter struct {
	opts    scene.Options
	log     *slog.Logger
	rng     scene.Random
	now     func() time.Time
	onFrame func(scene.FrameStats)

	surface    render.Surface
	scene      *scene.Scene
	tier       scene.Tier
	background color.Color
}

func New(opts Options) (*Adapter, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	so, err := cfg.SceneOptions()
	if err != nil {
		return nil, fmt.Errorf("host: %w", err)
	}
	a := &Adapter{
		opts:       so,
		log:        opts.Logger,
		rng:        opts.Random,
		now:        opts.Now,
		onFrame:    opts.OnFrame,
		background: so.Background,
	}
	if a.log == nil {
		a.log = slog.Default()
	}
	if a.rng == nil {
		a.rng = sample.New(cfg.Seed)
	}
	if a.now == nil {
		a.now = time.Now
	}
	return a, nil
}

// Bound reports whether a surface has been bound.
func (a *Adapter) Bound() bool { return a.scene != nil }

// Scene is nil until a surface is bound.
func (a *Adapter) Scene() *scene.Scene { return a.scene }

// Tier is the sizing tier chosen at bind time.
func (a *Adapter) Tier() scene.Tier { return a.tier }

func (a *Adapter) Background() color.Color { return a.background }

func (a *Adapter) Handle(msg Message) error {
	switch m := msg.(type) {
	case Resize:
		a.resize(m)
	case SetBackground:
		a.setBackground(m)
	case BindSurface:
		return a.bind(m)
	}
	return nil
}

func (a *Adapter) resize(m Resize) {
	if a.scene == nil {
		return
	}
	if r, ok := a.surface.(render.Resizer); ok {
		r.Resize(m.Width, m.Height)
	}
	a.scene.Resize(m.Width, m.Height)
	a.log.Debug("resize", "width", m.Width, "height", m.Height)
}

func (a *Adapter) setBackground(m SetBackground) {
	c, err := render.ParseColor(m.Color)
	if err != nil {
		a.log.Warn("ignoring background", "color", m.Color, "err", err)
		return
	}
	a.background = c
	if a.scene != nil {
		a.scene.SetBackground(c)
	}
	a.log.Debug("background", "color", c.Hex())
}

func (a *Adapter) bind(m BindSurface) error {
	if m.Surface == nil {
		return ErrNoSurface
	}
	w, h := m.Surface.Size()
	tier := a.opts.Sizing.Pick(w, h)

	opts := a.opts
	opts.Background = a.background
	sc := scene.New(opts, a.rng)
	if err := sc.Populate(tier.Particles, tier.Trail); err != nil {
		return fmt.Errorf("host: %w", err)
	}
	sc.Resize(w, h)
	sc.Start(a.now())

	if a.scene != nil {
		a.log.Info("rebinding surface")
	}
	a.surface = m.Surface
	a.scene = sc
	a.tier = tier
	a.log.Info("surface bound",
		"width", w,
		"height", h,
		"large", a.opts.Sizing.IsLarge(w, h),
		"particles", tier.Particles,
		"trail", tier.Trail,
		"line_width", tier.LineWidth,
	)
	return nil
}

// Pulse paints one frame at now. It reports false before a surface is bound.
func (a *Adapter) Pulse(now time.Time) (scene.FrameStats, bool) {
	if a.scene == nil {
		return scene.FrameStats{}, false
	}
	st := a.scene.Frame(a.surface, now)
	if st.Gated {
		a.log.Debug("frame gated", "frame", st.Frame, "dt", st.DT)
	}
	if st.Resets > 0 {
		a.log.Warn("particles diverged and were re-seeded", "frame", st.Frame, "count", st.Resets)
	}
	if a.onFrame != nil {
		a.onFrame(st)
	}
	return st, true
}

// Run handles mail and pulses until ctx is cancelled or pulses is closed.
// Message errors are logged; the loop keeps going.
func (a *Adapter) Run(ctx context.Context, mb *Mailbox, pulses <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-mb.C():
			for _, m := range mb.Drain() {
				if err := a.Handle(m); err != nil {
					a.log.Error("message rejected", "message", fmt.Sprintf("%T", m), "err", err)
				}
			}
		case t, ok := <-pulses:
			if !ok {
				return nil
			}
			a.Pulse(t)
		}
	}
}
