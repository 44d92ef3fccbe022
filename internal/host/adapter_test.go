package host_test

import (
	"bytes"
	"context"
	"image/color"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lorenzglow/internal/config"
	"github.com/san-kum/lorenzglow/internal/host"
	"github.com/san-kum/lorenzglow/internal/render"
	"github.com/san-kum/lorenzglow/internal/sample"
	"github.com/san-kum/lorenzglow/internal/scene"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.t = c.t.Add(d)
	return c.t
}

// fixedSurface cannot be resized by the host.
type fixedSurface struct{ w, h int }

func (s *fixedSurface) Size() (int, int)                             { return s.w, s.h }
func (s *fixedSurface) Fill(color.Color)                             {}
func (s *fixedSurface) SetLineWidth(float64)                         {}
func (s *fixedSurface) StrokeLine(_, _, _, _ float64, _ render.HSLA) {}

var _ = Describe("Adapter", func() {
	var (
		adapter *host.Adapter
		clock   *fakeClock
		logs    *bytes.Buffer
		frames  []scene.FrameStats
	)

	BeforeEach(func() {
		clock = &fakeClock{t: time.Unix(1_700_000_000, 0)}
		logs = &bytes.Buffer{}
		frames = nil
		var err error
		adapter, err = host.New(host.Options{
			Config:  config.DefaultConfig(),
			Logger:  slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
			Random:  sample.New(42),
			Now:     clock.Now,
			OnFrame: func(st scene.FrameStats) { frames = append(frames, st) },
		})
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("rejects an invalid configuration", func() {
			cfg := config.DefaultConfig()
			cfg.DTCeiling = -1
			_, err := host.New(host.Options{Config: cfg})
			Expect(err).To(HaveOccurred())
		})

		It("rejects a speed scale too fast to integrate", func() {
			cfg := config.DefaultConfig()
			cfg.SpeedScale = 2
			_, err := host.New(host.Options{Config: cfg})
			Expect(err).To(MatchError(ContainSubstring("speed_scale * dt_ceiling")))
		})
	})

	Describe("BindSurface", func() {
		It("fails without a surface", func() {
			err := adapter.Handle(host.BindSurface{})
			Expect(err).To(MatchError(host.ErrNoSurface))
			Expect(adapter.Bound()).To(BeFalse())
		})

		It("picks the large tier for a 2000x1000 surface", func() {
			Expect(adapter.Handle(host.BindSurface{Surface: render.NewRecorder(2000, 1000)})).To(Succeed())
			Expect(adapter.Tier()).To(Equal(scene.Tier{Particles: 40, Trail: 60, LineWidth: 4}))
			Expect(adapter.Scene().Particles()).To(HaveLen(40))
			Expect(adapter.Scene().Particles()[0].Trail().Len()).To(Equal(60))
		})

		It("picks the small tier for an 800x600 surface", func() {
			Expect(adapter.Handle(host.BindSurface{Surface: render.NewRecorder(800, 600)})).To(Succeed())
			Expect(adapter.Tier()).To(Equal(scene.Tier{Particles: 20, Trail: 40, LineWidth: 2}))
			Expect(adapter.Scene().Particles()).To(HaveLen(20))
		})

		It("needs both dimensions above the threshold for the large tier", func() {
			Expect(adapter.Handle(host.BindSurface{Surface: render.NewRecorder(2000, 800)})).To(Succeed())
			Expect(adapter.Tier().Particles).To(Equal(20))
		})

		It("logs the chosen tier", func() {
			Expect(adapter.Handle(host.BindSurface{Surface: render.NewRecorder(800, 600)})).To(Succeed())
			Expect(logs.String()).To(ContainSubstring("surface bound"))
			Expect(logs.String()).To(ContainSubstring("particles=20"))
		})
	})

	Describe("before a surface is bound", func() {
		It("ignores resizes and pulses", func() {
			Expect(adapter.Handle(host.Resize{Width: 10, Height: 10})).To(Succeed())
			_, painted := adapter.Pulse(clock.Advance(time.Second))
			Expect(painted).To(BeFalse())
			Expect(frames).To(BeEmpty())
		})

		It("remembers the background for the scene", func() {
			Expect(adapter.Handle(host.SetBackground{Color: "#102030"})).To(Succeed())
			rec := render.NewRecorder(800, 600)
			Expect(adapter.Handle(host.BindSurface{Surface: rec})).To(Succeed())

			adapter.Pulse(clock.Advance(16 * time.Millisecond))
			Expect(render.ToColorful(rec.Background).Hex()).To(Equal("#102030"))
		})
	})

	Describe("after binding", func() {
		var rec *render.Recorder

		BeforeEach(func() {
			rec = render.NewRecorder(800, 600)
			Expect(adapter.Handle(host.BindSurface{Surface: rec})).To(Succeed())
		})

		It("draws one stroke per trail segment", func() {
			st, painted := adapter.Pulse(clock.Advance(16 * time.Millisecond))
			Expect(painted).To(BeTrue())
			Expect(st.Gated).To(BeFalse())
			Expect(st.Segments).To(Equal(20 * 39))
			Expect(rec.Segments).To(HaveLen(20 * 39))
			Expect(rec.LineWidth).To(Equal(2.0))
		})

		It("only paints the background on a long frame", func() {
			before := adapter.Scene().Particles()[0].State()
			st, painted := adapter.Pulse(clock.Advance(time.Second))
			Expect(painted).To(BeTrue())
			Expect(st.Gated).To(BeTrue())
			Expect(rec.Fills).To(Equal(1))
			Expect(rec.Segments).To(BeEmpty())
			Expect(adapter.Scene().Particles()[0].State()).To(Equal(before))

			st, _ = adapter.Pulse(clock.Advance(16 * time.Millisecond))
			Expect(st.Gated).To(BeFalse())
			Expect(rec.Segments).NotTo(BeEmpty())
			Expect(frames).To(HaveLen(2))
		})

		It("resizes the surface and the scene", func() {
			Expect(adapter.Handle(host.Resize{Width: 1280, Height: 720})).To(Succeed())
			w, h := rec.Size()
			Expect([]int{w, h}).To(Equal([]int{1280, 720}))
			w, h = adapter.Scene().Size()
			Expect([]int{w, h}).To(Equal([]int{1280, 720}))
		})

		It("keeps the particle count chosen at bind time", func() {
			Expect(adapter.Handle(host.Resize{Width: 2000, Height: 1000})).To(Succeed())
			Expect(adapter.Scene().Particles()).To(HaveLen(20))
		})

		It("keeps the previous background on an invalid color", func() {
			Expect(adapter.Handle(host.SetBackground{Color: "#0000ff"})).To(Succeed())
			Expect(adapter.Handle(host.SetBackground{Color: "blue-ish"})).To(Succeed())
			adapter.Pulse(clock.Advance(16 * time.Millisecond))
			Expect(render.ToColorful(rec.Background).Hex()).To(Equal("#0000ff"))
			Expect(logs.String()).To(ContainSubstring("ignoring background"))
		})
	})

	It("scene dimensions follow the bound surface without a resizer", func() {
		surf := &fixedSurface{w: 640, h: 480}
		Expect(adapter.Handle(host.BindSurface{Surface: surf})).To(Succeed())
		Expect(adapter.Handle(host.Resize{Width: 320, Height: 240})).To(Succeed())
		w, h := surf.Size()
		Expect(w).To(Equal(640))
		Expect(h).To(Equal(480))
		w, _ = adapter.Scene().Size()
		Expect(w).To(Equal(320))
	})

	Describe("Run", func() {
		It("stops when the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			mb := host.NewMailbox()
			pulses := make(chan time.Time)
			done := make(chan error, 1)
			go func() { done <- adapter.Run(ctx, mb, pulses) }()

			cancel()
			Eventually(done).Should(Receive(MatchError(context.Canceled)))
		})

		It("returns when the pulse source closes", func() {
			pulses := make(chan time.Time)
			close(pulses)
			Expect(adapter.Run(context.Background(), host.NewMailbox(), pulses)).To(Succeed())
		})

		It("handles mail and pulses on one goroutine", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			mb := host.NewMailbox()
			pulses := make(chan time.Time)
			done := make(chan error, 1)

			base := clock.Now()
			mb.Post(host.BindSurface{Surface: render.NewRecorder(800, 600)})
			go func() { done <- adapter.Run(ctx, mb, pulses) }()

			Eventually(mb.Len).Should(BeZero())
			pulses <- base.Add(time.Second)
			pulses <- base.Add(time.Second + 16*time.Millisecond)
			cancel()
			Eventually(done).Should(Receive())
			Expect(frames).To(HaveLen(2))
			Expect(frames[0].Gated).To(BeTrue())
			Expect(frames[1].Gated).To(BeFalse())
		})
	})
})

var _ = Describe("Mailbox", func() {
	It("keeps only the latest queued resize", func() {
		mb := host.NewMailbox()
		mb.Post(host.Resize{Width: 1, Height: 1})
		mb.Post(host.SetBackground{Color: "#fff"})
		mb.Post(host.Resize{Width: 2, Height: 2})
		mb.Post(host.Resize{Width: 3, Height: 3})

		Expect(mb.Drain()).To(Equal([]host.Message{
			host.SetBackground{Color: "#fff"},
			host.Resize{Width: 3, Height: 3},
		}))
		Expect(mb.Drain()).To(BeEmpty())
	})

	It("never blocks a poster", func() {
		mb := host.NewMailbox()
		for i := 0; i < 100; i++ {
			mb.Post(host.SetBackground{Color: "#000"})
		}
		Expect(mb.Len()).To(Equal(100))
		Eventually(mb.C()).Should(Receive())
	})
})
