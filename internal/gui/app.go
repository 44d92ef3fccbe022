// Package gui hosts the attractor in a raylib window.
package gui

import (
	"context"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/lorenzglow/internal/host"
	"github.com/san-kum/lorenzglow/internal/viz"
)

type Options struct {
	Width, Height int
	Title         string
	FPS           int
	Theme         string
	ShowFPS       bool
	Logger        *slog.Logger
}

func DefaultOptions() Options {
	return Options{Width: 1280, Height: 720, Title: "lorenzglow", FPS: 60, ShowFPS: false}
}

// App owns the window. Everything that touches the adapter runs on the
// goroutine that called Run; other goroutines go through Mailbox.
type App struct {
	adapter *host.Adapter
	mailbox *host.Mailbox
	opts    Options
	log     *slog.Logger
	theme   string
}

func New(a *host.Adapter, opts Options) *App {
	def := DefaultOptions()
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = def.Width, def.Height
	}
	if opts.Title == "" {
		opts.Title = def.Title
	}
	if opts.FPS <= 0 {
		opts.FPS = def.FPS
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	theme, _ := viz.GetTheme(opts.Theme)
	return &App{adapter: a, mailbox: host.NewMailbox(), opts: opts, log: log, theme: theme.Name}
}

func (a *App) Mailbox() *host.Mailbox { return a.mailbox }

// Run opens the window and blocks until it is closed, Q is pressed or ctx is
// cancelled. raylib requires it to be called from the main goroutine.
func (a *App) Run(ctx context.Context) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(a.opts.Width), int32(a.opts.Height), a.opts.Title)
	defer rl.CloseWindow()
	if !rl.IsWindowReady() {
		return ErrWindow
	}
	rl.SetTargetFPS(int32(a.opts.FPS))
	rl.SetExitKey(0)

	surf := NewSurface(rl.GetScreenWidth(), rl.GetScreenHeight())
	if a.opts.Theme != "" {
		a.post(a.themeMessage())
	}
	a.mailbox.Post(host.BindSurface{Surface: surf})

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			return nil
		}
		if quit := a.input(); quit {
			return nil
		}
		a.deliver()

		rl.BeginDrawing()
		a.adapter.Pulse(time.Now())
		if a.opts.ShowFPS {
			rl.DrawFPS(10, 10)
		}
		rl.EndDrawing()
	}
	return nil
}

// input reports whether the user asked to quit.
func (a *App) input() bool {
	if rl.IsWindowResized() {
		a.post(host.Resize{Width: rl.GetScreenWidth(), Height: rl.GetScreenHeight()})
	}
	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		return true
	case rl.IsKeyPressed(rl.KeyT):
		names := viz.ThemeNames()
		for i, n := range names {
			if n == a.theme {
				a.theme = names[(i+1)%len(names)]
				break
			}
		}
		a.post(a.themeMessage())
	case rl.IsKeyPressed(rl.KeyF):
		a.opts.ShowFPS = !a.opts.ShowFPS
	}
	return false
}

func (a *App) themeMessage() host.Message {
	t, _ := viz.GetTheme(a.theme)
	return host.SetBackground{Color: t.Background}
}

func (a *App) post(m host.Message) { a.mailbox.Post(m) }

func (a *App) deliver() {
	for _, m := range a.mailbox.Drain() {
		if err := a.adapter.Handle(m); err != nil {
			a.log.Error("message rejected", "err", err)
		}
	}
}
