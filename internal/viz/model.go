package viz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lorenzglow/internal/host"
	"github.com/san-kum/lorenzglow/internal/scene"
)

const historyCapacity = 120

type TickMsg time.Time

type Options struct {
	FPS int
	// Theme, when set, replaces the configured background.
	Theme  string
	Logger *slog.Logger
	// Summary, when set, supplies the frame rate shown in the panel.
	Summary func() (fps float64, gated int)
}

// Model hosts an adapter in the terminal. The canvas is bound to the adapter
// on the first window size message.
type Model struct {
	adapter *host.Adapter
	canvas  *Canvas
	opts    Options
	log     *slog.Logger

	theme     Theme
	ownTheme  bool
	cols      int
	rows      int
	running   bool
	showPanel bool
	last      scene.FrameStats
	history   []float64
	err       error
}

func NewModel(a *host.Adapter, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	theme, ok := GetTheme(opts.Theme)
	if !ok && opts.Theme != "" {
		log.Warn("unknown theme", "theme", opts.Theme, "available", ThemeNames())
	}
	return Model{
		adapter:   a,
		canvas:    NewCanvas(1, 1),
		opts:      opts,
		log:       log,
		theme:     theme,
		ownTheme:  ok,
		running:   true,
		showPanel: true,
		history:   make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and forwards frame pulses to the adapter.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "p":
			m.showPanel = !m.showPanel
			if err := m.layout(); err != nil {
				m.log.Warn("layout", "err", err)
			}
		case "t":
			m.theme = Themes[nextTheme(m.theme.Name)]
			m.ownTheme = true
			m.applyTheme()
		}
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		if err := m.layout(); err != nil {
			m.err = err
			return m, tea.Quit
		}
	case TickMsg:
		if m.running {
			if st, ok := m.adapter.Pulse(time.Time(msg)); ok {
				m.last = st
				m.record(st.Palette.HueRange)
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// layout sizes the canvas to the space left of the panel and binds it on
// first use.
func (m *Model) layout() error {
	if m.cols == 0 {
		return nil
	}
	cols := m.cols - canvasStyle.GetHorizontalFrameSize()
	if m.showPanel {
		cols -= panelWidth + 1
	}
	rows := m.rows - canvasStyle.GetVerticalFrameSize()
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	if !m.adapter.Bound() {
		m.canvas.ResizeCells(cols, rows)
		if m.ownTheme {
			m.applyTheme()
		}
		return m.adapter.Handle(host.BindSurface{Surface: m.canvas})
	}
	return m.adapter.Handle(host.Resize{Width: cols * 2, Height: rows * 4})
}

func (m *Model) applyTheme() {
	if err := m.adapter.Handle(host.SetBackground{Color: m.theme.Background}); err != nil {
		m.log.Warn("theme", "err", err)
	}
}

func (m *Model) record(v float64) {
	if len(m.history) == historyCapacity {
		copy(m.history, m.history[1:])
		m.history = m.history[:historyCapacity-1]
	}
	m.history = append(m.history, v)
}

// Err is the error that ended the program, if any.
func (m Model) Err() error { return m.err }

func (m Model) View() string {
	if !m.adapter.Bound() {
		return "waiting for terminal size...\n"
	}
	canvasView := canvasStyle.Render(m.canvas.String())
	if !m.showPanel {
		return canvasView
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(m.panel()))
}

func (m Model) panel() string {
	st := m.last
	var s strings.Builder
	s.WriteString(headerStyle(m.theme).Render("LORENZ") + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(5), asciigraph.Width(panelWidth-12), asciigraph.Caption("hue range"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	pal := st.Palette
	s.WriteString(hueBar(pal.HuePosition, pal.HueRange, pal.Saturation, pal.Light, panelWidth-6) + "\n\n")

	label, value := labelStyle(m.theme), valueStyle(m.theme)
	row := func(l, v string) {
		s.WriteString(label.Render(l) + value.Render(v) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", st.Frame))
	row("dt", fmt.Sprintf("%.1fms", st.DT*1000))
	if m.opts.Summary != nil {
		fps, gated := m.opts.Summary()
		row("FPS", fmt.Sprintf("%.1f", fps))
		row("Gated", fmt.Sprintf("%d", gated))
	}
	row("Particles", fmt.Sprintf("%d", st.Particles))
	row("Segments", fmt.Sprintf("%d", st.Segments))
	row("Hue", fmt.Sprintf("%.0f ± %.0f", pal.HuePosition, pal.HueRange/2))
	row("Rotation", fmt.Sprintf("%.0f", pal.HueRotation))
	row("Sat/Light", fmt.Sprintf("%.0f%% / %.0f%%", pal.Saturation, pal.Light))
	row("Theme", m.theme.Name)

	s.WriteString("\n" + separator(m.theme, panelWidth-6) + "\n")
	s.WriteString(helpStyle(m.theme).Render("SP:Pause T:Theme P:Panel Q:Quit"))
	return s.String()
}

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
