package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/san-kum/lorenzglow/internal/config"
	"github.com/san-kum/lorenzglow/internal/export"
	"github.com/san-kum/lorenzglow/internal/gui"
	"github.com/san-kum/lorenzglow/internal/host"
	"github.com/san-kum/lorenzglow/internal/render"
	"github.com/san-kum/lorenzglow/internal/telemetry"
	"github.com/san-kum/lorenzglow/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	seed       int64
	background string
	theme      string
	frameRate  int
	integrator string
	csvPath    string
	logLevel   string
	logFormat  string
	logFile    string
	// snapshot
	frames int
	width  int
	height int
	output string
	// gui
	showFPS bool
)

// main registers the commands and runs the terminal view when no subcommand
// is given. It exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "lorenzglow",
		Short:         "glowing particle trails on the Lorenz attractor",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
	pf.StringVar(&background, "background", "", "background color (#rgb or #rrggbb)")
	pf.StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator (euler, rk4)")
	pf.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	pf.StringVar(&csvPath, "telemetry", "", "write per-frame telemetry to this csv file")
	pf.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	pf.StringVar(&logFormat, "log-format", "text", "text or json")
	pf.StringVar(&logFile, "log-file", "", "log destination (default stderr; discarded in the terminal view)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	for _, c := range []*cobra.Command{rootCmd, tuiCmd} {
		c.Flags().StringVar(&theme, "theme", "midnight", "theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	guiCmd.Flags().StringVar(&theme, "theme", "midnight", "theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	guiCmd.Flags().IntVar(&width, "width", 1280, "window width")
	guiCmd.Flags().IntVar(&height, "height", 720, "window height")
	guiCmd.Flags().BoolVar(&showFPS, "show-fps", false, "draw the frame rate")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render frames headless and write the last one as svg",
		Args:  cobra.NoArgs,
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&frames, "frames", 600, "frames to simulate")
	snapshotCmd.Flags().IntVar(&width, "width", 1920, "surface width")
	snapshotCmd.Flags().IntVar(&height, "height", 1080, "surface height")
	snapshotCmd.Flags().StringVarP(&output, "out", "o", "lorenz.svg", "output file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the resolved configuration as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return cfg.WriteYAML(cmd.OutOrStdout())
		},
	}

	rootCmd.AddCommand(tuiCmd, guiCmd, snapshotCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// resolveConfig layers defaults, the preset, the config file and then any
// flag set on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		if err := config.Overlay(configFile, cfg); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("background") {
		cfg.Background = background
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("telemetry") {
		cfg.Telemetry.CSV = csvPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setupLogger(quiet bool) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	case quiet:
		w = io.Discard
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch logFormat {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	case "text":
		h = slog.NewTextHandler(w, opts)
	default:
		closer()
		return nil, nil, fmt.Errorf("unknown log format: %s", logFormat)
	}
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger, closer, nil
}

// session is what every host needs: a validated config, a logger, the
// telemetry collector and the adapter reporting into it.
type session struct {
	cfg       *config.Config
	log       *slog.Logger
	collector *telemetry.Collector
	csv       *telemetry.CSVWriter
	adapter   *host.Adapter
	closeLog  func()
}

func newSession(cmd *cobra.Command, quiet bool, now func() time.Time) (*session, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := setupLogger(quiet)
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, log: logger, closeLog: closeLog}

	if cfg.Telemetry.CSV != "" {
		s.csv, err = telemetry.CreateCSV(cfg.Telemetry.CSV)
		if err != nil {
			closeLog()
			return nil, err
		}
	}
	s.collector = telemetry.NewCollector(telemetry.Options{
		Window: cfg.FPS * 10,
		Every:  cfg.Telemetry.Every,
		Logger: logger,
		CSV:    s.csv,
	})

	s.adapter, err = host.New(host.Options{
		Config:  cfg,
		Logger:  logger,
		Now:     now,
		OnFrame: s.collector.Observe,
	})
	if err != nil {
		s.close()
		return nil, err
	}

	logger.Info("starting",
		"command", cmd.Name(),
		"integrator", cfg.Integrator,
		"seed", cfg.Seed,
		"fps", cfg.FPS,
		"dt_ceiling", cfg.DTCeiling,
		"projection", cfg.Trail.Projection,
	)
	return s, nil
}

func (s *session) close() {
	if s.collector != nil && s.collector.Total() > 0 {
		s.log.Info("finished", "frames", s.collector.Total(), "window", s.collector.Summary())
	}
	if err := s.csv.Close(); err != nil {
		s.log.Error("closing telemetry", "err", err)
	}
	s.closeLog()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, true, nil)
	if err != nil {
		return err
	}
	defer s.close()

	ctx, stop := signalContext()
	defer stop()

	m := viz.NewModel(s.adapter, viz.Options{
		FPS:    s.cfg.FPS,
		Theme:  themeFlag(cmd),
		Logger: s.log,
		Summary: func() (float64, int) {
			sum := s.collector.Summary()
			return sum.FPS, sum.Gated
		},
	})
	return viz.Run(ctx, m)
}

func runGUI(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, false, nil)
	if err != nil {
		return err
	}
	defer s.close()

	ctx, stop := signalContext()
	defer stop()

	app := gui.New(s.adapter, gui.Options{
		Width:   width,
		Height:  height,
		FPS:     s.cfg.FPS,
		Theme:   themeFlag(cmd),
		ShowFPS: showFPS,
		Logger:  s.log,
	})
	return app.Run(ctx)
}

// themeFlag is empty when the user did not pick a theme, so that a
// configured background is not replaced by the default theme's.
func themeFlag(cmd *cobra.Command) string {
	if cmd.Flags().Changed("theme") {
		return theme
	}
	return ""
}

// runSnapshot drives the adapter from a synthetic clock at the configured
// frame rate, so the result depends only on the seed and the config.
func runSnapshot(cmd *cobra.Command, args []string) error {
	start := time.Unix(0, 0)
	clock := start
	s, err := newSession(cmd, false, func() time.Time { return clock })
	if err != nil {
		return err
	}
	defer s.close()

	ctx, stop := signalContext()
	defer stop()

	rec := render.NewRecorder(width, height)
	if err := s.adapter.Handle(host.BindSurface{Surface: rec}); err != nil {
		return err
	}

	frameDur := time.Second / time.Duration(s.cfg.FPS)
	if frameDur.Seconds() > s.cfg.DTCeiling {
		s.log.Warn("every frame will be gated", "frame_interval", frameDur, "dt_ceiling", s.cfg.DTCeiling)
	}
	pulses := make(chan time.Time)
	go func() {
		defer close(pulses)
		for i := 1; i <= frames; i++ {
			select {
			case pulses <- start.Add(time.Duration(i) * frameDur):
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := s.adapter.Run(ctx, host.NewMailbox(), pulses); err != nil {
		return err
	}

	if err := export.WriteSVG(output, rec); err != nil {
		return err
	}
	s.log.Info("snapshot written",
		"path", output,
		"segments", len(rec.Segments),
		"tier", tierName(s.cfg, width, height),
	)
	return nil
}

func tierName(cfg *config.Config, w, h int) string {
	so, err := cfg.SceneOptions()
	if err != nil {
		return "unknown"
	}
	if so.Sizing.IsLarge(w, h) {
		return "large"
	}
	return "small"
}
