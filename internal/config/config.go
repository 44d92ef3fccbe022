package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/lorenzglow/internal/integrators"
	"github.com/san-kum/lorenzglow/internal/particle"
	"github.com/san-kum/lorenzglow/internal/physics"
	"github.com/san-kum/lorenzglow/internal/render"
	"github.com/san-kum/lorenzglow/internal/scene"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS            = 60
	DefaultBackground     = "#000000"
	DefaultTelemetryEvery = 600
	DefaultIntegrator     = "euler"

	// MaxStep is the largest integration step, speed_scale * dt_ceiling,
	// a config may allow. Euler on the canonical field is unstable near the
	// origin once the step passes 2/22.8.
	MaxStep = 0.05
)

type Config struct {
	Lorenz     LorenzConfig    `yaml:"lorenz"`
	Integrator string          `yaml:"integrator"`
	Seed       int64           `yaml:"seed"`
	SpeedScale float64         `yaml:"speed_scale"`
	DTCeiling  float64         `yaml:"dt_ceiling"`
	SeedRange  float64         `yaml:"seed_range"`
	Trail      TrailConfig     `yaml:"trail"`
	Jitter     JitterConfig    `yaml:"jitter"`
	Bounds     BoundsConfig    `yaml:"bounds"`
	Sizing     SizingConfig    `yaml:"sizing"`
	Background string          `yaml:"background"`
	FPS        int             `yaml:"fps"`
	Telemetry  TelemetryConfig `yaml:"telemetry"`
}

type LorenzConfig struct {
	Rho   float64 `yaml:"rho"`
	Sigma float64 `yaml:"sigma"`
	Beta  float64 `yaml:"beta"`
}

type TrailConfig struct {
	CommitThreshold float64 `yaml:"commit_threshold"`
	AlphaDecimals   int     `yaml:"alpha_decimals"`
	Projection      string  `yaml:"projection"`
}

type JitterConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Threshold float64 `yaml:"threshold"`
	Std       float64 `yaml:"std"`
}

type BoundsConfig struct {
	X0 float64 `yaml:"x0"`
	X1 float64 `yaml:"x1"`
	Y0 float64 `yaml:"y0"`
	Y1 float64 `yaml:"y1"`
}

type TierConfig struct {
	Particles int     `yaml:"particles"`
	Trail     int     `yaml:"trail"`
	LineWidth float64 `yaml:"line_width"`
}

type SizingConfig struct {
	MinWidth  int        `yaml:"min_width"`
	MinHeight int        `yaml:"min_height"`
	Large     TierConfig `yaml:"large"`
	Small     TierConfig `yaml:"small"`
}

type TelemetryConfig struct {
	Every int    `yaml:"every"`
	CSV   string `yaml:"csv"`
}

func DefaultConfig() *Config {
	b := scene.DefaultBounds()
	sz := scene.DefaultSizing()
	return &Config{
		Lorenz: LorenzConfig{
			Rho:   physics.CanonicalRho,
			Sigma: physics.CanonicalSigma,
			Beta:  physics.CanonicalBeta,
		},
		Integrator: DefaultIntegrator,
		SpeedScale: scene.DefaultSpeedScale,
		DTCeiling:  scene.DefaultDTCeiling,
		SeedRange:  scene.DefaultSeedRange,
		Trail: TrailConfig{
			CommitThreshold: particle.DefaultCommitThreshold,
			AlphaDecimals:   particle.DefaultAlphaDecimals,
			Projection:      particle.AxisZ.String(),
		},
		Jitter: JitterConfig{
			Enabled:   true,
			Threshold: particle.DefaultJitterThreshold,
			Std:       particle.DefaultJitterStd,
		},
		Bounds: BoundsConfig{X0: b.X0, X1: b.X1, Y0: b.Y0, Y1: b.Y1},
		Sizing: SizingConfig{
			MinWidth:  sz.MinWidth,
			MinHeight: sz.MinHeight,
			Large:     TierConfig(sz.Large),
			Small:     TierConfig(sz.Small),
		},
		Background: DefaultBackground,
		FPS:        DefaultFPS,
		Telemetry:  TelemetryConfig{Every: DefaultTelemetryEvery},
	}
}

// Load overlays the YAML file at path on the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := Overlay(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overlay sets the fields present in the YAML file at path on cfg and leaves
// the rest alone.
func Overlay(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.SpeedScale > 0, "speed_scale must be positive, got %f", c.SpeedScale)
	check(c.DTCeiling > 0, "dt_ceiling must be positive, got %f", c.DTCeiling)
	check(c.SpeedScale*c.DTCeiling <= MaxStep, "speed_scale * dt_ceiling must not exceed %g, got %g", MaxStep, c.SpeedScale*c.DTCeiling)
	check(c.SeedRange > 0, "seed_range must be positive, got %f", c.SeedRange)
	check(c.Trail.CommitThreshold > 0, "trail.commit_threshold must be positive, got %f", c.Trail.CommitThreshold)
	check(c.Trail.AlphaDecimals >= 1 && c.Trail.AlphaDecimals <= 6, "trail.alpha_decimals must be in [1, 6], got %d", c.Trail.AlphaDecimals)
	check(!c.Jitter.Enabled || c.Jitter.Std >= 0, "jitter.std must not be negative, got %f", c.Jitter.Std)
	check(c.Bounds.X1 > c.Bounds.X0, "bounds: x1 (%f) must exceed x0 (%f)", c.Bounds.X1, c.Bounds.X0)
	check(c.Bounds.Y1 > c.Bounds.Y0, "bounds: y1 (%f) must exceed y0 (%f)", c.Bounds.Y1, c.Bounds.Y0)
	check(c.FPS > 0, "fps must be positive, got %d", c.FPS)
	check(c.Telemetry.Every >= 0, "telemetry.every must not be negative, got %d", c.Telemetry.Every)

	for name, tier := range map[string]TierConfig{"large": c.Sizing.Large, "small": c.Sizing.Small} {
		check(tier.Particles > 0, "sizing.%s.particles must be positive, got %d", name, tier.Particles)
		check(tier.Trail >= 2, "sizing.%s.trail must be at least 2, got %d", name, tier.Trail)
		check(tier.LineWidth > 0, "sizing.%s.line_width must be positive, got %f", name, tier.LineWidth)
	}

	if _, err := particle.ParseAxis(c.Trail.Projection); err != nil {
		errs = append(errs, err)
	}
	if _, err := integrators.ByName(c.Integrator); err != nil {
		errs = append(errs, err)
	}
	if _, err := render.ParseColor(c.Background); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SceneOptions converts the configuration into scene options. The config
// must be valid.
func (c *Config) SceneOptions() (scene.Options, error) {
	if err := c.Validate(); err != nil {
		return scene.Options{}, err
	}
	integ, _ := integrators.ByName(c.Integrator)
	axis, _ := particle.ParseAxis(c.Trail.Projection)
	bg, _ := render.ParseColor(c.Background)

	return scene.Options{
		Field:      physics.NewLorenz(c.Lorenz.Rho, c.Lorenz.Sigma, c.Lorenz.Beta),
		Integrator: integ,
		SpeedScale: c.SpeedScale,
		DTCeiling:  c.DTCeiling,
		SeedRange:  c.SeedRange,
		Bounds:     scene.Bounds{X0: c.Bounds.X0, X1: c.Bounds.X1, Y0: c.Bounds.Y0, Y1: c.Bounds.Y1},
		Sizing: scene.Sizing{
			MinWidth:  c.Sizing.MinWidth,
			MinHeight: c.Sizing.MinHeight,
			Large:     scene.Tier(c.Sizing.Large),
			Small:     scene.Tier(c.Sizing.Small),
		},
		Particle: particle.Options{
			CommitThreshold: c.Trail.CommitThreshold,
			Jitter: particle.Jitter{
				Enabled:   c.Jitter.Enabled,
				Threshold: c.Jitter.Threshold,
				Std:       c.Jitter.Std,
			},
			Vertical:      axis,
			AlphaDecimals: c.Trail.AlphaDecimals,
		},
		Background: bg,
	}, nil
}
