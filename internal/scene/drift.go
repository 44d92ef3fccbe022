package scene

import (
	"math"

	"github.com/san-kum/lorenzglow/internal/particle"
)

const (
	initialHueRange   = 90.0
	initialSaturation = 40.0
	initialLight      = 50.0

	hueRangeSpring = 0.5
	hueRangeBias   = 10.0
	colorRate      = 10.0
	fullTurn       = 360.0
)

// Sampler is the source of drift targets and increments.
type Sampler interface {
	Uniform(low, high float64) float64
	Normal(mean, std float64) float64
}

func nextHueRangeTarget(r Sampler) float64   { return math.Exp(r.Normal(5, 0.5)) }
func nextSaturationTarget(r Sampler) float64 { return r.Uniform(30, 70) }
func nextLightTarget(r Sampler) float64      { return r.Uniform(40, 60) }

// Drift is the slowly wandering global color state. Hue range, saturation
// and light chase targets that are redrawn once reached; hue position and
// rotation advance by a random amount every step and wrap at 360.
type Drift struct {
	HueRange, HueRangeTarget     float64
	HuePosition, HueRotation     float64
	Saturation, SaturationTarget float64
	Light, LightTarget           float64
}

func NewDrift(r Sampler) Drift {
	return Drift{
		HueRange:         initialHueRange,
		HueRangeTarget:   nextHueRangeTarget(r),
		Saturation:       initialSaturation,
		SaturationTarget: nextSaturationTarget(r),
		Light:            initialLight,
		LightTarget:      nextLightTarget(r),
	}
}

// Step advances every drift scalar by a step of size h.
func (d *Drift) Step(h float64, r Sampler) {
	if d.HueRange < d.HueRangeTarget {
		d.HueRange += ((d.HueRangeTarget-d.HueRange)*hueRangeSpring + hueRangeBias) * h
		if d.HueRange >= d.HueRangeTarget {
			d.HueRangeTarget = nextHueRangeTarget(r)
		}
	} else {
		d.HueRange += ((d.HueRangeTarget-d.HueRange)*hueRangeSpring - hueRangeBias) * h
		if d.HueRange <= d.HueRangeTarget {
			d.HueRangeTarget = nextHueRangeTarget(r)
		}
	}

	d.HuePosition = advanceWrapped(d.HuePosition, r.Normal(50, 15)*h)
	d.HueRotation = advanceWrapped(d.HueRotation, r.Normal(30, 10)*h)

	relax(&d.Saturation, &d.SaturationTarget, h, func() float64 { return nextSaturationTarget(r) })
	relax(&d.Light, &d.LightTarget, h, func() float64 { return nextLightTarget(r) })
}

func advanceWrapped(v, delta float64) float64 {
	v += delta
	if v >= fullTurn {
		return 0
	}
	return v
}

// relax moves cur toward target at a fixed rate and redraws the target once
// it has been reached or passed.
func relax(cur, target *float64, h float64, next func() float64) {
	if *cur < *target {
		*cur += colorRate * h
		if *cur >= *target {
			*target = next()
		}
		return
	}
	*cur -= colorRate * h
	if *cur <= *target {
		*target = next()
	}
}

func (d Drift) Palette() particle.Palette {
	return particle.Palette{
		HuePosition: d.HuePosition,
		HueRange:    d.HueRange,
		HueRotation: d.HueRotation,
		Saturation:  d.Saturation,
		Light:       d.Light,
	}
}
