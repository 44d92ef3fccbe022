package dynamo

import "math"

// State is a point in phase space.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) NormSquared() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return sum
}

func (s State) Norm() float64 { return math.Sqrt(s.NormSquared()) }

// Check returns ErrInvalidState for a non-finite state and ErrDiverged for
// one farther than bound from the origin. A bound <= 0 disables the
// distance check.
func (s State) Check(bound float64) error {
	if !s.IsValid() {
		return ErrInvalidState
	}
	if bound > 0 && s.Norm() > bound {
		return ErrDiverged
	}
	return nil
}

// System is an autonomous or time-dependent vector field dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(dyn System, x State, t, dt float64) State
}
