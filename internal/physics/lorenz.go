package physics

import "github.com/san-kum/lorenzglow/internal/dynamo"

// Canonical chaotic-regime parameters.
const (
	CanonicalRho   = 28.0
	CanonicalSigma = 10.0
	CanonicalBeta  = 8.0 / 3.0
)

// Lorenz is the Lorenz system. Parameters are fixed at construction.
type Lorenz struct{ rho, sigma, beta float64 }

func NewLorenz(rho, sigma, beta float64) *Lorenz { return &Lorenz{rho, sigma, beta} }
func NewCanonicalLorenz() *Lorenz {
	return NewLorenz(CanonicalRho, CanonicalSigma, CanonicalBeta)
}
func (l *Lorenz) StateDim() int { return 3 }

// Derive calculates the Lorenz attractor derivatives. The system is autonomous.
func (l *Lorenz) Derive(s dynamo.State, _ float64) dynamo.State {
	return dynamo.State{l.sigma * (s[1] - s[0]), s[0]*(l.rho-s[2]) - s[1], s[0]*s[1] - l.beta*s[2]}
}

func (l *Lorenz) Params() map[string]float64 {
	return map[string]float64{"sigma": l.sigma, "rho": l.rho, "beta": l.beta}
}
