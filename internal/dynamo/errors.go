package dynamo

import "errors"

// Domain errors for integration.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrDiverged indicates a finite state that has left any useful region.
	ErrDiverged = errors.New("dynamo: state diverged")

	// ErrDimensionMismatch indicates a state whose length does not match the system.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	// ErrUnknownIntegrator is returned when an integrator name is not registered.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")
)
