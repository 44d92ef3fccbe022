// Package dynamo provides the core primitives shared by the vector field and
// the particles that integrate it:
//
//   - [State]: vector representing a point in phase space
//   - [System]: vector field dX/dt = f(X, t)
//   - [Integrator]: single-step numerical integrator
//
// # Example
//
//	field := physics.NewCanonicalLorenz()
//	integ := integrators.NewEuler()
//	x := integ.Step(field, dynamo.State{1, 1, 1}, 0, 0.01)
package dynamo
